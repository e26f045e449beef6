package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/cachekit/treekey/cmd/fqnctl/codec"
	"github.com/cachekit/treekey/cmd/fqnctl/commons"
	"github.com/cachekit/treekey/cmd/fqnctl/parse"
	"github.com/cachekit/treekey/cmd/fqnctl/region"
	"github.com/cachekit/treekey/cmd/fqnctl/relate"
	"github.com/cachekit/treekey/cmd/fqnctl/replace"
	"github.com/cachekit/treekey/cmd/fqnctl/sort"
	"github.com/cachekit/treekey/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const program = "fqnctl"

var commands = []*cobra.Command{
	parse.Cmd,
	sort.Cmd,
	relate.Cmd,
	replace.Cmd,
	codec.EncodeCmd,
	codec.DecodeCmd,
	region.Cmd,
	versionCmd,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the fqnctl version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		out, err := renderVersion(version.Get(program), flagVersionFormat)
		if err != nil {
			commons.ErrFatalf("%v", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	},
}

var flagVersionFormat string

func renderVersion(info version.Info, format string) (string, error) {
	switch format {
	case "", "text":
		return info.UserAgent(), nil
	case "json":
		b, err := json.MarshalIndent(info, "", "  ")
		return string(b), errors.Wrap(err, "marshaling json")
	case "yaml":
		b, err := yaml.Marshal(info)
		return strings.TrimSuffix(string(b), "\n"), errors.Wrap(err, "marshaling yaml")
	}
	return "", errors.Errorf("unknown output format %q", format)
}

func init() {
	versionCmd.Flags().StringVarP(&flagVersionFormat, "format", "f", "text", "Output format. One of: text|json|yaml.")
	rootCmd.PersistentFlags().StringVar(&commons.FlagLogLevel, commons.FlagNameLogLevel, "INFO", "Minimum log level. One of: DEBUG|INFO|WARNING|ERROR.")
	rootCmd.AddCommand(commands...)
	rootCmd.Version = version.GetUserAgent(program)
}

var rootCmd = &cobra.Command{
	Use:   "fqnctl subcommand",
	Short: "fqnctl inspects, orders and encodes tree cache paths",
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
