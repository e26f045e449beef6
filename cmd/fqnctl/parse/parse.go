package parse

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cachekit/treekey/cmd/fqnctl/commons"
	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

const (
	examples = `  # show how a path is split into elements
  fqnctl parse /a/b/c

  # describe several paths as YAML
  fqnctl parse /a /a/b --format=yaml`
)

var Cmd = &cobra.Command{
	Use:     "parse PATH...",
	Short:   "parse paths and print their elements, size, parent and hash",
	Example: examples,
	Run:     run,
	Args:    cobra.MinimumNArgs(1),
}

var flagFormat string

const (
	flagNameFormat = "format"

	stringText = "text"
	stringJSON = "json"
	stringYAML = "yaml"
)

func init() {
	Cmd.Flags().StringVarP(&flagFormat, flagNameFormat, "f", stringText, fmt.Sprintf("Output format. One of: %s|%s|%s.", stringText, stringJSON, stringYAML))
}

// Result describes a single parsed path.
type Result struct {
	Input    string   `json:"input"`
	Path     string   `json:"path"`
	Elements []string `json:"elements"`
	Size     int      `json:"size"`
	Parent   string   `json:"parent"`
	Hash     string   `json:"hash"`
}

func run(cmd *cobra.Command, args []string) {
	out, err := Render(Describe(args), flagFormat)
	if err != nil {
		commons.ErrFatalf("%v", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
}

// Describe parses every path in inputs.
func Describe(inputs []string) []Result {
	results := make([]Result, 0, len(inputs))
	for _, in := range inputs {
		f := fqn.FromString(in)
		elements := f.PeekElements()
		if elements == nil {
			elements = []string{}
		}
		results = append(results, Result{
			Input:    in,
			Path:     f.String(),
			Elements: elements,
			Size:     f.Size(),
			Parent:   f.Parent().String(),
			Hash:     fmt.Sprintf("%016x", f.Hash()),
		})
	}
	return results
}

// Render formats results as text, json or yaml.
func Render(results []Result, format string) (string, error) {
	switch format {
	case "", stringText:
		var b strings.Builder
		for _, r := range results {
			fmt.Fprintf(&b, "%s\tsize=%d\tparent=%s\thash=%s\telements=%q\n", r.Path, r.Size, r.Parent, r.Hash, r.Elements)
		}
		return b.String(), nil
	case stringJSON:
		b, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return "", errors.Wrap(err, "marshaling json")
		}
		return string(b) + "\n", nil
	case stringYAML:
		b, err := yaml.Marshal(results)
		if err != nil {
			return "", errors.Wrap(err, "marshaling yaml")
		}
		return string(b), nil
	}
	return "", errors.Errorf("unknown output format %q", format)
}
