package sort

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cachekit/treekey/cmd/fqnctl/commons"
	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	examples = `  # sort the paths listed in a file
  fqnctl sort --filename=paths.txt

  # sort paths read from stdin
  printf '/b\n/a/b\n/a\n' | fqnctl sort`
)

var Cmd = &cobra.Command{
	Use:     "sort",
	Short:   "print paths, one per line, in tree order",
	Example: examples,
	Run:     run,
	Args:    cobra.ExactArgs(0),
}

var flagFilename string

const flagNameFilename = "filename"

func init() {
	Cmd.Flags().StringVarP(&flagFilename, flagNameFilename, "n", "", "a file with one path per line. Stdin is read when unset.")
}

func run(cmd *cobra.Command, _ []string) {
	var in io.Reader = os.Stdin
	if flagFilename != "" {
		file, err := os.Open(flagFilename)
		if err != nil {
			commons.ErrFatalf("opening file %q: %v", flagFilename, err)
		}
		defer file.Close()
		in = file
	}

	lines, err := Lines(in)
	if err != nil {
		commons.ErrFatalf("reading: %v", err)
	}
	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}

// Lines reads one path per line from r and returns the lines ordered by
// their parsed paths. Blank lines are skipped. Lines naming equal paths keep
// their input order.
func Lines(r io.Reader) ([]string, error) {
	type entry struct {
		line string
		path fqn.Fqn[string]
	}

	var entries []entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, entry{line: line, path: fqn.FromString(line)})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning paths")
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return fqn.Compare(a.path, b.path)
	})

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.line
	}
	return lines, nil
}
