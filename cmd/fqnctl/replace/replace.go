package replace

import (
	"fmt"

	"github.com/cachekit/treekey/cmd/fqnctl/commons"
	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "replace PATH OLD NEW",
	Short: "move PATH from under ancestor OLD to under NEW",
	Example: `  # prints /x/y/c
  fqnctl replace /a/b/c /a/b /x/y`,
	Run:  run,
	Args: cobra.ExactArgs(3),
}

func run(cmd *cobra.Command, args []string) {
	out, err := Replace(args[0], args[1], args[2])
	if err != nil {
		commons.ErrFatalf("%v", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
}

// Replace parses its arguments and returns the rendered result of
// path.ReplaceAncestor(oldAncestor, newAncestor).
func Replace(path, oldAncestor, newAncestor string) (string, error) {
	f, err := fqn.FromString(path).ReplaceAncestor(fqn.FromString(oldAncestor), fqn.FromString(newAncestor))
	if err != nil {
		return "", err
	}
	return f.String(), nil
}
