package relate

import (
	"fmt"

	"github.com/cachekit/treekey/pkg/fqn"
	"github.com/spf13/cobra"
)

var Cmd = &cobra.Command{
	Use:   "relate A B",
	Short: "print how path A relates to path B",
	Example: `  # prints "direct-child"
  fqnctl relate /a/b /a`,
	Run:  run,
	Args: cobra.ExactArgs(2),
}

// Relations reported by Relation.
const (
	Equal        = "equal"
	DirectChild  = "direct-child"
	Child        = "child"
	DirectParent = "direct-parent"
	Parent       = "parent"
	Unrelated    = "unrelated"
)

func run(cmd *cobra.Command, args []string) {
	fmt.Fprintln(cmd.OutOrStdout(), Relation(fqn.FromString(args[0]), fqn.FromString(args[1])))
}

// Relation names the relation of a to b, seen from a.
func Relation(a, b fqn.Fqn[string]) string {
	switch {
	case a.Equal(b):
		return Equal
	case a.IsDirectChildOf(b):
		return DirectChild
	case a.IsChildOf(b):
		return Child
	case b.IsDirectChildOf(a):
		return DirectParent
	case b.IsChildOf(a):
		return Parent
	}
	return Unrelated
}
