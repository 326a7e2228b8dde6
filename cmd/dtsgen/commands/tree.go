package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dtsgen/config"
	"github.com/teranos/dtsgen/symbol"
)

// TreeCmd prints the reconstructed symbol hierarchy
var TreeCmd = &cobra.Command{
	Use:   "tree [path]",
	Short: "Print the symbol tree reconstructed from the doclets",
	Long: `Print the namespaces, classes and members dtsgen would emit, after
overloads are merged and property parameters are expanded.

Synthesized containers and parameter interfaces are marked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		result, err := compile(cfg, args)
		printDiagnostics(result)
		if err != nil {
			return err
		}
		if len(result.Tree.Roots) == 0 {
			pterm.Info.Println("No symbols")
			return nil
		}
		out, err := renderTree(result.Tree)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	AddInputFlags(TreeCmd)
}

func renderTree(tree *symbol.Tree) (string, error) {
	return pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(treeItems(tree))).Srender()
}

// treeItems flattens tree depth-first into pterm levels
func treeItems(tree *symbol.Tree) pterm.LeveledList {
	var items pterm.LeveledList
	var visit func(n *symbol.Node, level int)
	visit = func(n *symbol.Node, level int) {
		items = append(items, pterm.LeveledListItem{Level: level, Text: nodeLabel(n)})
		for _, c := range n.Children {
			visit(c, level+1)
		}
	}
	for _, r := range tree.Roots {
		visit(r, 0)
	}
	return items
}

func nodeLabel(n *symbol.Node) string {
	var sb strings.Builder
	sb.WriteString(n.Name)
	sb.WriteString(" (")
	if n.IsStatic() && n.Parent != nil && !n.Parent.Kind.IsContainer() {
		sb.WriteString("static ")
	}
	sb.WriteString(n.Kind.String())
	sb.WriteString(")")
	if len(n.Signatures) > 1 {
		fmt.Fprintf(&sb, " ×%d", len(n.Signatures))
	}
	if n.Synthesized {
		sb.WriteString(" [synthesized]")
	}
	return sb.String()
}
