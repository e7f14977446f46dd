package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/pkg/arena"
	"github.com/matzehuels/descendants/pkg/category"
	"github.com/matzehuels/descendants/pkg/pipeline"
	"github.com/matzehuels/descendants/pkg/tree"
	"github.com/matzehuels/descendants/pkg/view"
)

// lineageCommand prints a person's ancestors within the full tree.
func (c *CLI) lineageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "lineage <name>",
		Short: "Show a person's line of ancestry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := pipeline.LoadDataset(c.Config.Data)
			if err != nil {
				return err
			}
			info, ok := lookupLineage(ds.Root, termArg(args))
			if !ok {
				printWarning("%s", view.NotFoundMessage)
				return nil
			}
			printSuccess("%s", categoryStyle(info.Category).Render(info.Name))
			printKeyValue("Category", info.Category.Label())
			printKeyValue("Generation", fmt.Sprint(info.Generation+1))
			lineage := info.Lineage
			if lineage == "" {
				lineage = "(root of the tree)"
			}
			printKeyValue("Lineage", lineage)
			return nil
		},
	}
}

type lineageInfo struct {
	Name       string
	Category   category.Category
	Generation int // 0 for the root
	Lineage    string
}

// lookupLineage locates term in the full tree and resolves its ancestors.
// Unlike a search, the arena spans the whole tree so the lineage reaches
// back to the first generation.
func lookupLineage(root *tree.Node, term string) (lineageInfo, bool) {
	found := tree.Locate(root, term)
	if found == nil {
		return lineageInfo{}, false
	}
	a, err := arena.New(root)
	if err != nil {
		return lineageInfo{}, false
	}
	for i, n := range a.Nodes() {
		if n.Source != found {
			continue
		}
		return lineageInfo{
			Name:       n.Name,
			Category:   category.Classify(n.Name, a.ParentName(i)),
			Generation: n.Depth,
			Lineage:    a.Lineage(i),
		}, true
	}
	return lineageInfo{}, false
}
