package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/render/sink"
	"github.com/matzehuels/descendants/pkg/view"
)

// searchCommand prints the subtree a name resolves to.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		depth   int
		asJSON  bool
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "search <name>",
		Short: "Find a person and list their descendants",
		Long: `Find the first person, in family order, whose name contains <name>
(case-insensitive) and list their descendants as an outline.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), termArg(args), depth, asJSON, noCache)
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "generations to list (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the graph as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the cache")
	return cmd
}

func (c *CLI) runSearch(ctx context.Context, term string, depth int, asJSON, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	st, hit, err := runner.SearchWithCacheInfo(ctx, c.pipelineOptions(term))
	if err != nil {
		return err
	}

	if asJSON {
		var opts []sink.JSONOption
		if b := st.Banner(); b != "" {
			opts = append(opts, sink.WithJSONBanner(b))
		}
		if st.Match != nil {
			opts = append(opts, sink.WithJSONMatchPath(st.Match.Path))
		}
		data, err := sink.RenderJSON(st.Graph, opts...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}

	if st.Phase == view.NotFound {
		printWarning("%s", view.NotFoundMessage)
		return nil
	}

	printSuccess("%s", st.Banner())
	printStats(len(st.Graph.Nodes), len(st.Graph.Edges), hit)
	fmt.Fprintln(stdout)
	printOutline(st.Graph, depth)
	return nil
}

// printOutline prints g as an indented outline, siblings in family order,
// down to maxDepth generations below the root (0 for all).
func printOutline(g graph.Graph, maxDepth int) {
	if g.IsEmpty() {
		return
	}
	children := make(map[string][]graph.Node, len(g.Nodes))
	for _, n := range g.Nodes[1:] {
		children[n.Parent] = append(children[n.Parent], n)
	}

	var walk func(n graph.Node)
	walk = func(n graph.Node) {
		indent := strings.Repeat("  ", n.Depth)
		kids := children[n.ID]
		line := indent + categoryStyle(n.Category).Render(n.Label)
		if maxDepth > 0 && n.Depth >= maxDepth && len(kids) > 0 {
			line += StyleDim.Render(fmt.Sprintf(" (+%d)", countBelow(children, n.ID)))
			fmt.Fprintln(stdout, line)
			return
		}
		fmt.Fprintln(stdout, line)
		for _, k := range kids {
			walk(k)
		}
	}
	walk(g.Nodes[0])
}

func countBelow(children map[string][]graph.Node, id string) int {
	n := 0
	for _, k := range children[id] {
		n += 1 + countBelow(children, k.ID)
	}
	return n
}
