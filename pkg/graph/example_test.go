package graph_test

import (
	"fmt"

	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/tree"
)

func ExampleBuild() {
	root := tree.New("Adam",
		tree.New("Cain"),
		tree.New("Seth", tree.New("Enosh")),
	)
	g := graph.Build(root)
	for _, n := range g.Nodes {
		fmt.Printf("%-8s %-6s (%3.0f,%3.0f) %q\n", n.ID, n.Label, n.Position.X, n.Position.Y, n.Lineage)
	}
	for _, e := range g.Edges {
		fmt.Println(e.ID)
	}
	// Output:
	// root     Adam   (  0,  0) ""
	// root-0   Cain   (250, 80) "Adam"
	// root-1   Seth   (250,160) "Adam"
	// root-1-0 Enosh  (500,240) "Adam → Seth"
	// root->root-0
	// root->root-1
	// root-1->root-1-0
}
