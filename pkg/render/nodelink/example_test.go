package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/descendants/pkg/graph"
	"github.com/matzehuels/descendants/pkg/render/nodelink"
	"github.com/matzehuels/descendants/pkg/tree"
)

func ExampleToDOT() {
	g := graph.Build(tree.New("Isaac", tree.New("Jacob (Israel)")))
	fmt.Print(nodelink.ToDOT(g, nodelink.Options{}))
	// Output:
	// digraph G {
	//   bgcolor="transparent";
	//   rankdir=LR;
	//   ranksep=0.8;
	//   nodesep=0.2;
	//   node [shape=box, style="rounded,filled", fontname="Helvetica", fontsize=12, penwidth=2];
	//   edge [color="#94a3b8", arrowsize=0.6];
	//
	//   "root" [label="Isaac", fillcolor="#a78bfa", color="#a78bfa", width=1.67];
	//   "root-0" [label="Jacob (Israel)", fillcolor="#a78bfa", color="#a78bfa", width=1.67, tooltip="Isaac"];
	//
	//   "root" -> "root-0";
	// }
}
