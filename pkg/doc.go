// Package pkg provides the core libraries for the descendants genealogy viewer.
//
// # Overview
//
// descendants turns a static family tree into an interactive node-link
// diagram. Typing a name narrows the diagram to that person's descendants,
// the camera moves onto the match, and clicking a person shows their line
// of ancestry. The pkg directory is organized into four areas:
//
//  1. Data: [tree], [dataset], [io]
//  2. Domain logic: [arena], [graph], [category], [view]
//  3. Output: [render/sink], [render/nodelink], [render]
//  4. Orchestration and infrastructure: [pipeline], [cache], [config],
//     [errors], [observability], [buildinfo]
//
// # Architecture
//
// Data flows one way:
//
//	dataset (embedded JSON) or io.ImportFile
//	         ↓
//	    [tree] Locate (first pre-order match, case-insensitive)
//	         ↓
//	    [arena] + [graph] Build (path ids, BFS layout, category styles)
//	         ↓
//	    [view] Controller (debounced search, selection, camera)
//	         ↓
//	    CLI explore, HTTP server, or [render/sink] artifacts
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/descendants/pkg/dataset"
//	    "github.com/matzehuels/descendants/pkg/graph"
//	    "github.com/matzehuels/descendants/pkg/render/sink"
//	    "github.com/matzehuels/descendants/pkg/tree"
//	)
//
//	root := dataset.MustDefault()
//	g := graph.Build(tree.Locate(root, "noah"))
//	svg := sink.RenderSVG(g, sink.WithLegend(), sink.WithPopups())
//
// A term that matches nobody yields an empty graph. That is a normal
// result, and renderers show "No descendant found." for it.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/view/...        # Controller, with goleak
//	go test -run Example ./pkg/...
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/tree
// [dataset]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/dataset
// [io]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/io
// [arena]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/arena
// [graph]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/graph
// [category]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/category
// [view]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/view
// [render]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/render/sink
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/descendants/pkg/buildinfo
package pkg
