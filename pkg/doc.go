// Package pkg provides the core libraries of arbor, a layout engine for
// node-link graphs.
//
// # Overview
//
// Arbor computes 2D positions for the nodes of a tree with optional
// cross-links. Positions are normalized into the unit square and written
// back into the graph, from where they can be rendered. The pkg directory
// is organized into these areas:
//
//  1. [graph] - The editable graph model and its JSON/TOML documents
//  2. [layout] - Layout algorithms (force, Lombardi, tree, radial)
//  3. [perm] - Permutation enumeration used by the Lombardi layout
//  4. [pipeline] - Validated, cached layout runs shared by CLI and server
//  5. [cache] - Layout cache backends (file, Redis, MongoDB)
//  6. [render/dot] - Graphviz DOT, SVG, PNG and PDF output
//
// # Architecture
//
// The typical data flow through arbor:
//
//	graph.json / graph.toml
//	         ↓
//	    [graph] package (read document, build tree + cross-links)
//	         ↓
//	    [pipeline] package (validate options, consult cache)
//	         ↓
//	    [layout] package (compute, normalize, commit positions)
//	         ↓
//	    [render/dot] package (DOT → SVG/PNG/PDF)
//
// # Quick Start
//
// Lay out a graph file and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/arbor/pkg/cache"
//	    "github.com/matzehuels/arbor/pkg/graph"
//	    "github.com/matzehuels/arbor/pkg/pipeline"
//	    "github.com/matzehuels/arbor/pkg/render/dot"
//	)
//
//	g, _ := graph.ReadFile("tree.json")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := runner.Layout(context.Background(), g, pipeline.Options{Algorithm: "tree"})
//	svg, _ := dot.RenderSVG(context.Background(), dot.ToDOT(g, dot.Options{}))
//
// Use a layout directly:
//
//	l, _ := layout.New(layout.Force, g, layout.WithSeed(7))
//	_ = l.Compute(0).Commit(g)
//
// # Supporting Packages
//
// [errors] - Structured errors with machine-readable codes and HTTP status
// mapping.
//
// [observability] - Hooks for layout, cache and server events.
//
// [buildinfo] - Version information and the cache key scope of a build.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/layout
// [perm]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/perm
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/cache
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/render/dot
// [errors]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/arbor/pkg/buildinfo
package pkg
