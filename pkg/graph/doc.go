// Package graph provides the editable tree-with-cross-links model that
// arbor lays out, together with its JSON and TOML file formats.
//
// # Overview
//
// A [Graph] is a forest of nodes connected by parent-child relationships.
// On top of the tree, any two nodes may be joined by a cross-link. Nodes
// can be hidden, and folding a node collapses everything below it.
//
// Layout algorithms in [github.com/matzehuels/arbor/pkg/layout] never see
// the model's structs. They read it through ID-keyed accessors
// ([Graph.Visible], [Graph.Children], [Graph.Links], ...) and write results
// back through [Graph.SetPosition].
//
// # Basic Usage
//
//	g := graph.New()
//	g.AddNode(graph.Node{ID: "root"})
//	g.AddNode(graph.Node{ID: "a", Label: "Alpha"})
//	g.AddChild("root", "a")
//
// # File Format
//
// Graphs serialize to a document with a node list and a link list:
//
//	{
//	  "root": "root",
//	  "nodes": [
//	    {"id": "root"},
//	    {"id": "a", "label": "Alpha", "parent": "root", "x": 0.5, "y": 0.5}
//	  ],
//	  "links": [{"from": "a", "to": "root"}]
//	}
//
// The same shape is accepted in TOML ([[nodes]] and [[links]] tables).
// Children keep the order in which they appear in the node list.
//
// # Concurrency
//
// Graph methods lock internally, so a layout commit and a concurrent read
// never observe a torn position. Higher-level single-writer discipline
// (one layout commit at a time) is up to the caller.
package graph
