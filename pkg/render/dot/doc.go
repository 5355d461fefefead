// Package dot renders positioned graphs through Graphviz.
//
// # Overview
//
// [ToDOT] writes the visible part of a graph as Graphviz DOT source with
// every node pinned at its stored position (pos="x,y!"). The positions
// come from a layout committed into the graph, so Graphviz only draws and
// never moves anything.
//
// # Usage
//
//	src := dot.ToDOT(g, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// For PDF or PNG output:
//
//	pdf, err := dot.ToPDF(svg)
//	png, err := dot.ToPNG(svg, 2.0)  // 2x scale
//
// # Coordinates
//
// Layout coordinates grow downwards with y while DOT coordinates grow
// upwards, so y is flipped. One layout unit spans [Options.Scale] inches.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package dot
