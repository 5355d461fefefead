// Package layout computes 2D positions for the nodes of a tree that also
// carries non-tree cross-links.
//
// # Algorithms
//
// Five algorithms share one contract ([Layout]):
//
//   - [Force]: Fruchterman–Reingold spring embedding over tree edges and
//     cross-links.
//   - [Lombardi]: the force simulation plus per-edge tangent angles that
//     are optimized so edges can be drawn as circular arcs.
//   - [Tree]: the Buchheim–Jünger–Leipert linear-time variant of Walker's
//     ordered-tree algorithm, drawn in layers.
//   - [Radial]: children spaced on circles around their parent, with the
//     radius shrinking geometrically per level.
//   - [RadialSync]: leaves spread over a full circle and every vertex at
//     depth d placed on the circle of radius d.
//
// # Input
//
// Layouts read the graph through the [Graph] interface. A node takes part
// in a run when it is visible and not collapsed. Edges between taking-part
// nodes come from parent-child relations ([WithTreeEdges]) and cross-links
// ([WithCrossLinks]). Nodes without any such edge are isolated: they never
// enter the computation and, with [WithSideline], are stacked on a strip at
// x = [SidelineX] to the right of the drawing.
//
// # Output
//
// [Layout.Compute] runs the algorithm, applies optional jitter and maps the
// drawing into [FittingFrame], the unit square with a 5% margin.
// [Layout.Positions] returns the normalized result and [Layout.Raw] the
// coordinates the algorithm produced before normalization. Nothing is
// written to the graph until [Layout.Commit] copies the positions into a
// [PositionWriter].
//
// # Basic Usage
//
//	l, err := layout.New(layout.Tree, g, layout.WithRoot("main"))
//	if err != nil {
//	    return err
//	}
//	if err := l.Compute(0).Commit(g); err != nil {
//	    return err
//	}
//
// # Determinism
//
// Vertices are processed in ID order and all randomness comes from a
// generator seeded by [WithSeed], so two runs over an unchanged graph with
// the same options produce identical positions.
//
// # Concurrency
//
// A layout value is not safe for concurrent use, but separate layouts over
// the same graph may run in parallel. Committing is the only step that
// writes to the graph and must be serialized by the caller.
package layout
