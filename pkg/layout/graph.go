package layout

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// Graph is the read-only view of a graph that layouts consume. All
// methods are keyed by node ID.
type Graph interface {
	// NodeIDs returns every node ID. Order does not matter; layouts sort.
	NodeIDs() []string
	// Label returns the display text used to order tree children.
	Label(id string) string
	// Visible reports whether the node is shown.
	Visible(id string) bool
	// Collapsed reports whether the node is hidden by a folded ancestor.
	Collapsed(id string) bool
	// Parent returns the parent ID or "" for roots.
	Parent(id string) string
	// Children returns the ordered child IDs.
	Children(id string) []string
	// Links returns the targets of the node's visible outgoing cross-links.
	Links(id string) []string
	// Position returns the node's stored position.
	Position(id string) (x, y float64)
	// Root returns the default layout root.
	Root() string
}

// PositionWriter receives computed positions in [Layout.Commit].
type PositionWriter interface {
	SetPosition(id string, x, y float64) error
}

// Positionable is a vertex with a position that can be moved, jittered
// and rescaled. Every algorithm's vertex type satisfies it.
type Positionable interface {
	ID() string
	Pos() r2.Vec
	SetLocation(x, y float64)
	Jitter(fraction float64, rng *rand.Rand)
	Bounds(b *r2.Box)
	Normalise(from, to r2.Box)
}

// TreeNavigable is a vertex of the spanning tree built by the tree and
// radial layouts.
type TreeNavigable interface {
	Positionable
	ParentID() string
	ChildIDs() []string
	Depth() int
}

func participates(g Graph, id string) bool {
	return g.Visible(id) && !g.Collapsed(id)
}
