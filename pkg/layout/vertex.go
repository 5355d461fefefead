package layout

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// vertex wraps one participating graph node. Algorithm-specific vertex
// types embed it and add their own state.
type vertex struct {
	id     string
	label  string
	pos    r2.Vec
	start  r2.Vec // position stored in the graph when the layout was built
	linked bool   // has at least one participating edge
}

func (v *vertex) ID() string  { return v.id }
func (v *vertex) X() float64  { return v.pos.X }
func (v *vertex) Y() float64  { return v.pos.Y }
func (v *vertex) Pos() r2.Vec { return v.pos }

func (v *vertex) SetLocation(x, y float64) { v.pos = r2.Vec{X: x, Y: y} }

// Jitter moves the vertex by an independent random offset of at most
// fraction on each axis.
func (v *vertex) Jitter(fraction float64, rng *rand.Rand) {
	v.pos.X += Jitter(rng, fraction)
	v.pos.Y += Jitter(rng, fraction)
}

// Bounds grows the accumulator b to include the vertex.
func (v *vertex) Bounds(b *r2.Box) { grow(b, v.pos) }

// Normalise maps the vertex from the frame it was observed in to the
// target frame, each axis independently.
func (v *vertex) Normalise(from, to r2.Box) {
	v.pos = r2.Vec{
		X: Rescale(v.pos.X, from.Min.X, from.Max.X, to.Min.X, to.Max.X),
		Y: Rescale(v.pos.Y, from.Min.Y, from.Max.Y, to.Min.Y, to.Max.Y),
	}
}

// edge is a simulation-local pair of vertex indices.
type edge struct {
	a, b int
}
