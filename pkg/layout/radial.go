package layout

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// RadialLayout places the children of every vertex evenly on a circle
// around it. The root's circle has radius 1 and each level below shrinks
// by the configured factor. Non-root vertices keep the slot pointing back
// at their parent free.
type RadialLayout struct {
	base
	tree *spanningTree
}

// NewRadial builds a shrinking-radius radial layout over g.
func NewRadial(g Graph, opts ...Option) *RadialLayout {
	return &RadialLayout{base: newBase(Radial, g, opts)}
}

// Spanning returns the spanning tree of the last run.
func (l *RadialLayout) Spanning() []TreeNavigable {
	if l.tree == nil {
		return nil
	}
	return l.tree.navigable()
}

// Compute places the root at the origin and locates its subtree.
func (l *RadialLayout) Compute(jitter float64) Layout {
	started := time.Now()
	rng := l.begin()
	l.tree = buildTree(&l.base, l.linkedRoot())
	if len(l.tree.nodes) > 0 {
		l.tree.nodes[0].SetLocation(0, 0)
		l.locate(0, 1.0)
		l.tree.place(&l.base)
	}
	l.finish(jitter, rng, started)
	return l
}

func (l *RadialLayout) locate(i int, radius float64) {
	v := l.tree.nodes[i]
	n := len(v.children)
	if n == 0 {
		return
	}
	for j, c := range v.children {
		var a float64
		if v.parent < 0 {
			a = 2 * math.Pi * float64(j) / float64(n)
		} else {
			back := angleOf(r2.Sub(l.tree.nodes[v.parent].pos, v.pos))
			a = back + 2*math.Pi*float64(j+1)/float64(n+1)
		}
		p := r2.Add(v.pos, polar(radius, a))
		l.tree.nodes[c].SetLocation(p.X, p.Y)
		l.locate(c, radius*l.cfg.shrink)
	}
}

// RadialSyncLayout spreads the leaves evenly over a full circle and puts
// every vertex on the circle whose radius is its depth, at the angle
// halfway between its outermost descendant leaves.
type RadialSyncLayout struct {
	base
	tree *spanningTree
}

// NewRadialSync builds a depth-synchronized radial layout over g.
func NewRadialSync(g Graph, opts ...Option) *RadialSyncLayout {
	return &RadialSyncLayout{base: newBase(RadialSync, g, opts)}
}

// Spanning returns the spanning tree of the last run.
func (l *RadialSyncLayout) Spanning() []TreeNavigable {
	if l.tree == nil {
		return nil
	}
	return l.tree.navigable()
}

// Compute assigns leaf angles, propagates them to the root and converts
// to Cartesian coordinates.
func (l *RadialSyncLayout) Compute(jitter float64) Layout {
	started := time.Now()
	rng := l.begin()
	l.tree = buildTree(&l.base, l.linkedRoot())
	if len(l.tree.nodes) > 0 {
		var leaves []int
		l.tree.preorder(0, func(i int) {
			if len(l.tree.nodes[i].children) == 0 {
				leaves = append(leaves, i)
			}
		})
		angle := make([]float64, len(l.tree.nodes))
		for k, i := range leaves {
			angle[i] = 2 * math.Pi * float64(k) / float64(len(leaves))
		}
		for i, n := range l.tree.nodes {
			if c := n.children; len(c) > 0 {
				angle[i] = (l.leftmostLeaf(angle, c[0]) + l.rightmostLeaf(angle, c[len(c)-1])) / 2
			}
		}
		for i, n := range l.tree.nodes {
			p := polar(float64(n.depth), angle[i])
			n.SetLocation(p.X, p.Y)
		}
		l.tree.place(&l.base)
	}
	l.finish(jitter, rng, started)
	return l
}

func (l *RadialSyncLayout) leftmostLeaf(angle []float64, i int) float64 {
	for c := l.tree.nodes[i].children; len(c) > 0; c = l.tree.nodes[i].children {
		i = c[0]
	}
	return angle[i]
}

func (l *RadialSyncLayout) rightmostLeaf(angle []float64, i int) float64 {
	for c := l.tree.nodes[i].children; len(c) > 0; c = l.tree.nodes[i].children {
		i = c[len(c)-1]
	}
	return angle[i]
}
