package layout

import (
	"time"
)

// otVertex carries the per-vertex state of Walker's algorithm.
type otVertex struct {
	*treeVertex
	prelim   float64
	mod      float64
	shift    float64
	change   float64
	thread   int // next contour vertex for leaves, -1 if none
	ancestor int
	number   int // 1-based position among siblings
}

// TreeLayout is the Buchheim–Jünger–Leipert linear-time version of
// Walker's algorithm. Siblings lie on a shared level at least the sibling
// distance apart and every parent is centered above its children.
type TreeLayout struct {
	base
	tree *spanningTree
}

// NewTree builds an ordered-tree layout over g.
func NewTree(g Graph, opts ...Option) *TreeLayout {
	return &TreeLayout{base: newBase(Tree, g, opts)}
}

// Spanning returns the spanning tree of the last run in breadth-first
// order, root first.
func (l *TreeLayout) Spanning() []TreeNavigable {
	if l.tree == nil {
		return nil
	}
	return l.tree.navigable()
}

// Compute builds the spanning tree and runs both walks.
func (l *TreeLayout) Compute(jitter float64) Layout {
	started := time.Now()
	rng := l.begin()
	l.tree = buildTree(&l.base, l.linkedRoot())

	if len(l.tree.nodes) > 0 {
		w := newWalker(l.tree, l.cfg.sibling)
		w.firstWalk(0)
		w.secondWalk(0, -w.vs[0].prelim)

		offsets := l.levelOffsets()
		for _, v := range w.vs {
			x, y := v.prelim, offsets[v.depth]
			if l.cfg.orientation == LeftRight {
				x, y = y, x
			}
			v.SetLocation(x, y)
		}
		l.tree.place(&l.base)
	}
	l.finish(jitter, rng, started)
	return l
}

// levelOffsets returns the depth-axis coordinate of every level: the sum
// of the extents of all levels above it.
func (l *TreeLayout) levelOffsets() []float64 {
	extent := make([]float64, l.tree.maxDepth+1)
	for _, n := range l.tree.nodes {
		e := 1.0
		if l.cfg.extent != nil {
			e = l.cfg.extent(n.id)
		}
		extent[n.depth] = max(extent[n.depth], e)
	}
	offsets := make([]float64, len(extent))
	for d := 1; d < len(offsets); d++ {
		offsets[d] = offsets[d-1] + extent[d-1]
	}
	return offsets
}

// walker holds the arena of one run. Indices match the spanning tree.
type walker struct {
	t        *spanningTree
	vs       []*otVertex
	distance float64
}

func newWalker(t *spanningTree, distance float64) *walker {
	w := &walker{t: t, vs: make([]*otVertex, len(t.nodes)), distance: distance}
	for i, n := range t.nodes {
		w.vs[i] = &otVertex{treeVertex: n, thread: -1, ancestor: i}
	}
	for _, n := range t.nodes {
		for j, c := range n.children {
			w.vs[c].number = j + 1
		}
	}
	return w
}

func (w *walker) leftSibling(v int) int {
	p := w.vs[v].parent
	if p < 0 || w.vs[v].number <= 1 {
		return -1
	}
	return w.vs[p].children[w.vs[v].number-2]
}

func (w *walker) leftmostSibling(v int) int {
	p := w.vs[v].parent
	if p < 0 {
		return -1
	}
	return w.vs[p].children[0]
}

func (w *walker) nextLeft(v int) int {
	if c := w.vs[v].children; len(c) > 0 {
		return c[0]
	}
	return w.vs[v].thread
}

func (w *walker) nextRight(v int) int {
	if c := w.vs[v].children; len(c) > 0 {
		return c[len(c)-1]
	}
	return w.vs[v].thread
}

func (w *walker) firstWalk(v int) {
	vt := w.vs[v]
	left := w.leftSibling(v)
	if len(vt.children) == 0 {
		if left >= 0 {
			vt.prelim = w.vs[left].prelim + w.distance
		}
		return
	}

	defaultAncestor := vt.children[0]
	for _, c := range vt.children {
		w.firstWalk(c)
		defaultAncestor = w.apportion(c, defaultAncestor)
	}
	w.executeShifts(v)

	first, last := w.vs[vt.children[0]], w.vs[vt.children[len(vt.children)-1]]
	mid := (first.prelim + last.prelim) / 2
	if left >= 0 {
		vt.prelim = w.vs[left].prelim + w.distance
		vt.mod = vt.prelim - mid
	} else {
		vt.prelim = mid
	}
}

// apportion pushes the subtree of v right until its left contour clears
// the right contour of every subtree to its left.
func (w *walker) apportion(v, defaultAncestor int) int {
	left := w.leftSibling(v)
	if left < 0 {
		return defaultAncestor
	}
	vir, vor := v, v
	vil, vol := left, w.leftmostSibling(v)
	sir, sor := w.vs[vir].mod, w.vs[vor].mod
	sil, sol := w.vs[vil].mod, w.vs[vol].mod

	for w.nextRight(vil) >= 0 && w.nextLeft(vir) >= 0 {
		vil = w.nextRight(vil)
		vir = w.nextLeft(vir)
		vol = w.nextLeft(vol)
		vor = w.nextRight(vor)
		w.vs[vor].ancestor = v

		shift := (w.vs[vil].prelim + sil) - (w.vs[vir].prelim + sir) + w.distance
		if shift > 0 {
			w.moveSubtree(w.ancestorOf(vil, v, defaultAncestor), v, shift)
			sir += shift
			sor += shift
		}
		sil += w.vs[vil].mod
		sir += w.vs[vir].mod
		sol += w.vs[vol].mod
		sor += w.vs[vor].mod
	}

	if w.nextRight(vil) >= 0 && w.nextRight(vor) < 0 {
		w.vs[vor].thread = w.nextRight(vil)
		w.vs[vor].mod += sil - sor
	}
	if w.nextLeft(vir) >= 0 && w.nextLeft(vol) < 0 {
		w.vs[vol].thread = w.nextLeft(vir)
		w.vs[vol].mod += sir - sol
		defaultAncestor = v
	}
	return defaultAncestor
}

func (w *walker) moveSubtree(wl, wr int, shift float64) {
	l, r := w.vs[wl], w.vs[wr]
	subtrees := float64(r.number - l.number)
	r.change -= shift / subtrees
	r.shift += shift
	l.change += shift / subtrees
	r.prelim += shift
	r.mod += shift
}

func (w *walker) executeShifts(v int) {
	var shift, change float64
	children := w.vs[v].children
	for i := len(children) - 1; i >= 0; i-- {
		c := w.vs[children[i]]
		c.prelim += shift
		c.mod += shift
		change += c.change
		shift += c.shift + change
	}
}

func (w *walker) ancestorOf(vil, v, defaultAncestor int) int {
	a := w.vs[vil].ancestor
	if w.vs[a].parent == w.vs[v].parent {
		return a
	}
	return defaultAncestor
}

// secondWalk turns preliminary coordinates into absolute ones, stored
// back in prelim.
func (w *walker) secondWalk(v int, m float64) {
	vt := w.vs[v]
	vt.prelim += m
	for _, c := range vt.children {
		w.secondWalk(c, m+vt.mod)
	}
}
