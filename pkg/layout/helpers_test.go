package layout

import (
	"errors"
	"maps"
	"slices"
)

type fakeNode struct {
	label     string
	parent    string
	children  []string
	links     []string
	hidden    bool
	collapsed bool
	x, y      float64
}

// fakeGraph is a minimal Graph and PositionWriter for tests.
type fakeGraph struct {
	nodes map[string]*fakeNode
	root  string
}

func newFake() *fakeGraph { return &fakeGraph{nodes: make(map[string]*fakeNode)} }

// add inserts id below parent ("" for a root).
func (g *fakeGraph) add(id, parent string) *fakeGraph {
	g.nodes[id] = &fakeNode{parent: parent}
	if parent != "" {
		g.nodes[parent].children = append(g.nodes[parent].children, id)
	} else if g.root == "" {
		g.root = id
	}
	return g
}

func (g *fakeGraph) link(from, to string) *fakeGraph {
	g.nodes[from].links = append(g.nodes[from].links, to)
	return g
}

func (g *fakeGraph) NodeIDs() []string { return slices.Collect(maps.Keys(g.nodes)) }

func (g *fakeGraph) Label(id string) string {
	if n := g.nodes[id]; n != nil && n.label != "" {
		return n.label
	}
	return id
}

func (g *fakeGraph) Visible(id string) bool {
	n := g.nodes[id]
	return n != nil && !n.hidden
}

// Collapsed reports the node's own flag or a hidden ancestor.
func (g *fakeGraph) Collapsed(id string) bool {
	n := g.nodes[id]
	if n == nil {
		return false
	}
	if n.collapsed {
		return true
	}
	for p := g.nodes[n.parent]; p != nil; p = g.nodes[p.parent] {
		if p.hidden {
			return true
		}
	}
	return false
}

func (g *fakeGraph) Parent(id string) string { return g.nodes[id].parent }
func (g *fakeGraph) Children(id string) []string {
	return slices.Clone(g.nodes[id].children)
}
func (g *fakeGraph) Links(id string) []string { return slices.Clone(g.nodes[id].links) }
func (g *fakeGraph) Position(id string) (float64, float64) {
	return g.nodes[id].x, g.nodes[id].y
}
func (g *fakeGraph) Root() string { return g.root }

func (g *fakeGraph) SetPosition(id string, x, y float64) error {
	n, ok := g.nodes[id]
	if !ok {
		return errors.New("no such node")
	}
	n.x, n.y = x, y
	return nil
}

// sampleGraph is a three-level tree with two cross-links and two
// isolated nodes.
//
//	r ─┬─ a ─┬─ a1 ···> c1
//	   │     └─ a2
//	   ├─ b ─── b1 ···> r
//	   └─ c ─── c1
//	z1, z2
func sampleGraph() *fakeGraph {
	g := newFake().
		add("r", "").
		add("a", "r").add("b", "r").add("c", "r").
		add("a1", "a").add("a2", "a").
		add("b1", "b").
		add("c1", "c").
		add("z1", "").add("z2", "")
	g.link("a1", "c1").link("b1", "r")
	return g
}

func mustNew(t interface{ Fatalf(string, ...any) }, alg Algorithm, g Graph, opts ...Option) Layout {
	l, err := New(alg, g, opts...)
	if err != nil {
		t.Fatalf("New(%s): %v", alg, err)
	}
	return l
}
