package graph

import (
	"errors"
	"slices"
	"sync"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an operation references a node that
	// does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrHasParent is returned by [Graph.AddChild] when the child already
	// hangs below another parent. Every node has at most one parent.
	ErrHasParent = errors.New("node already has a parent")

	// ErrParentCycle is returned by [Graph.AddChild] and [Graph.Validate]
	// when following parent pointers would loop.
	ErrParentCycle = errors.New("parent relationship forms a cycle")

	// ErrSelfLink is returned by [Graph.AddLink] when both endpoints are
	// the same node.
	ErrSelfLink = errors.New("cross-link must connect two different nodes")

	// ErrUnknownLink is returned when a cross-link does not exist.
	ErrUnknownLink = errors.New("unknown cross-link")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
type Metadata map[string]any

// Node is a vertex of the tree. The zero value is not usable; ID must be
// set before adding the node to a [Graph].
type Node struct {
	ID       string   // Unique identifier
	Label    string   // Display text (defaults to ID)
	Parent   string   // Parent ID, empty for roots
	Children []string // Ordered child IDs
	Hidden   bool     // Node is not shown
	Folded   bool     // Node's subtree is collapsed
	X, Y     float64  // Stored position
	Meta     Metadata
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Link is a cross-link: a non-tree edge between two nodes.
type Link struct {
	From   string
	To     string
	Hidden bool
}

// Graph is a tree of nodes with optional cross-links between any two
// nodes. It is the editing model that layouts read from and write
// positions back into.
//
// All methods are safe for concurrent use.
type Graph struct {
	mu    sync.RWMutex
	nodes map[string]*Node
	links []Link
	root  string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode adds a node without relationships. Children and Parent on n are
// ignored; use [Graph.AddChild] to connect nodes.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	n.Parent = ""
	n.Children = nil
	g.nodes[n.ID] = &n
	return nil
}

// AddChild appends child to parent's ordered children.
func (g *Graph) AddChild(parent, child string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.nodes[parent]
	if !ok {
		return ErrUnknownNode
	}
	c, ok := g.nodes[child]
	if !ok {
		return ErrUnknownNode
	}
	if c.Parent != "" {
		return ErrHasParent
	}
	for id := parent; id != ""; id = g.nodes[id].Parent {
		if id == child {
			return ErrParentCycle
		}
	}
	c.Parent = parent
	p.Children = append(p.Children, child)
	return nil
}

// Detach removes the node from its parent's children. The node's own
// subtree is kept.
func (g *Graph) Detach(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if n.Parent == "" {
		return nil
	}
	p := g.nodes[n.Parent]
	p.Children = slices.DeleteFunc(p.Children, func(c string) bool { return c == id })
	n.Parent = ""
	return nil
}

// AddLink adds a visible cross-link from one node to another.
func (g *Graph) AddLink(from, to string) error {
	if from == to {
		return ErrSelfLink
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[from]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.nodes[to]; !ok {
		return ErrUnknownNode
	}
	g.links = append(g.links, Link{From: from, To: to})
	return nil
}

// RemoveLink removes the first cross-link from→to.
func (g *Graph) RemoveLink(from, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := slices.IndexFunc(g.links, func(l Link) bool { return l.From == from && l.To == to })
	if i < 0 {
		return ErrUnknownLink
	}
	g.links = slices.Delete(g.links, i, i+1)
	return nil
}

// SetLinkHidden shows or hides every cross-link from→to.
func (g *Graph) SetLinkHidden(from, to string, hidden bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	found := false
	for i := range g.links {
		if g.links[i].From == from && g.links[i].To == to {
			g.links[i].Hidden = hidden
			found = true
		}
	}
	if !found {
		return ErrUnknownLink
	}
	return nil
}

// SetHidden shows or hides a node. Descendants of a hidden node report
// [Graph.Collapsed] as true.
func (g *Graph) SetHidden(id string, hidden bool) error {
	return g.update(id, func(n *Node) { n.Hidden = hidden })
}

// Fold collapses the node: its descendants report [Graph.Collapsed] as
// true while the node itself stays in view.
func (g *Graph) Fold(id string) error {
	return g.update(id, func(n *Node) { n.Folded = true })
}

// Unfold expands a folded node.
func (g *Graph) Unfold(id string) error {
	return g.update(id, func(n *Node) { n.Folded = false })
}

// SetLabel changes the display text of a node.
func (g *Graph) SetLabel(id, label string) error {
	return g.update(id, func(n *Node) { n.Label = label })
}

// SetRoot designates the layout root. An empty id restores the default
// (first parentless node by ID).
func (g *Graph) SetRoot(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.nodes[id]; id != "" && !ok {
		return ErrUnknownNode
	}
	g.root = id
	return nil
}

func (g *Graph) update(id string, fn func(*Node)) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	fn(n)
	return nil
}

// Node returns a copy of the node with the given ID.
func (g *Graph) Node(id string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return cloneNode(n), true
}

// Nodes returns copies of all nodes sorted by ID.
func (g *Graph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Node, 0, len(g.nodes))
	for _, id := range g.sortedIDs() {
		out = append(out, cloneNode(g.nodes[id]))
	}
	return out
}

// Edges returns a copy of all cross-links in insertion order.
func (g *Graph) Edges() []Link {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.links)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

// LinkCount returns the number of cross-links in the graph.
func (g *Graph) LinkCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.links)
}

// Validate checks graph integrity: parent and child lists agree, links
// reference existing nodes and parent pointers never loop.
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for id, n := range g.nodes {
		if n.Parent != "" {
			p, ok := g.nodes[n.Parent]
			if !ok || !slices.Contains(p.Children, id) {
				return ErrUnknownNode
			}
		}
		for _, c := range n.Children {
			if cn, ok := g.nodes[c]; !ok || cn.Parent != id {
				return ErrUnknownNode
			}
		}
	}
	for _, l := range g.links {
		if _, ok := g.nodes[l.From]; !ok {
			return ErrUnknownNode
		}
		if _, ok := g.nodes[l.To]; !ok {
			return ErrUnknownNode
		}
	}
	for id := range g.nodes {
		steps := 0
		for cur := g.nodes[id].Parent; cur != ""; cur = g.nodes[cur].Parent {
			if steps++; steps > len(g.nodes) {
				return ErrParentCycle
			}
		}
	}
	return nil
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func cloneNode(n *Node) Node {
	c := *n
	c.Children = slices.Clone(n.Children)
	if n.Meta != nil {
		c.Meta = make(Metadata, len(n.Meta))
		for k, v := range n.Meta {
			c.Meta[k] = v
		}
	}
	return c
}
