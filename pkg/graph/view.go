package graph

import "slices"

// The methods in this file expose the graph to layout algorithms. They
// are keyed by node ID and tolerate unknown IDs by returning zero values.

// NodeIDs returns all node IDs sorted ascending.
func (g *Graph) NodeIDs() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.sortedIDs()
}

// Label returns the display text of a node.
func (g *Graph) Label(id string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[id]; ok {
		return n.DisplayLabel()
	}
	return ""
}

// Visible reports whether the node exists and is not hidden.
func (g *Graph) Visible(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	return ok && !n.Hidden
}

// Collapsed reports whether any ancestor of the node is folded or hidden.
func (g *Graph) Collapsed(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return false
	}
	for steps := 0; n.Parent != "" && steps <= len(g.nodes); steps++ {
		n = g.nodes[n.Parent]
		if n.Folded || n.Hidden {
			return true
		}
	}
	return false
}

// Parent returns the parent ID, or "" for roots and unknown nodes.
func (g *Graph) Parent(id string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[id]; ok {
		return n.Parent
	}
	return ""
}

// Children returns a copy of the ordered child IDs.
func (g *Graph) Children(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[id]; ok {
		return slices.Clone(n.Children)
	}
	return nil
}

// Links returns the targets of the visible cross-links leaving the node.
func (g *Graph) Links(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []string
	for _, l := range g.links {
		if l.From == id && !l.Hidden {
			out = append(out, l.To)
		}
	}
	return out
}

// Position returns the stored position of a node.
func (g *Graph) Position(id string) (x, y float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if n, ok := g.nodes[id]; ok {
		return n.X, n.Y
	}
	return 0, 0
}

// SetPosition stores a node position.
func (g *Graph) SetPosition(id string, x, y float64) error {
	return g.update(id, func(n *Node) { n.X, n.Y = x, y })
}

// Root returns the designated root, or the first parentless node by ID.
// Returns "" for an empty graph.
func (g *Graph) Root() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.root != "" {
		return g.root
	}
	for _, id := range g.sortedIDs() {
		if g.nodes[id].Parent == "" {
			return id
		}
	}
	return ""
}
