package layout

import (
	"cmp"
	"slices"
)

// treeVertex is an entry of a spanning tree arena. Parent and children are
// arena indices; the root has parent -1.
type treeVertex struct {
	*vertex
	tree     *spanningTree
	parent   int
	children []int
	depth    int
}

func (t *treeVertex) ParentID() string {
	if t.parent < 0 {
		return ""
	}
	return t.tree.nodes[t.parent].id
}

func (t *treeVertex) ChildIDs() []string {
	ids := make([]string, len(t.children))
	for i, c := range t.children {
		ids[i] = t.tree.nodes[c].id
	}
	return ids
}

func (t *treeVertex) Depth() int { return t.depth }

// spanningTree is a breadth-first spanning tree over the simulated edges.
// Arena index 0 is the root; nodes appear in breadth-first order.
type spanningTree struct {
	nodes    []*treeVertex
	maxDepth int
}

// buildTree spans every vertex reachable from root. Each vertex is
// claimed by the first vertex that reaches it, so cross-links that
// duplicate or contradict the parent relation cannot create cycles.
// Children are ordered by label, then ID.
func buildTree(b *base, root int) *spanningTree {
	t := &spanningTree{}
	if root < 0 {
		return t
	}
	visited := make([]bool, len(b.verts))
	visited[root] = true
	t.nodes = append(t.nodes, &treeVertex{vertex: b.verts[root], tree: t, parent: -1})

	for head := 0; head < len(t.nodes); head++ {
		cur := t.nodes[head]
		var next []int
		for _, n := range b.adj[b.index[cur.id]] {
			if !visited[n] {
				visited[n] = true
				next = append(next, n)
			}
		}
		slices.SortFunc(next, func(x, y int) int {
			return cmp.Or(
				cmp.Compare(b.verts[x].label, b.verts[y].label),
				cmp.Compare(b.verts[x].id, b.verts[y].id),
			)
		})
		for _, n := range next {
			cur.children = append(cur.children, len(t.nodes))
			t.nodes = append(t.nodes, &treeVertex{
				vertex: b.verts[n],
				tree:   t,
				parent: head,
				depth:  cur.depth + 1,
			})
			t.maxDepth = max(t.maxDepth, cur.depth+1)
		}
	}
	return t
}

// preorder visits the subtree of i, parents before children.
func (t *spanningTree) preorder(i int, fn func(i int)) {
	fn(i)
	for _, c := range t.nodes[i].children {
		t.preorder(c, fn)
	}
}

// place records every tree vertex as placed on b.
func (t *spanningTree) place(b *base) {
	for _, n := range t.nodes {
		b.placed = append(b.placed, n)
	}
}

// navigable exposes the arena through [TreeNavigable].
func (t *spanningTree) navigable() []TreeNavigable {
	out := make([]TreeNavigable, len(t.nodes))
	for i, n := range t.nodes {
		out[i] = n
	}
	return out
}
