package layout

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// Stats summarizes one [Layout.Compute] run.
type Stats struct {
	Vertices   int           `json:"vertices"`   // taking-part vertices
	Edges      int           `json:"edges"`      // simulated edges after deduplication
	Isolated   int           `json:"isolated"`   // vertices without any edge
	Placed     int           `json:"placed"`     // vertices positioned by the algorithm
	Iterations int           `json:"iterations"` // simulation steps, 0 for the tree and radial layouts
	Duration   time.Duration `json:"duration"`   // wall time of the run
}

// base is the per-run context shared by all algorithms. It is built once
// from a snapshot of the graph and owns every vertex and edge.
type base struct {
	alg   Algorithm
	cfg   config
	root  string
	verts []*vertex // sorted by ID
	index map[string]int
	edges []edge // a < b, deduplicated
	adj   [][]int

	placed    []Positionable
	raw       map[string]r2.Vec
	positions map[string]r2.Vec
	isolated  []string
	stats     Stats
}

func newBase(alg Algorithm, g Graph, opts []Option) base {
	b := base{
		alg:   alg,
		cfg:   newConfig(opts),
		root:  g.Root(),
		index: make(map[string]int),
	}

	ids := slices.Clone(g.NodeIDs())
	slices.Sort(ids)
	for _, id := range slices.Compact(ids) {
		if !participates(g, id) {
			continue
		}
		x, y := g.Position(id)
		b.index[id] = len(b.verts)
		b.verts = append(b.verts, &vertex{id: id, label: g.Label(id), start: r2.Vec{X: x, Y: y}})
	}

	seen := make(map[edge]bool)
	add := func(from, to string) {
		i, ok := b.index[from]
		j, ok2 := b.index[to]
		if !ok || !ok2 || i == j {
			return
		}
		e := edge{a: min(i, j), b: max(i, j)}
		if seen[e] {
			return
		}
		seen[e] = true
		b.edges = append(b.edges, e)
	}
	for _, v := range b.verts {
		if b.cfg.treeEdges {
			if p := g.Parent(v.id); p != "" {
				add(p, v.id)
			}
		}
		if b.cfg.crossLinks {
			for _, to := range g.Links(v.id) {
				add(v.id, to)
			}
		}
	}

	b.adj = make([][]int, len(b.verts))
	for _, e := range b.edges {
		b.verts[e.a].linked = true
		b.verts[e.b].linked = true
		b.adj[e.a] = append(b.adj[e.a], e.b)
		b.adj[e.b] = append(b.adj[e.b], e.a)
	}
	for _, v := range b.verts {
		if !v.linked {
			b.isolated = append(b.isolated, v.id)
		}
	}
	return b
}

// begin resets the output of a previous run and returns the run's
// generator.
func (b *base) begin() *rand.Rand {
	b.placed = b.placed[:0]
	b.raw = nil
	b.positions = nil
	for _, v := range b.verts {
		v.pos = v.start
	}
	b.stats = Stats{
		Vertices: len(b.verts),
		Edges:    len(b.edges),
		Isolated: len(b.isolated),
	}
	return rand.New(rand.NewPCG(b.cfg.seed, b.cfg.seed^0xdeadbeef))
}

// finish jitters, normalizes and sidelines. Every algorithm ends here.
func (b *base) finish(jitter float64, rng *rand.Rand, started time.Time) {
	for _, p := range b.placed {
		p.Jitter(jitter, rng)
	}

	box := emptyBox()
	b.raw = make(map[string]r2.Vec, len(b.placed))
	for _, p := range b.placed {
		b.raw[p.ID()] = p.Pos()
		p.Bounds(&box)
	}

	b.positions = make(map[string]r2.Vec, len(b.verts))
	for _, p := range b.placed {
		p.Normalise(box, b.cfg.frame)
		b.positions[p.ID()] = p.Pos()
	}

	if b.cfg.sideline {
		n := float64(len(b.isolated))
		for i, id := range b.isolated {
			v := b.verts[b.index[id]]
			v.SetLocation(SidelineX, float64(i)/n)
			b.positions[id] = v.Pos()
		}
	}

	b.stats.Placed = len(b.placed)
	b.stats.Duration = time.Since(started)
	b.cfg.logger.Debug("layout computed",
		"algorithm", b.alg,
		"vertices", b.stats.Vertices,
		"edges", b.stats.Edges,
		"isolated", b.stats.Isolated,
		"placed", b.stats.Placed,
		"duration", b.stats.Duration)
}

// linkedRoot resolves the root of the tree layouts: the configured root,
// else the graph's root, else the first linked vertex. It returns -1 when
// no vertex has an edge.
func (b *base) linkedRoot() int {
	for _, id := range []string{b.cfg.root, b.root} {
		if i, ok := b.index[id]; ok && b.verts[i].linked {
			return i
		}
	}
	for i, v := range b.verts {
		if v.linked {
			if b.cfg.root != "" {
				b.cfg.logger.Debug("root not laid out, falling back", "root", b.cfg.root, "using", v.id)
			}
			return i
		}
	}
	return -1
}

// Algorithm returns the algorithm that produced the layout.
func (b *base) Algorithm() Algorithm { return b.alg }

// Positions returns the normalized position of every placed and sidelined
// vertex. It is empty before [Layout.Compute].
func (b *base) Positions() map[string]r2.Vec { return maps.Clone(b.positions) }

// Raw returns the positions produced by the algorithm before
// normalization. Sidelined vertices are not included.
func (b *base) Raw() map[string]r2.Vec { return maps.Clone(b.raw) }

// Isolated returns the IDs of taking-part vertices without any edge,
// sorted.
func (b *base) Isolated() []string { return slices.Clone(b.isolated) }

// Stats returns statistics of the last run.
func (b *base) Stats() Stats { return b.stats }

// Commit writes every computed position to w in ID order. It stops at the
// first error.
func (b *base) Commit(w PositionWriter) error {
	for _, id := range slices.Sorted(maps.Keys(b.positions)) {
		p := b.positions[id]
		if err := w.SetPosition(id, p.X, p.Y); err != nil {
			return fmt.Errorf("commit %s: %w", id, err)
		}
	}
	return nil
}
