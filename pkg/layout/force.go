package layout

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/spatial/r2"
)

// frVertex is a vertex of the spring simulation.
type frVertex struct {
	*vertex
	disp r2.Vec
}

// springs is the Fruchterman–Reingold core shared by the force and
// Lombardi layouts. Edges index into verts.
type springs struct {
	verts []*frVertex
	edges []edge
	k     float64
	t0    float64
	steps int
	rng   *rand.Rand
}

// newSprings collects the linked vertices of b and places them either at
// their stored position or uniformly at random in the unit square.
func newSprings(b *base, rng *rand.Rand) *springs {
	s := &springs{t0: b.cfg.temperature, steps: b.cfg.iterations, rng: rng}
	local := make([]int, len(b.verts))
	for i, v := range b.verts {
		local[i] = -1
		if !v.linked {
			continue
		}
		if !b.cfg.warmStart {
			v.SetLocation(rng.Float64(), rng.Float64())
		}
		local[i] = len(s.verts)
		s.verts = append(s.verts, &frVertex{vertex: v})
	}
	for _, e := range b.edges {
		s.edges = append(s.edges, edge{a: local[e.a], b: local[e.b]})
	}
	if n := len(s.verts); n > 0 {
		s.k = math.Sqrt(1 / float64(n))
	}
	return s
}

// cool lowers the temperature linearly so it reaches zero after the last
// step.
func (s *springs) cool(t float64) float64 {
	if s.steps == 0 {
		return 0
	}
	return math.Max(0, t-s.t0/float64(s.steps))
}

// separation returns p - q, replacing a zero vector by a tiny random one.
func (s *springs) separation(p, q r2.Vec) (r2.Vec, float64) {
	delta := r2.Sub(p, q)
	d := r2.Norm(delta)
	for d == 0 {
		delta = r2.Vec{X: 1e-6 * (s.rng.Float64() - 0.5), Y: 1e-6 * (s.rng.Float64() - 0.5)}
		d = r2.Norm(delta)
	}
	return delta, d
}

// forces accumulates repulsion k²/d between every pair and attraction d²/k
// along every edge into disp. The two balance at distance k, so a lone
// edge settles at its ideal length.
func (s *springs) forces() {
	for _, v := range s.verts {
		v.disp = r2.Vec{}
	}
	k2 := s.k * s.k
	for i, v := range s.verts {
		for _, u := range s.verts[i+1:] {
			delta, d := s.separation(v.pos, u.pos)
			f := r2.Scale(k2/(d*d), delta)
			v.disp = r2.Add(v.disp, f)
			u.disp = r2.Sub(u.disp, f)
		}
	}
	for _, e := range s.edges {
		v, u := s.verts[e.a], s.verts[e.b]
		delta := r2.Sub(v.pos, u.pos)
		d := r2.Norm(delta)
		if d == 0 {
			continue
		}
		f := r2.Scale(d/s.k, delta)
		v.disp = r2.Sub(v.disp, f)
		u.disp = r2.Add(u.disp, f)
	}
}

// displace moves every vertex along its displacement, at most t far.
func (s *springs) displace(t float64) {
	for _, v := range s.verts {
		l := r2.Norm(v.disp)
		if l == 0 {
			continue
		}
		v.pos = r2.Add(v.pos, r2.Scale(math.Min(l, t)/l, v.disp))
	}
}

// ForceLayout is the Fruchterman–Reingold force-directed layout.
type ForceLayout struct {
	base
}

// NewForce builds a force-directed layout over g.
func NewForce(g Graph, opts ...Option) *ForceLayout {
	return &ForceLayout{base: newBase(Force, g, opts)}
}

// Compute runs the simulation for the configured number of iterations.
func (l *ForceLayout) Compute(jitter float64) Layout {
	started := time.Now()
	rng := l.begin()
	s := newSprings(&l.base, rng)

	t := s.t0
	for i := 0; i < s.steps && len(s.verts) > 0; i++ {
		s.forces()
		s.displace(t)
		t = s.cool(t)
	}
	for _, v := range s.verts {
		l.placed = append(l.placed, v)
	}
	if len(s.verts) > 0 {
		l.stats.Iterations = s.steps
	}
	l.finish(jitter, rng, started)
	return l
}
