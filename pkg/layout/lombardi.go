package layout

import (
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/arbor/pkg/perm"
)

// Tangent is the direction, in radians and raw coordinates, in which an
// edge leaves each of its endpoints. Drawing the edge as the circular arc
// with these end tangents reproduces the Lombardi drawing.
type Tangent struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	AtFrom float64 `json:"at_from"`
	AtTo   float64 `json:"at_to"`
}

// lmbVertex is a spring vertex with a rotor: its incident edges occupy
// evenly spaced slots, turned as a whole by rot.
type lmbVertex struct {
	*frVertex
	rot      float64
	incident []int // edge indices
	slot     []int // slot[j] is the slot of incident[j]
}

func (v *lmbVertex) degree() int { return len(v.incident) }

// tangent returns the direction of the j-th incident edge.
func (v *lmbVertex) tangent(j int) float64 {
	return v.rot + 2*math.Pi*float64(v.slot[j])/float64(v.degree())
}

// rotors holds the angular state of one Lombardi run.
type rotors struct {
	s   *springs
	vs  []*lmbVertex
	at  [][2]int // for each edge, its position in the incident list of a and b
	p   LombardiParams
	rng *rand.Rand

	ta, tb []float64 // free per-edge tangents used by the final step
}

func newRotors(s *springs, p LombardiParams, rng *rand.Rand) *rotors {
	r := &rotors{s: s, p: p, rng: rng, at: make([][2]int, len(s.edges))}
	for _, v := range s.verts {
		r.vs = append(r.vs, &lmbVertex{frVertex: v})
	}
	for i, e := range s.edges {
		a, b := r.vs[e.a], r.vs[e.b]
		r.at[i] = [2]int{len(a.incident), len(b.incident)}
		a.incident = append(a.incident, i)
		b.incident = append(b.incident, i)
	}
	for i, v := range r.vs {
		v.slot = perm.Seq(v.degree())
		if v.degree() > 0 {
			v.rot = r.chord(i, r.other(i, v.incident[0]))
		}
	}
	return r
}

func (r *rotors) other(v, e int) int {
	if ed := r.s.edges[e]; ed.a != v {
		return ed.a
	}
	return r.s.edges[e].b
}

// chord returns the direction from vertex v to vertex u.
func (r *rotors) chord(v, u int) float64 {
	return angleOf(r2.Sub(r.vs[u].pos, r.vs[v].pos))
}

// tangentAt returns the current tangent of edge e at its endpoint v.
func (r *rotors) tangentAt(v, e int) float64 {
	j := r.at[e][0]
	if r.s.edges[e].b == v {
		j = r.at[e][1]
	}
	return r.vs[v].tangent(j)
}

// targets returns, for each incident edge of v, the tangent at v that
// would make the edge a circular arc given the tangent at the far end.
func (r *rotors) targets(v int) []float64 {
	out := make([]float64, r.vs[v].degree())
	for j, e := range r.vs[v].incident {
		u := r.other(v, e)
		out[j] = 2*r.chord(v, u) + math.Pi - r.tangentAt(u, e)
	}
	return out
}

// rotate turns every rotor toward its arc targets and, more weakly,
// toward the straight chords.
func (r *rotors) rotate(scale float64) {
	torque := make([]float64, len(r.vs))
	for i, v := range r.vs {
		if v.degree() == 0 {
			continue
		}
		target := r.targets(i)
		for j, e := range v.incident {
			theta := v.tangent(j)
			torque[i] += r.p.Kopp*wrapAngle(target[j]-theta) +
				r.p.Kadj*wrapAngle(r.chord(i, r.other(i, e))-theta)
		}
		torque[i] /= float64(v.degree())
	}
	for i, v := range r.vs {
		v.rot = wrapAngle(v.rot + scale*torque[i])
	}
}

// tangential pulls each vertex toward where its neighbours' tangents say
// it should be for the current chord lengths.
func (r *rotors) tangential() {
	for i, v := range r.vs {
		if v.degree() == 0 {
			continue
		}
		var pull r2.Vec
		for j, e := range v.incident {
			u := r.other(i, e)
			delta := r2.Sub(r.vs[u].pos, v.pos)
			d := r2.Norm(delta)
			if d == 0 {
				continue
			}
			phi := angleOf(delta)
			ideal := (v.tangent(j) + r.tangentAt(u, e) - math.Pi) / 2
			if math.Abs(wrapAngle(ideal-phi)) > math.Pi/2 {
				ideal += math.Pi
			}
			implied := r2.Sub(r.vs[u].pos, polar(d, ideal))
			pull = r2.Add(pull, r2.Sub(implied, v.pos))
		}
		v.disp = r2.Add(v.disp, r2.Scale(r.p.Tangential/float64(v.degree()), pull))
	}
}

// cost is the weighted misalignment of v's tangents against targets when
// its edges occupy the given slots.
func (r *rotors) cost(v *lmbVertex, slots []int, target []float64) float64 {
	var c float64
	n := float64(v.degree())
	for j, s := range slots {
		c += math.Abs(wrapAngle(v.rot+2*math.Pi*float64(s)/n-target[j])) * r.p.Kopp
	}
	return c
}

// shuffle searches, per vertex, for the slot assignment with the lowest
// cost: every permutation for small degrees, random swaps and shuffles
// otherwise.
func (r *rotors) shuffle() {
	for i, v := range r.vs {
		if v.degree() < 2 {
			continue
		}
		target := r.targets(i)
		best := slices.Clone(v.slot)
		bestCost := r.cost(v, best, target)

		if v.degree() <= r.p.MaxExhaustiveDegree {
			perm.Each(v.degree(), func(p []int) bool {
				if c := r.cost(v, p, target); c < bestCost {
					bestCost = c
					copy(best, p)
				}
				return true
			})
		} else {
			cand := make([]int, len(best))
			for k := 0; k < r.p.RandomSamples; k++ {
				copy(cand, best)
				if k%2 == 0 {
					perm.SwapRandom(r.rng, cand)
				} else {
					perm.Shuffle(r.rng, cand)
				}
				if c := r.cost(v, cand, target); c < bestCost {
					bestCost = c
					copy(best, cand)
				}
			}
		}
		v.slot = best
	}
}

// freeze detaches the edge tangents from the rotors for the final step.
func (r *rotors) freeze() {
	r.ta = make([]float64, len(r.s.edges))
	r.tb = make([]float64, len(r.s.edges))
	for i, e := range r.s.edges {
		r.ta[i] = wrapAngle(r.tangentAt(e.a, i))
		r.tb[i] = wrapAngle(r.tangentAt(e.b, i))
	}
}

// finalStep halves the arc discrepancy of every edge. A degree-1 endpoint
// takes the whole correction so the other end keeps its spacing.
func (r *rotors) finalStep() {
	for i, e := range r.s.edges {
		delta := r.discrepancy(i)
		da, db := r.vs[e.a].degree(), r.vs[e.b].degree()
		switch {
		case da == 1 && db != 1:
			r.ta[i] += delta / 2
		case db == 1 && da != 1:
			r.tb[i] += delta / 2
		default:
			r.ta[i] += delta / 4
			r.tb[i] += delta / 4
		}
		r.ta[i] = wrapAngle(r.ta[i])
		r.tb[i] = wrapAngle(r.tb[i])
	}
}

// discrepancy is how far the frozen tangents of edge i are from a
// circular arc.
func (r *rotors) discrepancy(i int) float64 {
	e := r.s.edges[i]
	return wrapAngle(2*r.chord(e.a, e.b) + math.Pi - r.ta[i] - r.tb[i])
}

// LombardiLayout extends the force layout with per-edge tangent angles
// chosen so that edges can be drawn as circular arcs meeting each vertex
// at evenly spaced angles.
type LombardiLayout struct {
	base
	tangents []Tangent
}

// NewLombardi builds a Lombardi-style layout over g.
func NewLombardi(g Graph, opts ...Option) *LombardiLayout {
	return &LombardiLayout{base: newBase(Lombardi, g, opts)}
}

// Tangents returns the edge tangents of the last run in edge order.
func (l *LombardiLayout) Tangents() []Tangent { return slices.Clone(l.tangents) }

// Compute runs the simulation. The last FinalFraction of the iterations
// only adjust edge tangents; positions stay fixed.
func (l *LombardiLayout) Compute(jitter float64) Layout {
	started := time.Now()
	rng := l.begin()
	s := newSprings(&l.base, rng)
	r := newRotors(s, l.cfg.lombardi, rng)
	p := l.cfg.lombardi

	final := min(s.steps, int(math.Round(float64(s.steps)*p.FinalFraction)))
	every := 0
	if p.ShuffleRate > 0 {
		every = max(1, int(math.Round(1/p.ShuffleRate)))
	}

	t := s.t0
	for i := 0; i < s.steps-final && len(s.verts) > 0; i++ {
		s.forces()
		scale := 1.0
		if s.t0 > 0 {
			scale = t / s.t0
		}
		r.rotate(scale)
		r.tangential()
		s.displace(t)
		if every > 0 && (i+1)%every == 0 {
			r.shuffle()
		}
		t = s.cool(t)
	}

	r.freeze()
	for i := 0; i < final; i++ {
		r.finalStep()
	}

	l.tangents = make([]Tangent, len(s.edges))
	for i, e := range s.edges {
		l.tangents[i] = Tangent{
			From:   r.vs[e.a].id,
			To:     r.vs[e.b].id,
			AtFrom: r.ta[i],
			AtTo:   r.tb[i],
		}
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
