package layout

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func arcDiscrepancy(l *LombardiLayout, tg Tangent) float64 {
	raw := l.Raw()
	phi := angleOf(r2.Sub(raw[tg.To], raw[tg.From]))
	return wrapAngle(2*phi + math.Pi - tg.AtFrom - tg.AtTo)
}

func TestLombardiTangentsFormArcs(t *testing.T) {
	l := NewLombardi(sampleGraph(), WithSeed(5))
	l.Compute(0)

	tangents := l.Tangents()
	if got, want := len(tangents), l.Stats().Edges; got != want {
		t.Fatalf("got %d tangents, want one per edge (%d)", got, want)
	}
	for _, tg := range tangents {
		if math.IsNaN(tg.AtFrom) || math.IsNaN(tg.AtTo) || math.IsInf(tg.AtFrom, 0) || math.IsInf(tg.AtTo, 0) {
			t.Fatalf("%s-%s: non-finite tangent %+v", tg.From, tg.To, tg)
		}
		if d := arcDiscrepancy(l, tg); math.Abs(d) > 1e-3 {
			t.Errorf("%s-%s: arc discrepancy %v", tg.From, tg.To, d)
		}
	}
}

func TestLombardiHighDegree(t *testing.T) {
	// A hub of degree 9 is searched by sampling instead of exhaustively.
	g := newFake().add("hub", "")
	for i := range 9 {
		g.add(fmt.Sprintf("n%d", i), "hub")
	}
	l := NewLombardi(g, WithSeed(2))
	l.Compute(0)
	for id, p := range l.Positions() {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			t.Errorf("%s: NaN position", id)
		}
	}
	for _, tg := range l.Tangents() {
		if d := arcDiscrepancy(l, tg); math.Abs(d) > 1e-3 {
			t.Errorf("%s-%s: arc discrepancy %v", tg.From, tg.To, d)
		}
	}
}

func TestLombardiFinalStepReducesDiscrepancy(t *testing.T) {
	params := DefaultLombardiParams()
	params.FinalFraction = 0
	before := NewLombardi(sampleGraph(), WithSeed(9), WithLombardi(params))
	before.Compute(0)

	after := NewLombardi(sampleGraph(), WithSeed(9))
	after.Compute(0)

	var sumBefore, sumAfter float64
	for _, tg := range before.Tangents() {
		sumBefore += math.Abs(arcDiscrepancy(before, tg))
	}
	for _, tg := range after.Tangents() {
		sumAfter += math.Abs(arcDiscrepancy(after, tg))
	}
	if sumAfter >= sumBefore && sumBefore > 0 {
		t.Errorf("total discrepancy %v with final step, %v without", sumAfter, sumBefore)
	}
}

func TestLombardiSlotsStayPermutations(t *testing.T) {
	b := newBase(Lombardi, sampleGraph(), nil)
	rng := b.begin()
	s := newSprings(&b, rng)
	r := newRotors(s, DefaultLombardiParams(), rng)
	for range 5 {
		s.forces()
		r.rotate(1)
		r.tangential()
		s.displace(0.1)
		r.shuffle()
	}
	for _, v := range r.vs {
		seen := make([]bool, v.degree())
		for _, sl := range v.slot {
			if sl < 0 || sl >= v.degree() || seen[sl] {
				t.Fatalf("%s: slots %v are not a permutation", v.id, v.slot)
			}
			seen[sl] = true
		}
	}
}
