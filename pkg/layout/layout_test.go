package layout

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/go-test/deep"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func TestParseAlgorithm(t *testing.T) {
	for _, a := range Algorithms() {
		got, err := ParseAlgorithm(string(a))
		if err != nil || got != a {
			t.Errorf("ParseAlgorithm(%q) = %q, %v", a, got, err)
		}
	}
	if _, err := ParseAlgorithm("spiral"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("ParseAlgorithm(spiral) error = %v, want ErrUnknownAlgorithm", err)
	}
	if _, err := New("spiral", newFake()); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("New(spiral) error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestEmptyGraph(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			l := mustNew(t, alg, newFake()).Compute(0.1)
			if got := l.Positions(); len(got) != 0 {
				t.Errorf("Positions() = %v, want empty", got)
			}
			if l.Algorithm() != alg {
				t.Errorf("Algorithm() = %q", l.Algorithm())
			}
		})
	}
}

func TestContainment(t *testing.T) {
	frame := FittingFrame
	for _, alg := range Algorithms() {
		for _, jitter := range []float64{0, 0.05} {
			t.Run(fmt.Sprintf("%s/jitter=%v", alg, jitter), func(t *testing.T) {
				l := mustNew(t, alg, sampleGraph(), WithSeed(3)).Compute(jitter)
				isolated := l.Isolated()
				pos := l.Positions()
				if len(pos) != 10 {
					t.Fatalf("got %d positions, want 10", len(pos))
				}
				for id, p := range pos {
					if slices.Contains(isolated, id) {
						continue
					}
					if p.X < frame.Min.X-tol || p.X > frame.Max.X+tol ||
						p.Y < frame.Min.Y-tol || p.Y > frame.Max.Y+tol {
						t.Errorf("jitter %v: %s at %v outside frame", jitter, id, p)
					}
				}
			})
		}
	}
}

func TestIsolationPlacement(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			g := sampleGraph().add("z0", "")
			l := mustNew(t, alg, g).Compute(0)

			want := []string{"z0", "z1", "z2"}
			if got := l.Isolated(); !slices.Equal(got, want) {
				t.Fatalf("Isolated() = %v, want %v", got, want)
			}
			pos := l.Positions()
			for i, id := range want {
				p := pos[id]
				if math.Abs(p.X-SidelineX) > tol || math.Abs(p.Y-float64(i)/3) > tol {
					t.Errorf("%s at %v, want (%v, %v)", id, p, SidelineX, float64(i)/3)
				}
			}
			if _, ok := l.Raw()["z0"]; ok {
				t.Error("sidelined vertex reported in Raw()")
			}
		})
	}
}

func TestNoSideline(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			l := mustNew(t, alg, sampleGraph(), WithSideline(false)).Compute(0)
			pos := l.Positions()
			if _, ok := pos["z1"]; ok {
				t.Error("isolated vertex positioned without sidelining")
			}
			if len(pos) != 8 {
				t.Errorf("got %d positions, want 8", len(pos))
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			first := mustNew(t, alg, sampleGraph(), WithSeed(11)).Compute(0).Positions()
			second := mustNew(t, alg, sampleGraph(), WithSeed(11)).Compute(0).Positions()
			for id, p := range first {
				if second[id] != p {
					t.Errorf("%s: %v then %v", id, p, second[id])
				}
			}

			l := mustNew(t, alg, sampleGraph(), WithSeed(11))
			again := l.Compute(0).Compute(0).Positions()
			if diff := deep.Equal(again, first); diff != nil {
				t.Errorf("recompute differs: %v", diff)
			}
		})
	}
}

func TestParticipation(t *testing.T) {
	g := sampleGraph()
	g.nodes["a1"].collapsed = true
	g.nodes["a2"].collapsed = true
	g.nodes["c"].hidden = true

	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			l := mustNew(t, alg, g).Compute(0)
			pos := l.Positions()
			for _, id := range []string{"a1", "a2", "c", "c1"} {
				if _, ok := pos[id]; ok {
					t.Errorf("%s should not take part", id)
				}
			}
			if got := l.Stats().Vertices; got != 6 {
				t.Errorf("Stats().Vertices = %d, want 6", got)
			}
			// c1 sits below hidden c, so it is excluded rather than sidelined.
			if slices.Contains(l.Isolated(), "c1") {
				t.Errorf("Isolated() = %v, want c1 excluded", l.Isolated())
			}
		})
	}
}

func TestEdgeFlags(t *testing.T) {
	g := newFake().add("r", "").add("a", "r").add("x", "")
	g.link("x", "a")

	tests := []struct {
		name     string
		opts     []Option
		isolated []string
		edges    int
	}{
		{name: "both", edges: 2},
		{name: "tree only", opts: []Option{WithCrossLinks(false)}, isolated: []string{"x"}, edges: 1},
		{name: "links only", opts: []Option{WithTreeEdges(false)}, isolated: []string{"r"}, edges: 1},
		{name: "none", opts: []Option{WithTreeEdges(false), WithCrossLinks(false)}, isolated: []string{"a", "r", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewForce(g, tt.opts...).Compute(0)
			if got := l.Isolated(); !slices.Equal(got, tt.isolated) {
				t.Errorf("Isolated() = %v, want %v", got, tt.isolated)
			}
			if got := l.Stats().Edges; got != tt.edges {
				t.Errorf("Stats().Edges = %d, want %d", got, tt.edges)
			}
		})
	}
}

func TestDuplicateEdgesCollapse(t *testing.T) {
	g := newFake().add("r", "").add("a", "r")
	g.link("a", "r").link("r", "a")
	if got := NewForce(g).Compute(0).Stats().Edges; got != 1 {
		t.Errorf("Stats().Edges = %d, want 1", got)
	}
}

func TestCommit(t *testing.T) {
	g := sampleGraph()
	l := NewTree(g).Compute(0)
	if err := l.Commit(g); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	for id, p := range l.Positions() {
		if x, y := g.Position(id); x != p.X || y != p.Y {
			t.Errorf("%s committed as (%v, %v), want %v", id, x, y, p)
		}
	}

	err := l.Commit(failingWriter{})
	if !errors.Is(err, errWrite) {
		t.Errorf("Commit error = %v, want errWrite", err)
	}
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) SetPosition(string, float64, float64) error { return errWrite }

func TestCommitLeavesGraphUntouchedUntilCalled(t *testing.T) {
	g := sampleGraph()
	NewForce(g).Compute(0)
	for id, n := range g.nodes {
		if n.x != 0 || n.y != 0 {
			t.Errorf("%s moved without Commit", id)
		}
	}
}

func TestCustomFrame(t *testing.T) {
	frame := r2.Box{Min: r2.Vec{X: 10, Y: 20}, Max: r2.Vec{X: 30, Y: 40}}
	l := NewTree(sampleGraph(), WithFrame(frame), WithSideline(false)).Compute(0)
	box := BoundingFrame(slices.Collect(maps.Values(l.Positions())))
	if diff := deep.Equal(box, frame); diff != nil {
		t.Errorf("bounding frame differs: %v", diff)
	}
}

func TestStats(t *testing.T) {
	l := NewForce(sampleGraph(), WithIterations(25)).Compute(0)
	s := l.Stats()
	if s.Vertices != 10 || s.Isolated != 2 || s.Placed != 8 || s.Iterations != 25 || s.Edges != 9 {
		t.Errorf("Stats() = %+v", s)
	}
	if got := NewTree(sampleGraph()).Compute(0).Stats().Iterations; got != 0 {
		t.Errorf("tree Iterations = %d, want 0", got)
	}
}
