package layout

import (
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRescale(t *testing.T) {
	tests := []struct {
		name                string
		v, lo, hi, tlo, thi float64
		want                float64
	}{
		{name: "lower bound", v: 2, lo: 2, hi: 4, tlo: 0, thi: 1, want: 0},
		{name: "upper bound", v: 4, lo: 2, hi: 4, tlo: 0, thi: 1, want: 1},
		{name: "midpoint", v: 3, lo: 2, hi: 4, tlo: 0.05, thi: 0.95, want: 0.5},
		{name: "reversed target", v: 2, lo: 2, hi: 4, tlo: 1, thi: 0, want: 1},
		{name: "degenerate source", v: 7, lo: 7, hi: 7, tlo: 0.05, thi: 0.95, want: 0.5},
		{name: "clamped", v: 5, lo: 2, hi: 4, tlo: 0, thi: 1, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rescale(tt.v, tt.lo, tt.hi, tt.tlo, tt.thi); math.Abs(got-tt.want) > tol {
				t.Errorf("Rescale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJitter(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	if got := Jitter(rng, 0); got != 0 {
		t.Errorf("Jitter(0) = %v", got)
	}
	for range 1000 {
		if got := Jitter(rng, 0.2); got < -0.2 || got >= 0.2 {
			t.Fatalf("Jitter(0.2) = %v out of range", got)
		}
	}
}

func TestBoundingFrame(t *testing.T) {
	if got := BoundingFrame(nil); got != (r2.Box{}) {
		t.Errorf("BoundingFrame(nil) = %v", got)
	}
	got := BoundingFrame([]r2.Vec{{X: 1, Y: -2}, {X: -3, Y: 4}, {X: 0, Y: 0}})
	want := r2.Box{Min: r2.Vec{X: -3, Y: -2}, Max: r2.Vec{X: 1, Y: 4}}
	if got != want {
		t.Errorf("BoundingFrame() = %v, want %v", got, want)
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-5 * math.Pi / 2, -math.Pi / 2},
		{4 * math.Pi, 0},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(got-tt.want) > tol {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestVertexNormalise(t *testing.T) {
	from := r2.Box{Min: r2.Vec{X: -1, Y: 5}, Max: r2.Vec{X: 1, Y: 5}}
	v := &vertex{id: "v", pos: r2.Vec{X: 1, Y: 5}}
	v.Normalise(from, FittingFrame)
	if math.Abs(v.X()-0.95) > tol || math.Abs(v.Y()-0.5) > tol {
		t.Errorf("Normalise() = %v, want (0.95, 0.5)", v.Pos())
	}

	b := emptyBox()
	for _, p := range []r2.Vec{{X: 2, Y: 3}, {X: -1, Y: 7}} {
		(&vertex{pos: p}).Bounds(&b)
	}
	if want := (r2.Box{Min: r2.Vec{X: -1, Y: 3}, Max: r2.Vec{X: 2, Y: 7}}); b != want {
		t.Errorf("Bounds() = %v, want %v", b, want)
	}
}
