package layout

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r2"
)

// SidelineX is the x coordinate of the strip that isolated vertices are
// stacked on. It lies outside [FittingFrame].
const SidelineX = 1.07

// FittingFrame is the default normalization target: the unit square with
// a 5% margin on every side.
var FittingFrame = r2.Box{
	Min: r2.Vec{X: 0.05, Y: 0.05},
	Max: r2.Vec{X: 0.95, Y: 0.95},
}

// Rescale maps v linearly from [lo, hi] to [tlo, thi]. A degenerate source
// range maps to the middle of the target range. The result is clamped to
// the target range.
func Rescale(v, lo, hi, tlo, thi float64) float64 {
	if hi-lo == 0 {
		return (tlo + thi) / 2
	}
	r := tlo + (v-lo)/(hi-lo)*(thi-tlo)
	return math.Max(math.Min(tlo, thi), math.Min(math.Max(tlo, thi), r))
}

// Jitter returns a uniform random offset in [-fraction, fraction).
func Jitter(rng *rand.Rand, fraction float64) float64 {
	if fraction == 0 {
		return 0
	}
	return fraction * (2*rng.Float64() - 1)
}

// BoundingFrame returns the smallest box containing all points. It returns
// the zero box for no points.
func BoundingFrame(points []r2.Vec) r2.Box {
	if len(points) == 0 {
		return r2.Box{}
	}
	b := emptyBox()
	for _, p := range points {
		grow(&b, p)
	}
	return b
}

func emptyBox() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

func grow(b *r2.Box, p r2.Vec) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
}

// wrapAngle maps a to (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	switch {
	case a > math.Pi:
		a -= 2 * math.Pi
	case a <= -math.Pi:
		a += 2 * math.Pi
	}
	return a
}

func angleOf(v r2.Vec) float64 { return math.Atan2(v.Y, v.X) }

func polar(radius, angle float64) r2.Vec {
	return r2.Vec{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
}
