package layout

import (
	"io"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// DefaultIterations is the number of simulation steps of the force and
	// Lombardi layouts.
	DefaultIterations = 600

	// DefaultTemperature is the initial maximum displacement per step.
	DefaultTemperature = 0.1

	// DefaultSiblingDistance is the minimum gap between neighbouring
	// vertices on one level of the tree layout.
	DefaultSiblingDistance = 1.0

	// DefaultShrink is the per-level radius factor of the radial layout.
	DefaultShrink = 0.5
)

// Orientation selects the axis the tree layout grows along.
type Orientation int

const (
	// TopDown puts siblings along x and depth along y.
	TopDown Orientation = iota
	// LeftRight puts depth along x and siblings along y.
	LeftRight
)

// String returns the option name used in configuration files.
func (o Orientation) String() string {
	if o == LeftRight {
		return "left-right"
	}
	return "top-down"
}

// ParseOrientation converts a configuration value to an [Orientation].
// Empty input yields [TopDown].
func ParseOrientation(s string) (Orientation, bool) {
	switch s {
	case "", "top-down":
		return TopDown, true
	case "left-right":
		return LeftRight, true
	}
	return TopDown, false
}

// LombardiParams holds the tuning constants of the Lombardi layout.
type LombardiParams struct {
	Kopp                float64 // weight of matching the opposite endpoint's tangent
	Kadj                float64 // weight of matching the straight chord
	Tangential          float64 // weight of the tangential position force
	ShuffleRate         float64 // slot search runs every round(1/ShuffleRate) steps
	FinalFraction       float64 // share of steps spent in the final tangent pass
	MaxExhaustiveDegree int     // largest degree searched over all permutations
	RandomSamples       int     // permutations sampled for larger degrees
}

// DefaultLombardiParams returns the standard tuning constants.
func DefaultLombardiParams() LombardiParams {
	return LombardiParams{
		Kopp:                0.5,
		Kadj:                0.1,
		Tangential:          0.9,
		ShuffleRate:         0.4,
		FinalFraction:       0.03,
		MaxExhaustiveDegree: 6,
		RandomSamples:       20,
	}
}

type config struct {
	treeEdges   bool
	crossLinks  bool
	sideline    bool
	root        string
	seed        uint64
	iterations  int
	temperature float64
	frame       r2.Box
	lombardi    LombardiParams
	sibling     float64
	extent      func(id string) float64
	orientation Orientation
	shrink      float64
	warmStart   bool
	logger      *log.Logger
}

func defaultConfig() config {
	return config{
		treeEdges:   true,
		crossLinks:  true,
		sideline:    true,
		iterations:  DefaultIterations,
		temperature: DefaultTemperature,
		frame:       FittingFrame,
		lombardi:    DefaultLombardiParams(),
		sibling:     DefaultSiblingDistance,
		shrink:      DefaultShrink,
	}
}

func newConfig(opts []Option) config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	if c.iterations < 0 {
		c.iterations = 0
	}
	if c.sibling <= 0 {
		c.sibling = DefaultSiblingDistance
	}
	if c.shrink <= 0 {
		c.shrink = DefaultShrink
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// Option configures a layout.
type Option func(*config)

// WithTreeEdges controls whether parent-child relations are edges.
// Enabled by default.
func WithTreeEdges(on bool) Option { return func(c *config) { c.treeEdges = on } }

// WithCrossLinks controls whether cross-links are edges. Enabled by default.
func WithCrossLinks(on bool) Option { return func(c *config) { c.crossLinks = on } }

// WithSideline controls whether isolated vertices are stacked at
// [SidelineX]. When disabled they keep their stored position. Enabled by
// default.
func WithSideline(on bool) Option { return func(c *config) { c.sideline = on } }

// WithRoot sets the root of the tree and radial layouts. Any taking-part
// node may serve as root; the default is [Graph.Root].
func WithRoot(id string) Option { return func(c *config) { c.root = id } }

// WithSeed seeds the random generator used for initial positions,
// tie-breaks, permutation sampling and jitter.
func WithSeed(seed uint64) Option { return func(c *config) { c.seed = seed } }

// WithIterations sets the number of simulation steps.
func WithIterations(n int) Option { return func(c *config) { c.iterations = n } }

// WithTemperature sets the initial maximum displacement per step.
func WithTemperature(t float64) Option { return func(c *config) { c.temperature = t } }

// WithFrame sets the normalization target. The default is [FittingFrame].
func WithFrame(b r2.Box) Option { return func(c *config) { c.frame = b } }

// WithLombardi replaces the Lombardi tuning constants.
func WithLombardi(p LombardiParams) Option { return func(c *config) { c.lombardi = p } }

// WithSiblingDistance sets the minimum gap between neighbours on one level
// of the tree layout.
func WithSiblingDistance(d float64) Option { return func(c *config) { c.sibling = d } }

// WithLevelExtent sets the size of each vertex along the depth axis of the
// tree layout. A level is as thick as its largest vertex. By default every
// vertex has extent 1, so a vertex at depth d lies at d.
func WithLevelExtent(fn func(id string) float64) Option {
	return func(c *config) { c.extent = fn }
}

// WithOrientation sets the growth direction of the tree layout.
func WithOrientation(o Orientation) Option { return func(c *config) { c.orientation = o } }

// WithShrink sets the per-level radius factor of the radial layout.
func WithShrink(f float64) Option { return func(c *config) { c.shrink = f } }

// WithWarmStart starts the force and Lombardi simulations from the
// positions stored in the graph instead of random ones.
func WithWarmStart(on bool) Option { return func(c *config) { c.warmStart = on } }

// WithLogger sets the logger for debug output. Nothing is logged by
// default.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }
