// Package pipeline runs layouts over reference graphs with caching.
//
// The CLI and the HTTP server both go through a [Runner], so a layout
// requested from either computes, caches and commits the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Algorithm: "tree", Root: "root"}
//	result, err := runner.Layout(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Positions["root"])
package pipeline

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultAlgorithm is the layout used when none is named.
	DefaultAlgorithm = string(layout.Force)

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// MaxIterations bounds the simulation steps a request may ask for.
	MaxIterations = 100_000
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one layout run. It decodes from
// JSON requests and from the [layout] table of the config file.
//
// The boolean switches are negative so that the zero value keeps the
// layout defaults.
type Options struct {
	Algorithm       string  `json:"algorithm,omitempty" mapstructure:"algorithm"`
	Root            string  `json:"root,omitempty" mapstructure:"root"`
	Seed            uint64  `json:"seed,omitempty" mapstructure:"seed"`
	Iterations      int     `json:"iterations,omitempty" mapstructure:"iterations"`
	Temperature     float64 `json:"temperature,omitempty" mapstructure:"temperature"`
	Jitter          float64 `json:"jitter,omitempty" mapstructure:"jitter"`
	SkipTreeEdges   bool    `json:"skip_tree_edges,omitempty" mapstructure:"skip_tree_edges"`
	SkipCrossLinks  bool    `json:"skip_cross_links,omitempty" mapstructure:"skip_cross_links"`
	NoSideline      bool    `json:"no_sideline,omitempty" mapstructure:"no_sideline"`
	WarmStart       bool    `json:"warm_start,omitempty" mapstructure:"warm_start"`
	Orientation     string  `json:"orientation,omitempty" mapstructure:"orientation"`
	SiblingDistance float64 `json:"sibling_distance,omitempty" mapstructure:"sibling_distance"`
	Shrink          float64 `json:"shrink,omitempty" mapstructure:"shrink"`
	Refresh         bool    `json:"refresh,omitempty" mapstructure:"refresh"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" mapstructure:"-"`
}

// Point is a serialized position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Result contains the outputs of a layout run.
type Result struct {
	// Algorithm is the layout that produced the positions.
	Algorithm string `json:"algorithm"`

	// GraphHash is the content hash of the input graph.
	GraphHash string `json:"graph_hash"`

	// Positions holds the normalized positions, sidelined vertices
	// included, keyed by node ID.
	Positions map[string]Point `json:"positions"`

	// Tangents holds the edge end directions of a Lombardi layout.
	Tangents []layout.Tangent `json:"tangents,omitempty"`

	// Isolated lists the vertices without edges in ID order.
	Isolated []string `json:"isolated"`

	// Stats describes the computation that produced the positions. A
	// cache hit reports the original run.
	Stats layout.Stats `json:"stats"`

	// CacheHit reports whether the positions came from the cache.
	CacheHit bool `json:"cache_hit"`
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = layout.DefaultIterations
	}
	if o.Temperature == 0 {
		o.Temperature = layout.DefaultTemperature
	}
	if o.Orientation == "" {
		o.Orientation = layout.TopDown.String()
	}
	if o.SiblingDistance == 0 {
		o.SiblingDistance = layout.DefaultSiblingDistance
	}
	if o.Shrink == 0 {
		o.Shrink = layout.DefaultShrink
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Validate checks every field and returns a coded error for the first
// invalid one. Call [Options.SetDefaults] first.
func (o *Options) Validate() error {
	if _, err := layout.ParseAlgorithm(o.Algorithm); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "invalid algorithm %q", o.Algorithm)
	}
	if o.Root != "" {
		if err := errors.ValidateNodeID(o.Root); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRoot, err, "invalid root")
		}
	}
	if err := errors.ValidateRange("iterations", o.Iterations, 0, MaxIterations); err != nil {
		return err
	}
	if err := errors.ValidateFraction("jitter", o.Jitter); err != nil {
		return err
	}
	if err := errors.ValidateFraction("shrink", o.Shrink); err != nil {
		return err
	}
	if !(o.Temperature > 0) || math.IsInf(o.Temperature, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "temperature must be positive, got %v", o.Temperature)
	}
	if !(o.SiblingDistance > 0) || math.IsInf(o.SiblingDistance, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "sibling_distance must be positive, got %v", o.SiblingDistance)
	}
	if _, ok := layout.ParseOrientation(o.Orientation); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "orientation must be top-down or left-right, got %q", o.Orientation)
	}
	return nil
}

// LayoutOptions converts the options to layout options. Call
// [Options.SetDefaults] and [Options.Validate] first.
func (o *Options) LayoutOptions() []layout.Option {
	orientation, _ := layout.ParseOrientation(o.Orientation)
	opts := []layout.Option{
		layout.WithSeed(o.Seed),
		layout.WithIterations(o.Iterations),
		layout.WithTemperature(o.Temperature),
		layout.WithTreeEdges(!o.SkipTreeEdges),
		layout.WithCrossLinks(!o.SkipCrossLinks),
		layout.WithSideline(!o.NoSideline),
		layout.WithWarmStart(o.WarmStart),
		layout.WithOrientation(orientation),
		layout.WithSiblingDistance(o.SiblingDistance),
		layout.WithShrink(o.Shrink),
	}
	if o.Root != "" {
		opts = append(opts, layout.WithRoot(o.Root))
	}
	if o.Logger != nil {
		opts = append(opts, layout.WithLogger(o.Logger))
	}
	return opts
}

// LayoutKeyOpts returns cache key options for the layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Algorithm:       o.Algorithm,
		Root:            o.Root,
		Seed:            o.Seed,
		Iterations:      o.Iterations,
		Temperature:     o.Temperature,
		Jitter:          o.Jitter,
		TreeEdges:       !o.SkipTreeEdges,
		CrossLinks:      !o.SkipCrossLinks,
		Sideline:        !o.NoSideline,
		WarmStart:       o.WarmStart,
		Orientation:     o.Orientation,
		SiblingDistance: o.SiblingDistance,
		Shrink:          o.Shrink,
	}
}
