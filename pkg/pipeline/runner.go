package pipeline

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/observability"
)

// cacheKeyType labels layout entries in cache hooks.
const cacheKeyType = "layout"

// Runner encapsulates layout execution with caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// A Runner holds no per-run state. Multiple goroutines can share one
// Runner; commits into graphs are serialized.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	commitMu sync.Mutex
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Layout computes the layout of g, commits the positions into g and
// returns them. Results are cached by the graph's content hash and the
// options; opts.Refresh skips the lookup but still stores the result.
//
// The context is checked before and after the computation. A canceled
// run commits nothing.
func (r *Runner) Layout(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := contextError(ctx); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Root != "" {
		if _, ok := g.Node(opts.Root); !ok {
			return nil, errors.New(errors.ErrCodeInvalidRoot, "root %q is not in the graph", opts.Root)
		}
	}

	hash, err := GraphHash(g, opts.WarmStart)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash graph")
	}
	key := r.Keyer.LayoutKey(hash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			if err := r.commitCached(ctx, g, cached.Positions); err != nil {
				return nil, err
			}
			r.Logger.Debug("layout from cache", "algorithm", cached.Algorithm, "graph", hash[:12])
			return cached, nil
		}
	}

	alg, _ := layout.ParseAlgorithm(opts.Algorithm)
	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Algorithm, g.NodeCount())

	start := time.Now()
	l, err := layout.New(alg, g, opts.LayoutOptions()...)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Algorithm, time.Since(start), err)
		return nil, errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "create layout")
	}
	l.Compute(opts.Jitter)
	hooks.OnLayoutComplete(ctx, opts.Algorithm, time.Since(start), nil)

	if err := contextError(ctx); err != nil {
		return nil, err
	}

	result := newResult(l, hash)
	r.Logger.Info("computed layout",
		"algorithm", opts.Algorithm,
		"placed", result.Stats.Placed,
		"isolated", result.Stats.Isolated,
		"duration", result.Stats.Duration)

	r.commitMu.Lock()
	err = l.Commit(g)
	r.commitMu.Unlock()
	hooks.OnCommit(ctx, len(result.Positions), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "commit positions")
	}

	r.store(ctx, key, result)
	return result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// GraphHash returns the content hash of g. Stored positions only change
// the result of a warm start, so they take part only when withPositions
// is set.
func GraphHash(g *graph.Graph, withPositions bool) (string, error) {
	doc := graph.ToDocument(g)
	if !withPositions {
		for i := range doc.Nodes {
			doc.Nodes[i].X, doc.Nodes[i].Y = 0, 0
		}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

func newResult(l layout.Layout, hash string) *Result {
	positions := l.Positions()
	result := &Result{
		Algorithm: string(l.Algorithm()),
		GraphHash: hash,
		Positions: make(map[string]Point, len(positions)),
		Isolated:  l.Isolated(),
		Stats:     l.Stats(),
	}
	for id, p := range positions {
		result.Positions[id] = Point{X: p.X, Y: p.Y}
	}
	if lmb, ok := l.(*layout.LombardiLayout); ok {
		result.Tangents = lmb.Tangents()
	}
	if result.Isolated == nil {
		result.Isolated = []string{}
	}
	return result
}

// lookup returns a cached result. Backend errors and undecodable entries
// count as misses.
func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	var cached Result
	if err := json.Unmarshal(data, &cached); err != nil {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	cached.CacheHit = true
	return &cached, true
}

func (r *Runner) store(ctx context.Context, key string, result *Result) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

func (r *Runner) commitCached(ctx context.Context, g *graph.Graph, positions map[string]Point) error {
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	r.commitMu.Lock()
	defer r.commitMu.Unlock()
	for _, id := range ids {
		p := positions[id]
		if err := g.SetPosition(id, p.X, p.Y); err != nil {
			observability.Layout().OnCommit(ctx, len(positions), err)
			return errors.Wrap(errors.ErrCodeCache, err, "stale cache entry")
		}
	}
	observability.Layout().OnCommit(ctx, len(positions), nil)
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func contextError(ctx context.Context) error {
	err := ctx.Err()
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(errors.ErrCodeTimeout, err, "layout timed out")
	default:
		return errors.Wrap(errors.ErrCodeCanceled, err, "layout canceled")
	}
}
