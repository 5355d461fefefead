package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matzehuels/arbor/internal/config"
	"github.com/matzehuels/arbor/pkg/buildinfo"
	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "arbor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// flagKeys maps command-line flags to configuration keys. Flags that are
// not listed here are command-local and never reach the configuration.
var flagKeys = map[string]string{
	"config":           "config",
	"log-file":         "log.file",
	"algorithm":        "layout.algorithm",
	"root":             "layout.root",
	"seed":             "layout.seed",
	"iterations":       "layout.iterations",
	"temperature":      "layout.temperature",
	"jitter":           "layout.jitter",
	"no-tree-edges":    "layout.skip_tree_edges",
	"no-cross-links":   "layout.skip_cross_links",
	"no-sideline":      "layout.no_sideline",
	"warm-start":       "layout.warm_start",
	"orientation":      "layout.orientation",
	"sibling-distance": "layout.sibling_distance",
	"shrink":           "layout.shrink",
	"refresh":          "layout.refresh",
	"cache":            "cache.backend",
	"cache-dir":        "cache.dir",
	"cache-url":        "cache.url",
	"format":           "render.format",
	"scale":            "render.scale",
	"detailed":         "render.detailed",
	"hide-links":       "render.hide_links",
	"addr":             "server.addr",
}

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out     io.Writer
	v       *viper.Viper
	cfg     *config.Config
	logFile io.Closer
}

// New creates a new CLI instance. Log output goes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    w,
		v:      config.NewViper(),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the configuration loaded for the executing command.
func (c *CLI) Config() *config.Config {
	return c.cfg
}

// Close releases the log file, if one was opened.
func (c *CLI) Close() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	return err
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Arbor lays out node-link graphs",
		Long: `Arbor computes 2D positions for the nodes of a graph with force-directed,
Lombardi, tidy-tree and radial layouts, and renders the result with Graphviz.

Settings are read from ~/.config/arbor/config.toml, .arbor/config.toml,
ARBOR_* environment variables and flags, in increasing precedence.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().String("config", "", "config file (TOML)")
	root.PersistentFlags().String("log-file", "", "also write logs to this file, rotated")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig binds the executing command's flags and loads the
// configuration before the command runs.
func (c *CLI) loadConfig(cmd *cobra.Command, args []string) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = c.v.BindPFlag(key, f)
	})
	if bindErr != nil {
		return bindErr
	}

	cfg, err := config.Load(c.v)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg

	if cfg.Log.File != "" && c.logFile == nil {
		lf := openLogFile(cfg.Log)
		c.logFile = lf
		c.Logger.SetOutput(io.MultiWriter(c.out, lf))
	}
	c.Logger.Debug("config loaded", "algorithm", cfg.Layout.Algorithm, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
// Keys are scoped to the build so that upgrades never read stale layouts.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg := c.cfg.Cache
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cfg.Backend, err)
	}
	return pipeline.NewRunner(store, cache.NewScopedKeyer(nil, buildinfo.CacheScope()), c.Logger), nil
}

// =============================================================================
// Flag Helpers
// =============================================================================

// addLayoutFlags registers the layout option flags on fs. Defaults are
// left to the configuration; a flag only counts when it is set.
func addLayoutFlags(fs *pflag.FlagSet) {
	fs.StringP("algorithm", "a", "", "layout algorithm: force, lombardi, tree, radial, radial-sync")
	fs.String("root", "", "root node ID (default: the graph's root)")
	fs.Uint64("seed", 0, "random seed")
	fs.Int("iterations", 0, "simulation iterations (force, lombardi)")
	fs.Float64("temperature", 0, "initial step length (force, lombardi)")
	fs.Float64("jitter", 0, "random displacement as a fraction of the drawing")
	fs.Bool("no-tree-edges", false, "ignore parent-child edges")
	fs.Bool("no-cross-links", false, "ignore cross-links")
	fs.Bool("no-sideline", false, "leave isolated nodes unplaced")
	fs.Bool("warm-start", false, "start from the positions stored in the graph")
	fs.String("orientation", "", "tree direction: top-down, left-right")
	fs.Float64("sibling-distance", 0, "minimum distance between siblings (tree)")
	fs.Float64("shrink", 0, "radius shrink per level (radial-sync)")
	fs.Bool("refresh", false, "recompute even when a cached layout exists")
}

// addCacheFlags registers the cache selection flags on fs.
func addCacheFlags(fs *pflag.FlagSet) {
	fs.String("cache", "", "cache backend: none, file, redis, mongo")
	fs.String("cache-dir", "", "directory of the file cache")
	fs.String("cache-url", "", "redis or mongo connection URL")
}
