// Package config provides configuration types and defaults for arbor.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/layout"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// appName names the cache and config directories.
const appName = "arbor"

// Config holds all configuration for arbor.
type Config struct {
	Layout pipeline.Options `mapstructure:"layout"`
	Cache  cache.Config     `mapstructure:"cache"`
	Render RenderConfig     `mapstructure:"render"`
	Server ServerConfig     `mapstructure:"server"`
	Log    LogConfig        `mapstructure:"log"`
}

// RenderConfig holds settings for `arbor render`.
type RenderConfig struct {
	Format    string  `mapstructure:"format"` // svg, dot, png or pdf
	Scale     float64 `mapstructure:"scale"`  // inches per layout unit
	Detailed  bool    `mapstructure:"detailed"`
	HideLinks bool    `mapstructure:"hide_links"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `mapstructure:"addr"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"` // per layout computation
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// LogConfig holds settings for the optional log file.
// Rotation is handled by lumberjack.
type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout: pipeline.Options{
			Algorithm:       pipeline.DefaultAlgorithm,
			Seed:            pipeline.DefaultSeed,
			Iterations:      layout.DefaultIterations,
			Temperature:     layout.DefaultTemperature,
			Orientation:     layout.TopDown.String(),
			SiblingDistance: layout.DefaultSiblingDistance,
			Shrink:          layout.DefaultShrink,
		},
		Cache: cache.Config{
			Backend:    cache.BackendFile,
			Dir:        defaultCacheDir(),
			Prefix:     "arbor:",
			Database:   "arbor",
			Collection: "layouts",
		},
		Render: RenderConfig{
			Format: "svg",
			Scale:  8,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   8 << 20,
		},
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// CacheDir returns the cache directory using XDG standard (~/.cache/arbor/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func defaultCacheDir() string {
	dir, _ := CacheDir()
	return dir
}
