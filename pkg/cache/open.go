package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend    string `mapstructure:"backend"`
	Dir        string `mapstructure:"dir"`
	URL        string `mapstructure:"url"`
	Prefix     string `mapstructure:"prefix"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

// Open creates the backend named by cfg.Backend. An empty backend is
// treated as "none".
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.URL, cfg.Prefix)
	case BackendMongo:
		db, coll := cfg.Database, cfg.Collection
		if db == "" {
			db = "arbor"
		}
		if coll == "" {
			coll = "layouts"
		}
		return NewMongoCache(ctx, cfg.URL, db, coll)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
