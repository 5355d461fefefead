// Package cache stores computed layouts so repeated runs over an unchanged
// graph skip the computation.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON entries under a directory, for the CLI
//   - [RedisCache]: a Redis server, for shared server deployments
//   - [MongoCache]: a MongoDB collection with a TTL index
//
// All backends implement [Cache]. [Open] selects one from a [Config].
//
// # Keys
//
// A [Keyer] derives keys from the graph hash and every option that affects
// the result. [ScopedKeyer] prefixes keys, for example with the program
// version so that an upgrade never serves layouts from older code.
package cache

import (
	"context"
	"time"
)

// TTLLayout is how long a computed layout stays cached.
const TTLLayout = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with expiry.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// NullCache misses on every lookup and discards writes. [Open] returns it
// for the "none" backend.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

var _ Cache = (*NullCache)(nil)
