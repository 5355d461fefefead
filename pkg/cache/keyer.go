package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// LayoutKeyOpts lists every option that changes a computed layout.
type LayoutKeyOpts struct {
	Algorithm       string  `json:"algorithm"`
	Root            string  `json:"root,omitempty"`
	Seed            uint64  `json:"seed"`
	Iterations      int     `json:"iterations"`
	Temperature     float64 `json:"temperature"`
	Jitter          float64 `json:"jitter"`
	TreeEdges       bool    `json:"tree_edges"`
	CrossLinks      bool    `json:"cross_links"`
	Sideline        bool    `json:"sideline"`
	WarmStart       bool    `json:"warm_start"`
	Orientation     string  `json:"orientation,omitempty"`
	SiblingDistance float64 `json:"sibling_distance"`
	Shrink          float64 `json:"shrink"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout of the graph with the given
	// content hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer hashes the graph hash together with all options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() *DefaultKeyer { return &DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// hashKey returns prefix:sha256(json(parts)). Parts must be
// JSON-encodable; struct fields hash in declaration order.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 digest of data. It is used for graph
// content hashes and file cache shard names.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
