package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrUnsupportedFormat is returned by [ReadFile] and [WriteFile] for file
// extensions other than .json and .toml.
var ErrUnsupportedFormat = errors.New("unsupported graph file format")

// Document is the serialization format for graphs.
type Document struct {
	Root  string    `json:"root,omitempty" toml:"root,omitempty"`
	Nodes []NodeDoc `json:"nodes" toml:"nodes"`
	Links []LinkDoc `json:"links,omitempty" toml:"links,omitempty"`
}

// NodeDoc is a serialized node.
type NodeDoc struct {
	ID     string         `json:"id" toml:"id"`
	Label  string         `json:"label,omitempty" toml:"label,omitempty"`
	Parent string         `json:"parent,omitempty" toml:"parent,omitempty"`
	Hidden bool           `json:"hidden,omitempty" toml:"hidden,omitempty"`
	Folded bool           `json:"folded,omitempty" toml:"folded,omitempty"`
	X      float64        `json:"x" toml:"x"`
	Y      float64        `json:"y" toml:"y"`
	Meta   map[string]any `json:"meta,omitempty" toml:"meta,omitempty"`
}

// LinkDoc is a serialized cross-link.
type LinkDoc struct {
	From   string `json:"from" toml:"from"`
	To     string `json:"to" toml:"to"`
	Hidden bool   `json:"hidden,omitempty" toml:"hidden,omitempty"`
}

// ToDocument converts a graph to its serialization format. Nodes are
// emitted parents-first in tree order so that child order survives a
// round trip.
func ToDocument(g *Graph) Document {
	g.mu.RLock()
	defer g.mu.RUnlock()

	doc := Document{Root: g.root, Nodes: make([]NodeDoc, 0, len(g.nodes))}
	var visit func(id string)
	visit = func(id string) {
		n := g.nodes[id]
		doc.Nodes = append(doc.Nodes, NodeDoc{
			ID:     n.ID,
			Label:  n.Label,
			Parent: n.Parent,
			Hidden: n.Hidden,
			Folded: n.Folded,
			X:      n.X,
			Y:      n.Y,
			Meta:   cleanMeta(n.Meta),
		})
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, id := range g.sortedIDs() {
		if g.nodes[id].Parent == "" {
			visit(id)
		}
	}

	for _, l := range g.links {
		doc.Links = append(doc.Links, LinkDoc{From: l.From, To: l.To, Hidden: l.Hidden})
	}
	return doc
}

// FromDocument builds a graph from its serialization format.
// Errors are wrapped with the offending node or link.
func FromDocument(doc Document) (*Graph, error) {
	g := New()
	for _, n := range doc.Nodes {
		node := Node{
			ID:     n.ID,
			Label:  n.Label,
			Hidden: n.Hidden,
			Folded: n.Folded,
			X:      n.X,
			Y:      n.Y,
			Meta:   Metadata(n.Meta),
		}
		if err := g.AddNode(node); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for _, n := range doc.Nodes {
		if n.Parent == "" {
			continue
		}
		if err := g.AddChild(n.Parent, n.ID); err != nil {
			return nil, fmt.Errorf("node %q parent %q: %w", n.ID, n.Parent, err)
		}
	}
	for _, l := range doc.Links {
		if err := g.AddLink(l.From, l.To); err != nil {
			return nil, fmt.Errorf("link %s->%s: %w", l.From, l.To, err)
		}
		if l.Hidden {
			_ = g.SetLinkHidden(l.From, l.To, true)
		}
	}
	if doc.Root != "" {
		if err := g.SetRoot(doc.Root); err != nil {
			return nil, fmt.Errorf("root %q: %w", doc.Root, err)
		}
	}
	return g, nil
}

// Marshal serializes a graph to pretty-printed JSON.
func Marshal(g *Graph) ([]byte, error) {
	return json.MarshalIndent(ToDocument(g), "", "  ")
}

// Unmarshal decodes JSON bytes into a graph.
func Unmarshal(data []byte) (*Graph, error) {
	return ReadJSON(bytes.NewReader(data))
}

// ReadJSON decodes a JSON graph document from r. It does not close r.
func ReadJSON(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDocument(doc)
}

// WriteJSON encodes the graph as indented JSON to w.
func WriteJSON(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDocument(g))
}

// ReadTOML decodes a TOML graph document from r. It does not close r.
func ReadTOML(r io.Reader) (*Graph, error) {
	var doc Document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromDocument(doc)
}

// WriteTOML encodes the graph as TOML to w.
func WriteTOML(w io.Writer, g *Graph) error {
	return toml.NewEncoder(w).Encode(ToDocument(g))
}

// ReadFile reads a graph file, choosing the format by extension.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	switch format(path) {
	case "json":
		return ReadJSON(f)
	case "toml":
		return ReadTOML(f)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// WriteFile writes a graph file, choosing the format by extension.
func WriteFile(path string, g *Graph) error {
	var buf bytes.Buffer
	var err error
	switch format(path) {
	case "json":
		err = WriteJSON(&buf, g)
	case "toml":
		err = WriteTOML(&buf, g)
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

func cleanMeta(m Metadata) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
