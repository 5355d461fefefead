package layout

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrUnknownAlgorithm is returned by [New] and [ParseAlgorithm] for names
// that are not in [Algorithms].
var ErrUnknownAlgorithm = errors.New("unknown layout algorithm")

// Algorithm names a layout algorithm.
type Algorithm string

const (
	Force      Algorithm = "force"
	Lombardi   Algorithm = "lombardi"
	Tree       Algorithm = "tree"
	Radial     Algorithm = "radial"
	RadialSync Algorithm = "radial-sync"
)

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{Force, Lombardi, Tree, Radial, RadialSync}
}

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Layout is the contract shared by all algorithms.
type Layout interface {
	// Algorithm returns the algorithm name.
	Algorithm() Algorithm
	// Compute runs the algorithm, jitters every placed vertex by up to
	// jitter raw units and normalizes. It overwrites the result of any
	// previous call and returns the layout for chaining.
	Compute(jitter float64) Layout
	// Positions returns normalized positions keyed by node ID.
	Positions() map[string]r2.Vec
	// Raw returns positions before normalization.
	Raw() map[string]r2.Vec
	// Isolated returns the IDs of vertices without any edge.
	Isolated() []string
	// Stats summarizes the last run.
	Stats() Stats
	// Commit copies the computed positions into w.
	Commit(w PositionWriter) error
}

// New builds the named layout over a snapshot of g. Changes to g after New
// returns are not seen by the layout.
func New(alg Algorithm, g Graph, opts ...Option) (Layout, error) {
	switch alg {
	case Force:
		return NewForce(g, opts...), nil
	case Lombardi:
		return NewLombardi(g, opts...), nil
	case Tree:
		return NewTree(g, opts...), nil
	case Radial:
		return NewRadial(g, opts...), nil
	case RadialSync:
		return NewRadialSync(g, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}
