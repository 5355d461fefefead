package dot

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/arbor/pkg/layout"
)

// DefaultScale is the drawing size, in inches, of one layout unit.
const DefaultScale = 8.0

// Options configures DOT generation.
type Options struct {
	// Detailed adds the node ID below labels that differ from it.
	Detailed bool

	// HideLinks omits cross-links; only tree edges are drawn.
	HideLinks bool

	// Scale is the size in inches of one layout unit. Zero means
	// [DefaultScale].
	Scale float64
}

// ToDOT converts the visible, unfolded part of g to Graphviz DOT source.
// Tree edges are drawn solid and cross-links dashed. Nodes and edges are
// emitted in ID order so the output is stable.
func ToDOT(g layout.Graph, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	ids := slices.Clone(g.NodeIDs())
	slices.Sort(ids)
	ids = slices.DeleteFunc(ids, func(id string) bool { return !shown(g, id) })

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, id := range ids {
		x, y := g.Position(id)
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%.4f,%.4f!\"];\n",
			id, fmtLabel(g, id, opts.Detailed), x*scale, (1-y)*scale)
	}

	buf.WriteString("\n")
	for _, id := range ids {
		if p := g.Parent(id); p != "" && shown(g, p) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p, id)
		}
	}
	if !opts.HideLinks {
		for _, id := range ids {
			targets := slices.Clone(g.Links(id))
			slices.Sort(targets)
			for _, to := range slices.Compact(targets) {
				if to != id && shown(g, to) {
					fmt.Fprintf(&buf, "  %q -> %q [style=dashed, constraint=false];\n", id, to)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func shown(g layout.Graph, id string) bool {
	return g.Visible(id) && !g.Collapsed(id)
}

func fmtLabel(g layout.Graph, id string, detailed bool) string {
	label := g.Label(id)
	if label == "" {
		return id
	}
	if detailed && label != id {
		return strings.Join([]string{label, "(" + id + ")"}, "\n")
	}
	return label
}
