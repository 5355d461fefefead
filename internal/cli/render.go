package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/render/dot"
)

// Output formats supported by render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// pngZoom is the rasterization factor for PNG output.
const pngZoom = 2.0

var renderFormats = []string{FormatDOT, FormatSVG, FormatPNG, FormatPDF}

// renderCommand creates the render command for drawing laid-out graphs.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output   string
		noLayout bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json|graph.toml]",
		Short: "Draw a graph as DOT, SVG, PNG or PDF",
		Long: `Draw a graph as DOT, SVG, PNG or PDF.

By default the graph is laid out first with the configured algorithm. With
--no-layout the positions stored in the file are used as they are, which
suits the output of 'arbor layout'.

Nodes are pinned at their positions and drawn by Graphviz. Tree edges are
solid and cross-links dashed. PNG and PDF output requires rsvg-convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], output, noLayout, noCache)
		},
	}

	cmd.Flags().StringP("format", "f", "", "output formats, comma separated: dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single format (default: <input>.<format>)")
	cmd.Flags().BoolVar(&noLayout, "no-layout", false, "use the positions stored in the graph")
	cmd.Flags().Float64("scale", 0, "drawing size in inches of one layout unit")
	cmd.Flags().Bool("detailed", false, "show node IDs below labels")
	cmd.Flags().Bool("hide-links", false, "draw tree edges only")
	addLayoutFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())
	cmd.Flags().Bool("no-cache", false, "disable caching")

	return cmd
}

// runRender loads the graph, optionally lays it out, and writes one file
// per requested format.
func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, input, output string, noLayout, noCache bool) error {
	formats, err := parseFormats(c.cfg.Render.Format)
	if err != nil {
		return err
	}
	if output != "" && len(formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--output needs a single format, got %s", strings.Join(formats, ","))
	}

	g, err := readGraph(input)
	if err != nil {
		return err
	}

	var res *pipeline.Result
	if noLayout {
		if !graphPositioned(g) {
			printWarning(stderr, "%s has no positions; run '%s layout' first", input, appName)
		}
	} else {
		if res, err = c.computeLayout(ctx, stderr, g, noCache); err != nil {
			return err
		}
	}

	src := dot.ToDOT(g, dot.Options{
		Detailed:  c.cfg.Render.Detailed,
		HideLinks: c.cfg.Render.HideLinks,
		Scale:     c.cfg.Render.Scale,
	})

	prog := newProgress(c.Logger)
	var written []string
	for _, format := range formats {
		data, err := renderFormat(ctx, src, format)
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		path := output
		if path == "" {
			path = derivedPath(input, "."+format)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	prog.done("Rendered", "formats", strings.Join(formats, ","))

	printSuccess(stdout, "Render complete")
	for _, path := range written {
		printFile(stdout, path)
	}
	if res != nil {
		printStats(stdout, res)
	}
	return nil
}

// renderFormat converts DOT source into the bytes of one output format.
func renderFormat(ctx context.Context, src, format string) ([]byte, error) {
	if format == FormatDOT {
		return []byte(src), nil
	}
	svg, err := dot.RenderSVG(ctx, src)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatPNG:
		return dot.ToPNG(svg, pngZoom)
	case FormatPDF:
		return dot.ToPDF(svg)
	default:
		return svg, nil
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{FormatSVG}, nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(renderFormats, f) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want %s)", f, strings.Join(renderFormats, ", "))
		}
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// graphPositioned reports whether any node of g has a non-zero position.
func graphPositioned(g *graph.Graph) bool {
	for _, id := range g.NodeIDs() {
		if x, y := g.Position(id); x != 0 || y != 0 {
			return true
		}
	}
	return false
}
