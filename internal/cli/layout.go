package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var output, resultPath string

	cmd := &cobra.Command{
		Use:   "layout [graph.json|graph.toml]",
		Short: "Compute node positions for a graph",
		Long: `Compute node positions for a graph.

The layout command reads a graph file, runs the selected algorithm and
writes the graph back with every placed node's position filled in. The
output keeps the input format and defaults to <input>.layout.<ext>.

Results are cached by graph content and options, so repeated runs with the
same input are instant. Use --refresh to recompute.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], output, resultPath, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.<ext>)")
	cmd.Flags().StringVar(&resultPath, "result", "", "also write the layout result (stats, tangents) as JSON")
	addLayoutFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())
	cmd.Flags().Bool("no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the graph, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, stdout, stderr io.Writer, input, output, resultPath string, noCache bool) error {
	g, err := readGraph(input)
	if err != nil {
		return err
	}

	res, err := c.computeLayout(ctx, stderr, g, noCache)
	if err != nil {
		return err
	}

	outputPath := output
	if outputPath == "" {
		outputPath = derivedPath(input, ".layout"+filepath.Ext(input))
	}
	if err := graph.WriteFile(outputPath, g); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	if resultPath != "" {
		if err := writeResult(resultPath, res); err != nil {
			return err
		}
	}

	printSuccess(stdout, "Layout complete")
	printFile(stdout, outputPath)
	if resultPath != "" {
		printFile(stdout, resultPath)
	}
	printStats(stdout, res)
	if unplaced := len(res.Isolated) - countPlaced(res); unplaced > 0 {
		printWarning(stdout, "%d isolated nodes left unplaced", unplaced)
	}
	printNewline(stdout)
	printNextStep(stdout, "Render", appName+" render --no-layout "+outputPath)

	return nil
}

// computeLayout runs the configured layout over g behind a spinner and
// commits the positions into g.
func (c *CLI) computeLayout(ctx context.Context, stderr io.Writer, g *graph.Graph, noCache bool) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.cfg.Layout
	opts.Logger = c.Logger
	opts.SetDefaults()

	spinner := newSpinner(ctx, stderr, fmt.Sprintf("Computing %s layout...", opts.Algorithm))
	spinner.Start()

	prog := newProgress(c.Logger)
	res, err := runner.Layout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return nil, err
	}
	spinner.Stop()
	prog.done("Layout committed", "algorithm", res.Algorithm, "cached", res.CacheHit)

	return res, nil
}

// readGraph validates path and reads the graph file it names.
func readGraph(path string) (*graph.Graph, error) {
	if err := errors.ValidateGraphPath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file not found: %s", path)
	}
	g, err := graph.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load graph %s: %w", path, err)
	}
	return g, nil
}

// writeResult writes res as indented JSON.
func writeResult(path string, res *pipeline.Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write result %s: %w", path, err)
	}
	return nil
}

// derivedPath replaces the extension of input with suffix.
func derivedPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// countPlaced returns how many isolated vertices received a position.
func countPlaced(res *pipeline.Result) int {
	n := 0
	for _, id := range res.Isolated {
		if _, ok := res.Positions[id]; ok {
			n++
		}
	}
	return n
}
