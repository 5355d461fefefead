package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/internal/server"
)

// serveCommand creates the serve command that runs the HTTP layout API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve the layout engine over HTTP.

Endpoints:
  GET  /healthz         liveness probe
  GET  /v1/algorithms   supported algorithm names
  POST /v1/layout       lay out a graph document

Layout flags set the defaults for requests that omit an option. The server
stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			return c.runServe(cmd.Context(), noCache)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	addLayoutFlags(cmd.Flags())
	addCacheFlags(cmd.Flags())
	cmd.Flags().Bool("no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	defaults := c.cfg.Layout
	defaults.SetDefaults()
	if err := defaults.Validate(); err != nil {
		return err
	}

	return server.New(runner, c.cfg.Server, defaults, c.Logger).Run(ctx)
}
