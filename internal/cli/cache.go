package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/cache"
)

// clearer is implemented by caches that can drop every entry.
type clearer interface {
	Clear() (int, error)
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	addCacheFlags(cmd.PersistentFlags())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		Long: `Remove all cached layouts from the file cache.

Redis and MongoDB entries expire on their own and are not cleared here.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := c.cfg.Cache

			store, err := cache.Open(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("open %s cache: %w", cfg.Backend, err)
			}
			defer store.Close()

			cl, ok := store.(clearer)
			if !ok {
				printWarning(out, "The %q cache backend cannot be cleared", backendName(cfg))
				return nil
			}

			count, err := cl.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo(out, "Cache is empty")
				return nil
			}
			printSuccess(out, "Cleared %d cached layouts", count)
			printDetail(out, "Directory: %s", cfg.Dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg := c.cfg.Cache
			switch cfg.Backend {
			case cache.BackendFile:
				fmt.Fprintln(out, cfg.Dir)
			case cache.BackendRedis, cache.BackendMongo:
				printKeyValue(out, "backend", cfg.Backend)
				printKeyValue(out, "url", cfg.URL)
			default:
				printKeyValue(out, "backend", backendName(cfg))
			}
			return nil
		},
	}
}

func backendName(cfg cache.Config) string {
	if cfg.Backend == "" {
		return cache.BackendNone
	}
	return cfg.Backend
}
