// Command evedb builds and serves the eVED trajectory database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joaofig/evedb-go/internal/api"
	"github.com/joaofig/evedb-go/internal/config"
	"github.com/joaofig/evedb-go/internal/database"
	"github.com/joaofig/evedb-go/internal/logging"
	"github.com/joaofig/evedb-go/internal/pipeline"
)

var (
	flagRepoPath string
	flagDBPath   string
	flagVerbose  bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evedb",
		Short:         "Build and serve the eVED vehicle trajectory database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagRepoPath, "repo-path", "", "folder to clone the source data repositories into")
	root.PersistentFlags().StringVar(&flagDBPath, "db-path", "", "path of the SQLite database file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(buildCmd(), matchCmd(), cloneCmd(), cleanCmd(), serveCmd())
	return root
}

// loadConfig layers the persistent flags on top of the file/env config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagRepoPath != "" {
		cfg.Repo.Path = flagRepoPath
	}
	if flagDBPath != "" {
		cfg.Database.Path = flagDBPath
	}
	if flagVerbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// runWithBuilder handles the setup shared by all pipeline commands.
func runWithBuilder(fn func(ctx context.Context, b *pipeline.Builder) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	db, err := database.Open(database.Config{Path: cfg.Database.Path})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return fn(ctx, pipeline.New(cfg, db, log))
}

func buildCmd() *cobra.Command {
	var noClone, noClean bool
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Run the full database build pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBuilder(func(ctx context.Context, b *pipeline.Builder) error {
				return b.Run(ctx, pipeline.Options{SkipClone: noClone, SkipClean: noClean})
			})
		},
	}
	cmd.Flags().BoolVar(&noClone, "no-clone", false, "skip cloning the source data repositories")
	cmd.Flags().BoolVar(&noClean, "no-clean", false, "keep the cloned source data after the build")
	return cmd
}

func matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match",
		Short: "Rebuild the map-matched node table only",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBuilder(func(ctx context.Context, b *pipeline.Builder) error {
				return b.BuildNodes(ctx)
			})
		},
	}
}

func cloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone",
		Short: "Clone the source data repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBuilder(func(ctx context.Context, b *pipeline.Builder) error {
				return b.Clone(ctx)
			})
		},
	}
}

func cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the cloned source data repositories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithBuilder(func(ctx context.Context, b *pipeline.Builder) error {
				return b.Clean()
			})
		},
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the trajectory query API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

			db, err := database.Open(database.Config{Path: cfg.Database.Path})
			if err != nil {
				return err
			}
			defer db.Close()

			r := api.SetupRouter(db, log)
			log.Info().Str("addr", cfg.Server.Addr).Msg("starting query API")
			return r.Run(cfg.Server.Addr)
		},
	}
}
