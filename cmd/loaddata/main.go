package main

// loaddata imports the fixture CSV files into the database.

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"reviewhub/database"
	"reviewhub/internal/config"
	"reviewhub/internal/importer"
	"reviewhub/internal/logging"
)

var (
	dataDir     string
	databaseURL string
	batchSize   int
	migrate     bool
)

var rootCmd = &cobra.Command{
	Use:   "loaddata",
	Short: "Import data from the CSV fixture files",
	Long: `loaddata reads users.csv, category.csv, genre.csv, titles.csv, review.csv,
comments.csv and genre_title.csv from the data directory and bulk inserts them.
A file that fails is reported and the next one is still loaded.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&dataDir, "data-dir", "", "directory with the CSV files (default $DATA_DIR)")
	rootCmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres DSN (default $DATABASE_URL)")
	rootCmd.Flags().IntVar(&batchSize, "batch-size", importer.DefaultBatchSize, "rows per insert")
	rootCmd.Flags().BoolVar(&migrate, "migrate", true, "create or update the schema first")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadImportConfig()
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenGorm(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if migrate {
		if err := database.Migrate(db, logger); err != nil {
			return err
		}
	}

	im := importer.New(os.DirFS(cfg.DataDir), importer.NewGormStore(db),
		importer.WithLogger(logger),
		importer.WithBatchSize(batchSize),
	)
	report, err := im.Run(ctx)
	if err != nil {
		return err
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d files failed to import", len(failed), len(report.Results))
	}
	logger.Info("Data loaded successfully", "rows", report.Rows(), "dir", cfg.DataDir)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
