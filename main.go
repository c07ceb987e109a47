package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"youtube-insights/catalog"
	"youtube-insights/config"
	"youtube-insights/models"
	"youtube-insights/services"
	"youtube-insights/storage"
	"youtube-insights/utils"
)

func main() {
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:           "youtube-insights",
		Short:         "Market share and brand insights from a YouTube device dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}
	rootCmd.Flags().StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "Path to the scraper JSON export")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	logger := utils.NewLoggerWithOptions(utils.LoggerOptions{Level: cfg.LogLevel, Format: cfg.LogFormat})

	logger.Info("=== YouTube Insight Pipeline starting ===")
	logger.Info("Config | input: %s | output: %s | target: %s | workers: %d",
		cfg.InputPath, cfg.OutputDir, cfg.TargetCompany, cfg.MaxConcurrency)

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return err
		}
		cat = loaded
		for _, e := range cat.Entries() {
			logger.Debug("Catalog %s #%d: %s (%s)", e.Category, e.Rank, e.DeviceName, e.Company)
		}
	}
	logger.Info("Catalog loaded: %d devices", cat.Len())

	rawVideos, err := storage.LoadRawVideos(cfg.InputPath)
	if err != nil {
		logger.Error("Failed to load dataset: %v", err)
		return err
	}
	logger.Info("Loaded %d raw videos from %s", len(rawVideos), cfg.InputPath)

	normalizer := services.NewNormalizer(cat, cfg.TargetCompany, logger)
	aggregator := services.NewAggregator(logger, cfg.MaxConcurrency)
	insightSvc := services.NewInsightService(logger, cfg.TargetCompany, cfg.TopChannels, cfg.TopCompetitors)
	pipeline := services.NewPipeline(normalizer, aggregator, insightSvc, logger)

	report := pipeline.Run(rawVideos)
	report.RunID = uuid.NewString()

	csvWriter, err := storage.NewCSVWriter(cfg.OutputDir)
	if err != nil {
		return err
	}
	jsonWriter, err := storage.NewJSONWriter(cfg.OutputDir)
	if err != nil {
		return err
	}
	for _, w := range []storage.ReportWriter{csvWriter, jsonWriter} {
		if err := w.WriteReport(report); err != nil {
			logger.Error("Report write failed: %v", err)
			return err
		}
	}
	logger.Info("Reports saved to %s (run %s)", cfg.OutputDir, report.RunID)

	if cfg.PostgresEnabled {
		persist(cfg, logger, report)
	}

	insightSvc.Print(report)
	return nil
}

// persist stores the run in PostgreSQL. Failures are logged and do not
// fail the run.
func persist(cfg *config.Config, logger *utils.Logger, report *models.Report) {
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	}

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), retry)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer pgWriter.Close()

	if err := storeRun(pgWriter, report); err != nil {
		logger.Error("PostgreSQL: %v", err)
		return
	}
	logger.Info("Stored %d videos in PostgreSQL (tables: videos, device_market_share)", report.RecordCount)
}

// storeRun writes the report and checks the stored video count against it.
func storeRun(store storage.RunWriter, report *models.Report) error {
	if err := store.Write(report); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	stored, err := store.FetchVideos()
	if err != nil {
		return fmt.Errorf("read back: %w", err)
	}
	if len(stored) != report.RecordCount {
		return fmt.Errorf("read back: holds %d videos, expected %d", len(stored), report.RecordCount)
	}
	return nil
}
