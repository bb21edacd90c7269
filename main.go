package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"car-scraper/config"
	"car-scraper/models"
	"car-scraper/scraper"
	"car-scraper/scraper/ackodrive"
	"car-scraper/services"
	"car-scraper/storage"
	"car-scraper/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerTo(os.Stdout, os.Stderr, utils.ParseLevel(cfg.LogLevel))

	targetURL := cfg.TargetURL
	if len(os.Args) > 1 {
		targetURL = os.Args[1]
	}

	logger.Info("=== Car listing scraper starting ===")
	logger.Info("Config: url: %s | output: %s | fetch: %s | probe timeout: %dms",
		targetURL, cfg.CSVOutputPath, cfg.FetchMode, cfg.ProbeTimeoutMs)

	pipeline := services.NewPipeline(
		scraper.NewProber(cfg.ProbeTimeout(), logger),
		newFetcher(cfg, logger),
		ackodrive.NewParser(logger, ackodrive.WithSkipIncomplete(cfg.SkipIncomplete)),
		logger,
	)

	ctx := context.Background()
	csvWriter := storage.NewCSVWriter(cfg.CSVOutputPath)
	listings, err := pipeline.Run(ctx, targetURL, csvWriter)
	if err != nil {
		fmt.Println(userMessage(err))
		os.Exit(exitCode(err))
	}

	logger.Info("Saved %d listings to %s", len(listings), cfg.CSVOutputPath)

	cleaner := services.NewCleaner(logger)
	cars := cleaner.Clean(listings)

	if cfg.PostgresEnabled {
		cars = storeCars(ctx, cfg, logger, cars)
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(os.Stdout, insightSvc.Generate(cars))
}

func newFetcher(cfg *config.Config, logger *utils.Logger) scraper.PageFetcher {
	if cfg.FetchMode == config.FetchModeChrome {
		return scraper.NewChromeFetcher(cfg.ChromeBin, cfg.UserAgent, cfg.FetchTimeout(), logger)
	}
	if cfg.FetchMode != config.FetchModeHTTP {
		logger.Warn("Unknown FETCH_MODE %q, using %s", cfg.FetchMode, config.FetchModeHTTP)
	}
	return scraper.NewHTTPFetcher(cfg.FetchTimeout(), cfg.UserAgent)
}

// storeCars connects to PostgreSQL and persists the cleaned cars. On any
// database error the in-memory cars are returned.
func storeCars(ctx context.Context, cfg *config.Config, logger *utils.Logger, cars []*models.Car) []*models.Car {
	pgWriter, err := storage.NewPostgresWriter(ctx, cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		return cars
	}
	defer pgWriter.Close()

	return persistCars(pgWriter, logger, cars)
}

// persistCars writes cars and reads them back for the report.
func persistCars(w storage.ListingWriter, logger *utils.Logger, cars []*models.Car) []*models.Car {
	if err := w.Write(cars); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
		return cars
	}
	logger.Info("Clean listings stored in PostgreSQL (table: car_listings)")

	stored, err := w.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch listings from DB for insights: %v", err)
		return cars
	}
	return stored
}

func userMessage(err error) string {
	switch services.TerminalState(err) {
	case services.StateInvalidURL:
		return "Invalid URL! Please pass correct URL."
	case services.StateUnreachable:
		return "URL is not scrapable!"
	case services.StateFetchFailed:
		return "Could not download the page: " + err.Error()
	case services.StateParseFailed:
		return "Could not extract listings: " + err.Error()
	case services.StateSinkFailed:
		return "Could not save the listings: " + err.Error()
	}
	return "Scrape failed: " + err.Error()
}

func exitCode(err error) int {
	switch services.TerminalState(err) {
	case services.StateSaved:
		return 0
	case services.StateInvalidURL:
		return 2
	case services.StateUnreachable:
		return 3
	case services.StateFetchFailed:
		return 4
	case services.StateParseFailed:
		return 5
	case services.StateSinkFailed:
		return 6
	}
	return 1
}
