package main

import (
	"context"

	"ncbi/fetcher/internal/config"
	"ncbi/fetcher/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting NCBI assembly fetcher...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Info("Configuration loaded successfully")

	// Initialize container with all dependencies
	app, err := container.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Run the pipeline. Individual fetch failures are reported in the
	// summary; only a pipeline failure is fatal.
	summary, err := app.Run(context.Background())
	if err != nil {
		log.Fatalf("Pipeline exited with error: %v", err)
	}

	for _, failure := range summary.Failures {
		log.Errorf("Failed: %s (%s)", failure.RemotePath, failure.Reason)
	}
	log.Infof("Considered %d records, matched %d, attempted %d, fetched %d, failed %d",
		summary.RecordsConsidered, summary.RecordsMatched,
		summary.FetchAttempted, summary.FetchSucceeded, summary.FetchFailed)

	log.Info("Application finished successfully")
}
