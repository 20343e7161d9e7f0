package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/blockvibe/ranker/internal/api"
	"github.com/blockvibe/ranker/internal/config"
	"github.com/blockvibe/ranker/internal/database"
	"github.com/blockvibe/ranker/internal/fetch"
	"github.com/blockvibe/ranker/internal/knowledge"
	"github.com/blockvibe/ranker/internal/logging"
	"github.com/blockvibe/ranker/internal/metrics"
	"github.com/blockvibe/ranker/internal/pipeline"
	"github.com/blockvibe/ranker/internal/scoring"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configPath := os.Getenv("RANKER_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		os.Stderr.WriteString("failed to build logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Info("Starting ranker HTTP server",
		"port", cfg.Service.Port,
		"debug", cfg.Service.Debug,
		"sources", len(cfg.Fetch.Sources),
	)

	// Profile store
	db, err := database.Connect(cfg.Database.Path)
	if err != nil {
		logger.Error("Failed to open profile database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	profiles := database.NewProfileRepository(db)
	if err := profiles.EnsureSchema(context.Background()); err != nil {
		logger.Error("Failed to create profile schema", "error", err)
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	// Knowledge and scoring
	graph := knowledge.NewGraph()
	extractor := knowledge.NewSubstringExtractor(graph, knowledge.DefaultVocabulary)

	quality := scoring.NewQualityScorer(logger)
	personalization := scoring.NewPersonalizationScorer(logger)
	engagement := scoring.NewEngagementScorer(logger)
	recency := scoring.NewRecencyScorer(logger)
	sentiment := scoring.NewSentimentScorer(logger, knowledge.NewLexicon(), scoring.LexiconConfidenceScale)
	ranker := scoring.NewRanker(logger, graph, extractor, personalization, engagement, recency)

	enricher := pipeline.NewEnricher(logger, quality, cfg.Service.Name)
	pipe := pipeline.New(logger, enricher, ranker, m, cfg.Service.Name)

	// Fetcher
	sources := make([]fetch.Source, len(cfg.Fetch.Sources))
	for i, src := range cfg.Fetch.Sources {
		sources[i] = fetch.Source{Name: src.Name, URL: src.URL}
	}
	fetcher := fetch.New(logger, m, sources, float64(cfg.Fetch.RequestsPerSec), cfg.Fetch.SourceTimeout)

	// Periodic fetch round keeps a warm ranked batch in the logs and primes
	// the metrics even when no client is calling /feed.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Fetch.CronSpec, func() {
		runFetchRound(logger, fetcher, enricher, ranker)
	}); err != nil {
		logger.Error("Failed to schedule fetch round", "spec", cfg.Fetch.CronSpec, "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// HTTP server
	handler := api.NewHandler(
		pipe, fetcher, profiles, sentiment, logger,
		cfg.Service.Name, cfg.Service.Version, cfg.Service.ResultLimit,
	)
	server := api.NewServer(handler, api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	}, registry)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logger.Info("Shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}

		logger.Info("Server stopped gracefully")
	}
}

// runFetchRound pulls the feeds and ranks the batch with the fetch-stage
// weights, without a viewer profile.
func runFetchRound(logger logging.Logger, fetcher *fetch.Fetcher, enricher *pipeline.Enricher, ranker *scoring.Ranker) {
	ctx := context.Background()

	items := fetcher.FetchAll(ctx)
	if len(items) == 0 {
		logger.Warn("Fetch round produced no items")
		return
	}

	enricher.EnrichBatch(ctx, items)
	scored := ranker.Rank(ctx, items, nil, scoring.FetchStageWeights)

	top := scored[0]
	logger.Info("Fetch round ranked",
		"items", len(scored),
		"top_title", top.Title,
		"top_score", top.FinalScore,
	)
}
