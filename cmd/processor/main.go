// Command processor runs the ranking pipeline over a single request read
// from stdin or a file, writing the response to stdout. It speaks the same
// message shapes as the HTTP surface, so batch jobs and the service stay
// interchangeable.
package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blockvibe/ranker/internal/config"
	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/knowledge"
	"github.com/blockvibe/ranker/internal/logging"
	"github.com/blockvibe/ranker/internal/metrics"
	"github.com/blockvibe/ranker/internal/pipeline"
	"github.com/blockvibe/ranker/internal/scoring"
)

func main() {
	configPath := os.Getenv("RANKER_CONFIG")
	if configPath == "" {
		configPath = "config.yml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fail("failed to load config: " + err.Error())
	}

	// Logs go to stderr so stdout stays a clean response stream.
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fail("failed to build logger: " + err.Error())
	}

	input := io.Reader(os.Stdin)
	if len(os.Args) > 1 {
		file, openErr := os.Open(os.Args[1])
		if openErr != nil {
			fail("failed to open request file: " + openErr.Error())
		}
		defer func() {
			_ = file.Close()
		}()
		input = file
	}

	var request domain.PipelineRequest
	if err := json.NewDecoder(input).Decode(&request); err != nil {
		fail("failed to decode request: " + err.Error())
	}

	graph := knowledge.NewGraph()
	extractor := knowledge.NewSubstringExtractor(graph, knowledge.DefaultVocabulary)
	ranker := scoring.NewRanker(
		logger,
		graph,
		extractor,
		scoring.NewPersonalizationScorer(logger),
		scoring.NewEngagementScorer(logger),
		scoring.NewRecencyScorer(logger),
	)
	enricher := pipeline.NewEnricher(logger, scoring.NewQualityScorer(logger), cfg.Service.Name)
	pipe := pipeline.New(logger, enricher, ranker, metrics.New(prometheus.NewRegistry()), cfg.Service.Name)

	response := pipe.Handle(context.Background(), &request)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		fail("failed to encode response: " + err.Error())
	}

	if !response.Success {
		os.Exit(1)
	}
}

func fail(msg string) {
	os.Stderr.WriteString(msg + "\n")
	os.Exit(1)
}
