// Package pipeline orchestrates the two processing stages: enrichment, which
// fills derived item fields, and ranking, which scores and orders a batch.
package pipeline

import (
	"context"
	"time"

	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/metrics"
	"github.com/blockvibe/ranker/internal/scoring"
)

// Logger defines the logging interface used by the pipeline stages.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Pipeline runs enrichment and ranking over item batches and answers the
// message-shaped requests coming off the wire.
type Pipeline struct {
	logger   Logger
	enricher *Enricher
	ranker   *scoring.Ranker
	metrics  *metrics.Metrics
	producer string
	now      func() time.Time
}

// New creates a pipeline. The producer name is echoed in every response so
// consumers can tell which instance served them.
func New(logger Logger, enricher *Enricher, ranker *scoring.Ranker, m *metrics.Metrics, producer string) *Pipeline {
	return &Pipeline{
		logger:   logger,
		enricher: enricher,
		ranker:   ranker,
		metrics:  m,
		producer: producer,
		now:      time.Now,
	}
}

// Handle dispatches a pipeline request by action. Unknown actions produce a
// failure response with empty items; no error is returned across this
// boundary.
func (p *Pipeline) Handle(ctx context.Context, req *domain.PipelineRequest) *domain.PipelineResponse {
	started := p.now()

	var items []*domain.ScoredItem
	success := true

	switch req.Action {
	case domain.ActionEnrich:
		items = p.enrichOnly(ctx, req.Items)
	case domain.ActionRank:
		items = p.rank(ctx, req.Items, req.Profile)
	default:
		p.logger.Warn("unknown pipeline action", "action", req.Action)
		success = false
		items = []*domain.ScoredItem{}
	}

	return &domain.PipelineResponse{
		Success:        success,
		Items:          items,
		ElapsedSeconds: p.now().Sub(started).Seconds(),
		ProducerName:   p.producer,
	}
}

// Run enriches, scores and ranks a batch, returning at most limit items.
// limit <= 0 means no truncation. The mean relevance aggregates the graph
// relevance over every scored item in the batch, before truncation.
func (p *Pipeline) Run(ctx context.Context, items []*domain.ContentItem, profile *domain.UserProfile, limit int) *domain.RankedResult {
	scored := p.rank(ctx, items, profile)

	var total float64
	var counted int
	for _, item := range scored {
		if item.Scored {
			total += item.BaseRelevance
			counted++
		}
	}
	mean := 0.0
	if counted > 0 {
		mean = total / float64(counted)
	}

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}

	return &domain.RankedResult{
		Items:         scored,
		MeanRelevance: mean,
		GeneratedAt:   p.now().UTC(),
	}
}

// enrichOnly runs the enrichment stage and wraps the batch in unscored
// result records.
func (p *Pipeline) enrichOnly(ctx context.Context, items []*domain.ContentItem) []*domain.ScoredItem {
	p.enricher.EnrichBatch(ctx, items)
	p.metrics.ItemsEnriched.Add(float64(len(items)))

	out := make([]*domain.ScoredItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, &domain.ScoredItem{ContentItem: *item})
	}
	return out
}

// rank runs both stages under the pipeline weight preset.
func (p *Pipeline) rank(ctx context.Context, items []*domain.ContentItem, profile *domain.UserProfile) []*domain.ScoredItem {
	started := p.now()

	p.enricher.EnrichBatch(ctx, items)
	scored := p.ranker.Rank(ctx, items, profile, scoring.PipelineWeights)

	p.metrics.RankBatches.Inc()
	p.metrics.ItemsEnriched.Add(float64(len(items)))
	p.metrics.ItemsScored.Add(float64(len(scored)))
	p.metrics.ScoringDuration.Observe(p.now().Sub(started).Seconds())

	return scored
}
