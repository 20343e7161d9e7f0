package scoring

import (
	"context"
	"errors"
	"sort"

	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/knowledge"
)

// Weights combine the per-signal scores into a final score. The two presets
// correspond to the two places ranking runs: the fetch stage has no
// enrichment output yet, so it blends only relevance and personalization.
type Weights struct {
	Base            float64
	Personalization float64
	Engagement      float64
	Recency         float64
}

// FetchStageWeights rank items straight off the feed.
var FetchStageWeights = Weights{Base: 0.6, Personalization: 0.4}

// PipelineWeights rank fully enriched items.
var PipelineWeights = Weights{Base: 0.3, Personalization: 0.4, Engagement: 0.2, Recency: 0.1}

// ErrNilItem is returned when a nil item reaches the ranker.
var ErrNilItem = errors.New("scoring: nil content item")

// Ranker computes the combined score for each item and orders a batch by it.
type Ranker struct {
	logger          Logger
	graph           *knowledge.Graph
	extractor       knowledge.Extractor
	personalization *PersonalizationScorer
	engagement      *EngagementScorer
	recency         *RecencyScorer
}

// NewRanker creates a ranker over the given graph and extractor.
func NewRanker(
	logger Logger,
	graph *knowledge.Graph,
	extractor knowledge.Extractor,
	personalization *PersonalizationScorer,
	engagement *EngagementScorer,
	recency *RecencyScorer,
) *Ranker {
	return &Ranker{
		logger:          logger,
		graph:           graph,
		extractor:       extractor,
		personalization: personalization,
		engagement:      engagement,
		recency:         recency,
	}
}

// ScoreItem computes every signal for one item and combines them under the
// given weights. Signals whose weight is zero are still computed and recorded
// on the scored item; only the final blend ignores them.
func (r *Ranker) ScoreItem(ctx context.Context, item *domain.ContentItem, profile *domain.UserProfile, weights Weights) (*domain.ScoredItem, error) {
	if item == nil {
		return nil, ErrNilItem
	}

	terms := r.extractor.Extract(item.Text())
	base := r.graph.BaseRelevance(terms)

	personalized, factors := r.personalization.ScoreBoost(ctx, item, profile)
	engagement := r.engagement.Score(ctx, item)
	recency := r.recency.Score(ctx, item)

	final := base*weights.Base +
		personalized*weights.Personalization +
		engagement*weights.Engagement +
		recency*weights.Recency
	final = clamp01(final)

	return &domain.ScoredItem{
		ContentItem:       *item,
		BaseRelevance:     base,
		PersonalizedScore: personalized,
		EngagementScore:   engagement,
		RecencyScore:      recency,
		FinalScore:        final,
		Factors:           factors,
		Scored:            true,
	}, nil
}

// Rank scores a batch and returns it ordered by final score, highest first.
// The sort is stable, so equal scores keep their input order. An item that
// fails to score is passed through unscored at the end of the order rather
// than dropped.
func (r *Ranker) Rank(ctx context.Context, items []*domain.ContentItem, profile *domain.UserProfile, weights Weights) []*domain.ScoredItem {
	scored := make([]*domain.ScoredItem, 0, len(items))

	for i, item := range items {
		result, err := r.ScoreItem(ctx, item, profile, weights)
		if err != nil {
			r.logger.Warn("item failed to score, passing through unscored",
				"index", i,
				"error", err,
			)
			passthrough := &domain.ScoredItem{Scored: false}
			if item != nil {
				passthrough.ContentItem = *item
			}
			scored = append(scored, passthrough)
			continue
		}
		scored = append(scored, result)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].FinalScore > scored[j].FinalScore
	})

	r.logger.Debug("batch ranked",
		"items", len(items),
		"scored", len(scored),
	)

	return scored
}
