package scoring

import (
	"context"
	"time"

	"github.com/blockvibe/ranker/internal/domain"
)

// Recency buckets. Boundary ages belong to the fresher bucket: an item
// exactly 1 hour old still scores 1.0.
const (
	recencyHourBucket  = 1
	recencyDayPartial  = 6
	recencyDayBucket   = 24
	recencyThreeDays   = 72
	recencyScoreFresh  = 1.0
	recencyScoreRecent = 0.9
	recencyScoreToday  = 0.7
	recencyScoreStale  = 0.5
	recencyScoreOld    = 0.3

	// Unknown age is mid-scale, not penalized to the floor.
	recencyScoreUnknown = 0.5
)

// RecencyScorer maps item age onto a stepped freshness scale.
type RecencyScorer struct {
	logger Logger
	now    func() time.Time
}

// NewRecencyScorer creates a new recency scorer using the wall clock.
func NewRecencyScorer(logger Logger) *RecencyScorer {
	return &RecencyScorer{logger: logger, now: time.Now}
}

// NewRecencyScorerAt creates a recency scorer with an injected clock.
func NewRecencyScorerAt(logger Logger, now func() time.Time) *RecencyScorer {
	return &RecencyScorer{logger: logger, now: now}
}

// Score calculates the recency score for an item. An unparseable published
// timestamp yields the unknown-age default.
func (r *RecencyScorer) Score(ctx context.Context, item *domain.ContentItem) float64 {
	age, err := item.AgeHours(r.now())
	if err != nil {
		r.logger.Debug("unparseable published timestamp",
			"item_id", item.ID,
			"published_at", item.PublishedAt,
		)
		return recencyScoreUnknown
	}

	switch {
	case age <= recencyHourBucket:
		return recencyScoreFresh
	case age <= recencyDayPartial:
		return recencyScoreRecent
	case age <= recencyDayBucket:
		return recencyScoreToday
	case age <= recencyThreeDays:
		return recencyScoreStale
	default:
		return recencyScoreOld
	}
}

// ScoreBatch scores multiple items.
func (r *RecencyScorer) ScoreBatch(ctx context.Context, items []*domain.ContentItem) []float64 {
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = r.Score(ctx, item)
	}
	return scores
}
