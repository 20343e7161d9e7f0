package scoring

import (
	"context"
	"strings"
	"time"

	"github.com/blockvibe/ranker/internal/domain"
)

const (
	// Quality scoring constants
	qualityBaseline       = 0.5
	qualityTitleMinLen    = 20
	qualityTitleMaxLen    = 200
	qualityTitleBonus     = 0.1
	qualitySummaryMinLen  = 50
	qualitySummaryBonus   = 0.1
	qualityCredibleBonus  = 0.2
	qualityImageBonus     = 0.1
	qualityFreshAgeHours  = 24
	qualityFreshnessBonus = 0.1
)

// credibleSources is the fixed list used for the quality bonus. This is a
// separate concern from the credibility tiers: quality asks "is this a
// known-good outlet", credibility assigns the trust score.
var credibleSources = []string{"coindesk", "cointelegraph", "decrypt", "the block", "cryptoslate"}

// QualityScorer estimates content quality from structural features.
type QualityScorer struct {
	logger Logger
}

// NewQualityScorer creates a new quality scorer.
func NewQualityScorer(logger Logger) *QualityScorer {
	return &QualityScorer{logger: logger}
}

// Score calculates the quality score for an item. Additive bonuses on a 0.5
// baseline, clamped to 1.0. A malformed published timestamp simply forfeits
// the freshness bonus; it is never an error.
func (q *QualityScorer) Score(ctx context.Context, item *domain.ContentItem) float64 {
	score := qualityBaseline

	if len(item.Title) > qualityTitleMinLen && len(item.Title) < qualityTitleMaxLen {
		score += qualityTitleBonus
	}

	if len(item.Summary) > qualitySummaryMinLen {
		score += qualitySummaryBonus
	}

	if isCredibleSource(item.Source) {
		score += qualityCredibleBonus
	}

	if item.ImageURL != "" {
		score += qualityImageBonus
	}

	if age, err := item.AgeHours(time.Now()); err == nil && age < qualityFreshAgeHours {
		score += qualityFreshnessBonus
	}

	score = clamp01(score)

	q.logger.Debug("quality score calculated",
		"item_id", item.ID,
		"source", item.Source,
		"score", score,
	)

	return score
}

// ScoreBatch scores multiple items.
func (q *QualityScorer) ScoreBatch(ctx context.Context, items []*domain.ContentItem) []float64 {
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = q.Score(ctx, item)
	}
	return scores
}

func isCredibleSource(source string) bool {
	lowered := strings.ToLower(source)
	for _, credible := range credibleSources {
		if strings.Contains(lowered, credible) {
			return true
		}
	}
	return false
}
