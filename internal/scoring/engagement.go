package scoring

import (
	"context"
	"strings"

	"github.com/blockvibe/ranker/internal/domain"
)

const (
	engagementBaseline     = 0.5
	engagementTitleMinLen  = 30
	engagementTitleMaxLen  = 100
	engagementTitleBonus   = 0.1
	emotionalWordBonus     = 0.1
	questionBonus          = 0.05
	engagementImageBonus   = 0.1
	credibilityBlendWeight = 0.2
	qualityBlendWeight     = 0.1

	// Default used when an upstream signal never ran on this item.
	missingSignalDefault = 0.5
)

// emotionalWords are title words that historically correlate with clicks.
var emotionalWords = []string{
	"breakthrough", "revolutionary", "exclusive", "urgent", "critical", "major",
}

// EngagementScorer predicts how likely an item is to be interacted with,
// from structural title features blended with the upstream credibility and
// quality signals.
type EngagementScorer struct {
	logger Logger
}

// NewEngagementScorer creates a new engagement scorer.
func NewEngagementScorer(logger Logger) *EngagementScorer {
	return &EngagementScorer{logger: logger}
}

// Score calculates the engagement potential for an item. Items that skipped
// enrichment blend in a neutral 0.5 for the missing credibility and quality
// signals rather than penalizing them to zero.
func (e *EngagementScorer) Score(ctx context.Context, item *domain.ContentItem) float64 {
	score := engagementBaseline

	if len(item.Title) > engagementTitleMinLen && len(item.Title) < engagementTitleMaxLen {
		score += engagementTitleBonus
	}

	title := strings.ToLower(item.Title)
	for _, word := range emotionalWords {
		if strings.Contains(title, word) {
			score += emotionalWordBonus
			break
		}
	}

	if strings.Contains(item.Title, "?") {
		score += questionBonus
	}

	if item.HasImage || item.ImageURL != "" {
		score += engagementImageBonus
	}

	credibility := item.SourceCredibility
	if credibility == 0 {
		credibility = missingSignalDefault
	}
	quality := item.QualityScore
	if quality == 0 {
		quality = missingSignalDefault
	}
	score += credibility * credibilityBlendWeight
	score += quality * qualityBlendWeight

	score = clamp01(score)

	e.logger.Debug("engagement score calculated",
		"item_id", item.ID,
		"score", score,
	)

	return score
}

// ScoreBatch scores multiple items.
func (e *EngagementScorer) ScoreBatch(ctx context.Context, items []*domain.ContentItem) []float64 {
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = e.Score(ctx, item)
	}
	return scores
}
