package scoring

import (
	"context"
	"strings"

	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/knowledge"
)

// Confidence scale presets. Graph-derived sentiment is diluted across many
// related terms so it saturates slowly; direct lexicon hits are a strong
// signal and saturate fast.
const (
	GraphConfidenceScale   = 2
	LexiconConfidenceScale = 10
)

// Sentiment is a polarity in [-1, 1] with a confidence in [0, 1].
type Sentiment struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// SentimentScorer derives a coarse polarity from lexicon word hits,
// normalized by text length.
type SentimentScorer struct {
	logger  Logger
	lexicon knowledge.Lexicon
	scale   float64
}

// NewSentimentScorer creates a sentiment scorer with the given confidence
// scale preset.
func NewSentimentScorer(logger Logger, lexicon knowledge.Lexicon, scale float64) *SentimentScorer {
	return &SentimentScorer{logger: logger, lexicon: lexicon, scale: scale}
}

// Score calculates the sentiment of an item's title and summary. Each
// lexicon word counts at most once regardless of how often it appears.
func (s *SentimentScorer) Score(ctx context.Context, item *domain.ContentItem) Sentiment {
	result := s.ScoreText(item.Text())

	s.logger.Debug("sentiment score calculated",
		"item_id", item.ID,
		"score", result.Score,
		"confidence", result.Confidence,
	)

	return result
}

// ScoreText calculates sentiment for arbitrary text.
func (s *SentimentScorer) ScoreText(text string) Sentiment {
	lowered := strings.ToLower(text)

	var hits int
	for _, word := range s.lexicon.Positive {
		if strings.Contains(lowered, word) {
			hits++
		}
	}
	for _, word := range s.lexicon.Negative {
		if strings.Contains(lowered, word) {
			hits--
		}
	}

	wordCount := len(strings.Fields(lowered))
	if wordCount < 1 {
		wordCount = 1
	}

	score := float64(hits) / float64(wordCount)
	if score > 1 {
		score = 1
	}
	if score < -1 {
		score = -1
	}

	confidence := score * s.scale
	if confidence < 0 {
		confidence = -confidence
	}
	if confidence > 1 {
		confidence = 1
	}

	return Sentiment{Score: score, Confidence: confidence}
}
