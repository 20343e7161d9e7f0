package scoring

import (
	"context"
	"math"
	"testing"

	"github.com/blockvibe/ranker/internal/domain"
)

func TestEngagementScorer_Score_MissingSignalsUseNeutralDefault(t *testing.T) {
	scorer := NewEngagementScorer(&mockLogger{})

	// No enrichment ran: credibility and quality both blend in as 0.5.
	item := &domain.ContentItem{Title: "tiny"}

	score := scorer.Score(context.Background(), item)

	expected := 0.5 + 0.5*0.2 + 0.5*0.1
	if math.Abs(score-expected) > 1e-9 {
		t.Errorf("expected %f, got %f", expected, score)
	}
}

func TestEngagementScorer_Score_TitleFeatures(t *testing.T) {
	scorer := NewEngagementScorer(&mockLogger{})
	ctx := context.Background()

	tests := []struct {
		name     string
		item     *domain.ContentItem
		expected float64
	}{
		{
			"length bonus",
			&domain.ContentItem{
				Title:             "Exchange volumes climb for a third week",
				SourceCredibility: 0.3,
				QualityScore:      0.5,
			},
			0.5 + 0.1 + 0.3*0.2 + 0.5*0.1,
		},
		{
			"emotional word",
			&domain.ContentItem{
				Title:             "Major breakthrough in zero knowledge proofs",
				SourceCredibility: 0.3,
				QualityScore:      0.5,
			},
			0.5 + 0.1 + 0.1 + 0.3*0.2 + 0.5*0.1,
		},
		{
			"question mark",
			&domain.ContentItem{
				Title:             "Is this the bottom for altcoin markets?",
				SourceCredibility: 0.3,
				QualityScore:      0.5,
			},
			0.5 + 0.1 + 0.05 + 0.3*0.2 + 0.5*0.1,
		},
		{
			"image via enrichment flag",
			&domain.ContentItem{
				Title:             "tiny",
				HasImage:          true,
				SourceCredibility: 0.3,
				QualityScore:      0.5,
			},
			0.5 + 0.1 + 0.3*0.2 + 0.5*0.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(ctx, tt.item)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}

func TestEngagementScorer_Score_Clamped(t *testing.T) {
	scorer := NewEngagementScorer(&mockLogger{})

	item := &domain.ContentItem{
		Title:             "Urgent: revolutionary breakthrough shakes markets?",
		ImageURL:          "https://example.com/img.png",
		SourceCredibility: 0.9,
		QualityScore:      1.0,
	}

	score := scorer.Score(context.Background(), item)

	if score != 1.0 {
		t.Errorf("expected clamp to 1.0, got %f", score)
	}
}
