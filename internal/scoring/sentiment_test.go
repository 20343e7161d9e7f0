package scoring

import (
	"math"
	"testing"

	"github.com/blockvibe/ranker/internal/knowledge"
)

func TestSentimentScorer_ScoreText(t *testing.T) {
	scorer := NewSentimentScorer(&mockLogger{}, knowledge.NewLexicon(), LexiconConfidenceScale)

	tests := []struct {
		name               string
		text               string
		expectedScore      float64
		expectedConfidence float64
	}{
		{
			"empty text",
			"",
			0,
			0,
		},
		{
			"neutral",
			"the market was quiet today",
			0,
			0,
		},
		{
			"positive",
			"bullish surge continues",
			2.0 / 3.0,
			1,
		},
		{
			"negative",
			"exchange hack triggers crash",
			-2.0 / 4.0,
			1,
		},
		{
			"mixed cancels out",
			"bullish traders meet bearish sellers",
			0,
			0,
		},
		{
			"weak signal in long text",
			"adoption " + repeatWords("word", 19),
			1.0 / 20.0,
			0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ScoreText(tt.text)
			if math.Abs(got.Score-tt.expectedScore) > 1e-9 {
				t.Errorf("score: expected %f, got %f", tt.expectedScore, got.Score)
			}
			if math.Abs(got.Confidence-tt.expectedConfidence) > 1e-9 {
				t.Errorf("confidence: expected %f, got %f", tt.expectedConfidence, got.Confidence)
			}
		})
	}
}

func TestSentimentScorer_GraphPresetSaturatesSlower(t *testing.T) {
	lexicon := knowledge.NewLexicon()
	graphPreset := NewSentimentScorer(&mockLogger{}, lexicon, GraphConfidenceScale)
	lexiconPreset := NewSentimentScorer(&mockLogger{}, lexicon, LexiconConfidenceScale)

	text := "growth expected " + repeatWords("word", 8)

	graphResult := graphPreset.ScoreText(text)
	lexiconResult := lexiconPreset.ScoreText(text)

	if graphResult.Score != lexiconResult.Score {
		t.Fatalf("presets must agree on polarity: %f vs %f", graphResult.Score, lexiconResult.Score)
	}
	if graphResult.Confidence >= lexiconResult.Confidence {
		t.Errorf("graph preset should be less confident: %f vs %f",
			graphResult.Confidence, lexiconResult.Confidence)
	}
}

func TestSentimentScorer_BoundsHold(t *testing.T) {
	scorer := NewSentimentScorer(&mockLogger{}, knowledge.NewLexicon(), LexiconConfidenceScale)

	texts := []string{
		"surge",
		"crash",
		"bullish surge rise growth adoption breakthrough innovation",
		"bearish crash fall decline regulation ban hack",
	}

	for _, text := range texts {
		got := scorer.ScoreText(text)
		if got.Score < -1 || got.Score > 1 {
			t.Errorf("score out of range for %q: %f", text, got.Score)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("confidence out of range for %q: %f", text, got.Confidence)
		}
	}
}

func repeatWords(word string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += " "
		}
		out += word
	}
	return out
}
