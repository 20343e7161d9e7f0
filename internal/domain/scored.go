package domain

import (
	"encoding/json"
	"time"
)

// ScoredItem is a ContentItem plus the ranking signals. It is the terminal
// artifact of the pipeline and is not mutated after it is produced.
type ScoredItem struct {
	ContentItem

	BaseRelevance     float64  `json:"base_relevance"`
	PersonalizedScore float64  `json:"personalized_score"`
	EngagementScore   float64  `json:"engagement_potential"`
	RecencyScore      float64  `json:"recency_score"`
	FinalScore        float64  `json:"final_score"`
	Factors           []string `json:"personalization_factors,omitempty"`

	// Scored is false when per-item scoring failed and the item was passed
	// through with its pre-failure fields unchanged.
	Scored bool `json:"scored"`
}

// scoredKeys are the JSON keys owned by ScoredItem on top of ContentItem.
var scoredKeys = []string{
	"base_relevance", "personalized_score", "engagement_potential",
	"recency_score", "final_score", "personalization_factors", "scored",
}

// scoredFields mirrors the score-only fields for (un)marshalling.
type scoredFields struct {
	BaseRelevance     float64  `json:"base_relevance"`
	PersonalizedScore float64  `json:"personalized_score"`
	EngagementScore   float64  `json:"engagement_potential"`
	RecencyScore      float64  `json:"recency_score"`
	FinalScore        float64  `json:"final_score"`
	Factors           []string `json:"personalization_factors,omitempty"`
	Scored            bool     `json:"scored"`
}

// MarshalJSON emits a flat record: content fields, Extra passthrough, and the
// score fields at the top level, matching what downstream consumers expect.
func (s ScoredItem) MarshalJSON() ([]byte, error) {
	base, err := s.ContentItem.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}

	scoreJSON, err := json.Marshal(scoredFields{
		BaseRelevance:     s.BaseRelevance,
		PersonalizedScore: s.PersonalizedScore,
		EngagementScore:   s.EngagementScore,
		RecencyScore:      s.RecencyScore,
		FinalScore:        s.FinalScore,
		Factors:           s.Factors,
		Scored:            s.Scored,
	})
	if err != nil {
		return nil, err
	}
	var scores map[string]any
	if err := json.Unmarshal(scoreJSON, &scores); err != nil {
		return nil, err
	}
	for key, val := range scores {
		merged[key] = val
	}

	return json.Marshal(merged)
}

// UnmarshalJSON decodes the flat record form produced by MarshalJSON.
func (s *ScoredItem) UnmarshalJSON(data []byte) error {
	var scores scoredFields
	if err := json.Unmarshal(data, &scores); err != nil {
		return err
	}

	// Strip score keys so they do not leak into ContentItem.Extra.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range scoredKeys {
		delete(raw, key)
	}
	contentJSON, err := json.Marshal(raw)
	if err != nil {
		return err
	}

	var item ContentItem
	if err := json.Unmarshal(contentJSON, &item); err != nil {
		return err
	}

	s.ContentItem = item
	s.BaseRelevance = scores.BaseRelevance
	s.PersonalizedScore = scores.PersonalizedScore
	s.EngagementScore = scores.EngagementScore
	s.RecencyScore = scores.RecencyScore
	s.FinalScore = scores.FinalScore
	s.Factors = scores.Factors
	s.Scored = scores.Scored
	return nil
}

// RankedResult is the final ranked output exposed to callers.
type RankedResult struct {
	Items         []*ScoredItem `json:"items"`
	MeanRelevance float64       `json:"mean_relevance"`
	GeneratedAt   time.Time     `json:"generated_at"`
}
