// Package domain defines the content, profile and message types exchanged
// between the pipeline stages.
package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ContentItem represents a news article as it moves through the pipeline.
// The fetch stage creates it; the enrichment stage fills in the derived
// fields. Ownership passes stage to stage, so no stage mutates an item
// another stage still holds.
type ContentItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`

	// Derived fields, set by enrichment.
	Categories        []string `json:"categories,omitempty"`
	Tags              []string `json:"tags,omitempty"`
	WordCount         int      `json:"word_count,omitempty"`
	HasImage          bool     `json:"has_image,omitempty"`
	Language          string   `json:"language,omitempty"`
	QualityScore      float64  `json:"quality_score,omitempty"`
	SourceCredibility float64  `json:"source_credibility,omitempty"`
	RelevanceScore    float64  `json:"relevance_score,omitempty"`
	ProcessedBy       string   `json:"processed_by,omitempty"`
	ProcessedAt       string   `json:"processing_timestamp,omitempty"`

	// Extra holds fields from upstream collaborators that this service does
	// not interpret. They round-trip through enrichment and scoring unchanged.
	Extra map[string]any `json:"-"`
}

// MaxTags bounds the number of tags attached to an item.
const MaxTags = 5

// knownContentKeys lists the JSON keys owned by ContentItem. Anything else in
// an incoming record lands in Extra.
var knownContentKeys = []string{
	"id", "title", "url", "summary", "source", "published_at", "image_url",
	"categories", "tags", "word_count", "has_image", "language",
	"quality_score", "source_credibility", "relevance_score",
	"processed_by", "processing_timestamp",
}

// contentItemAlias avoids recursing into the custom JSON methods.
type contentItemAlias ContentItem

// UnmarshalJSON decodes the known fields and keeps unknown keys in Extra.
func (c *ContentItem) UnmarshalJSON(data []byte) error {
	var known contentItemAlias
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, key := range knownContentKeys {
		delete(raw, key)
	}

	if len(raw) > 0 {
		known.Extra = make(map[string]any, len(raw))
		for key, val := range raw {
			var decoded any
			if err := json.Unmarshal(val, &decoded); err != nil {
				continue
			}
			known.Extra[key] = decoded
		}
	}

	*c = ContentItem(known)
	return nil
}

// MarshalJSON emits the known fields plus any Extra keys. Known fields win
// on key collisions.
func (c ContentItem) MarshalJSON() ([]byte, error) {
	base, err := json.Marshal(contentItemAlias(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return base, nil
	}

	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for key, val := range c.Extra {
		if _, exists := merged[key]; !exists {
			merged[key] = val
		}
	}

	return json.Marshal(merged)
}

// Text returns the lower-cased title and summary, the text every matcher and
// scorer operates on.
func (c *ContentItem) Text() string {
	return strings.ToLower(c.Title + " " + c.Summary)
}

// publishedAtLayouts covers RFC 3339 feeds, RSS pubDate variants, and
// provider timestamps missing an explicit zone (treated as UTC).
var publishedAtLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// ParsePublishedAt parses a provider timestamp. Callers are expected to treat
// an error as "age unknown" and fall back to their documented default.
func ParsePublishedAt(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range publishedAtLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// AgeHours returns the item age in hours relative to now, or an error when
// the published timestamp cannot be parsed.
func (c *ContentItem) AgeHours(now time.Time) (float64, error) {
	published, err := ParsePublishedAt(c.PublishedAt)
	if err != nil {
		return 0, err
	}
	return now.Sub(published).Hours(), nil
}
