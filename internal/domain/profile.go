package domain

import "time"

// ReadingLength is a viewer's preferred article length.
type ReadingLength string

// Reading length preferences and their summary word-count buckets.
const (
	ReadingShort  ReadingLength = "short"  // under 100 words
	ReadingMedium ReadingLength = "medium" // 100-300 words
	ReadingLong   ReadingLength = "long"   // over 300 words
)

// Bucket word-count boundaries.
const (
	shortWordLimit = 100
	longWordLimit  = 300
)

// BucketFor returns the reading length bucket for a summary word count.
func BucketFor(wordCount int) ReadingLength {
	switch {
	case wordCount < shortWordLimit:
		return ReadingShort
	case wordCount <= longWordLimit:
		return ReadingMedium
	default:
		return ReadingLong
	}
}

// Preferences holds a viewer's stated preferences. The profile store owns
// these; scoring only reads them.
type Preferences struct {
	PreferredSources      []string      `json:"preferred_sources,omitempty"`
	TopicPreferences      []string      `json:"topic_preferences,omitempty"`
	ReadingTimePreference ReadingLength `json:"reading_time_preference,omitempty"`
}

// UserProfile is the read-only personalization input. A nil profile means the
// personalization scorer runs in baseline-only mode.
type UserProfile struct {
	UserID         string      `json:"user_id"`
	Interests      []string    `json:"interests"`
	ReadingHistory []string    `json:"reading_history"`
	Preferences    Preferences `json:"preferences"`
	LastUpdated    time.Time   `json:"last_updated"`
}
