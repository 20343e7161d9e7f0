package scoring

import (
	"context"
	"strings"

	"github.com/blockvibe/ranker/internal/domain"
)

const (
	// Score-boost mode constants.
	personalizationBaseline = 0.5
	interestBoost           = 0.2
	historyBoost            = 0.1
	preferredSourceBoost    = 0.15
	topicBoost              = 0.1
	readingTimeBoost        = 0.1

	// Profile-relevance mode weights.
	interestWeight      = 0.7
	historyWeight       = 0.3
	historyOverlapScale = 10
)

// PersonalizationScorer scores an item against a viewer profile. It has two
// modes: ScoreBoost produces an additive per-item score with the factor
// strings that explain it, ProfileRelevance produces a pure overlap ratio
// used for profile diagnostics.
type PersonalizationScorer struct {
	logger Logger
}

// NewPersonalizationScorer creates a new personalization scorer.
func NewPersonalizationScorer(logger Logger) *PersonalizationScorer {
	return &PersonalizationScorer{logger: logger}
}

// ScoreBoost returns the personalization score and the factors that produced
// it. A nil profile yields the neutral baseline with no factors. Each signal
// fires at most once: the first matching interest, history term, topic and
// the bucket match each contribute their boost and stop.
func (p *PersonalizationScorer) ScoreBoost(ctx context.Context, item *domain.ContentItem, profile *domain.UserProfile) (float64, []string) {
	if profile == nil {
		return personalizationBaseline, nil
	}

	score := personalizationBaseline
	var factors []string
	text := item.Text()

	for _, interest := range profile.Interests {
		if interest != "" && strings.Contains(text, strings.ToLower(interest)) {
			score += interestBoost
			factors = append(factors, "matches_interest:"+strings.ToLower(interest))
			break
		}
	}

	// History overlap boosts the score but is not surfaced as a factor;
	// factors are meant to be explainable to the viewer, and "you read
	// something like this" is not.
	for _, past := range profile.ReadingHistory {
		if past != "" && strings.Contains(text, strings.ToLower(past)) {
			score += historyBoost
			break
		}
	}

	for _, preferred := range profile.Preferences.PreferredSources {
		if strings.EqualFold(preferred, item.Source) {
			score += preferredSourceBoost
			factors = append(factors, "preferred_source")
			break
		}
	}

	if topic, ok := firstTopicMatch(item.Categories, profile.Preferences.TopicPreferences); ok {
		score += topicBoost
		factors = append(factors, "matches_topic:"+topic)
	}

	if pref := profile.Preferences.ReadingTimePreference; pref != "" {
		if bucket := domain.BucketFor(item.WordCount); bucket == pref {
			score += readingTimeBoost
			factors = append(factors, "matches_reading_time:"+string(bucket))
		}
	}

	score = clamp01(score)

	p.logger.Debug("personalization score calculated",
		"item_id", item.ID,
		"user_id", profile.UserID,
		"score", score,
		"factors", factors,
	)

	return score, factors
}

// ProfileRelevance measures how well extracted entities align with a profile.
// It is a weighted blend of the interest overlap ratio and a saturating
// history overlap. Returns 0 when either side is empty.
func (p *PersonalizationScorer) ProfileRelevance(ctx context.Context, entities []string, profile *domain.UserProfile) float64 {
	if profile == nil || len(entities) == 0 || len(profile.Interests) == 0 {
		return 0
	}

	interests := lowerSet(profile.Interests)
	history := lowerSet(profile.ReadingHistory)

	var interestHits, historyHits int
	for _, entity := range entities {
		lowered := strings.ToLower(entity)
		if interests[lowered] {
			interestHits++
		}
		if history[lowered] {
			historyHits++
		}
	}

	interestRatio := float64(interestHits) / float64(len(profile.Interests))
	historyRatio := float64(historyHits) / historyOverlapScale
	if historyRatio > 1 {
		historyRatio = 1
	}

	return interestRatio*interestWeight + historyRatio*historyWeight
}

// firstTopicMatch returns the first item category present in the viewer's
// topic preferences.
func firstTopicMatch(categories, topics []string) (string, bool) {
	prefs := lowerSet(topics)
	for _, category := range categories {
		if prefs[strings.ToLower(category)] {
			return category, true
		}
	}
	return "", false
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}
