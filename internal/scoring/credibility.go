package scoring

import "strings"

// Source credibility tiers. Matching is substring-based against the
// lower-cased source name; the first matching tier wins, checked in tier
// order.
const (
	credibilityTier1   = 0.9
	credibilityTier2   = 0.7
	credibilityTier3   = 0.5
	credibilityUnknown = 0.3
)

var (
	tier1Sources = []string{"coindesk", "cointelegraph", "decrypt", "the block"}
	tier2Sources = []string{"cryptoslate", "bitcoin magazine", "ethereum foundation"}
	tier3Sources = []string{"medium", "substack", "blog"}
)

// SourceCredibility assigns a coarse trust score to a source name.
// Unknown sources score 0.3.
func SourceCredibility(source string) float64 {
	source = strings.ToLower(source)

	for _, name := range tier1Sources {
		if strings.Contains(source, name) {
			return credibilityTier1
		}
	}
	for _, name := range tier2Sources {
		if strings.Contains(source, name) {
			return credibilityTier2
		}
	}
	for _, name := range tier3Sources {
		if strings.Contains(source, name) {
			return credibilityTier3
		}
	}
	return credibilityUnknown
}
