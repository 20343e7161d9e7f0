package scoring

import "strings"

// KeywordRelevance scores text by vocabulary coverage: the fraction of
// vocabulary terms present as substrings, clamped to 1. This is the cheap
// relevance used at the fetch stage before the graph-based score runs.
func KeywordRelevance(text string, vocabulary []string) float64 {
	if len(vocabulary) == 0 {
		return 0
	}

	lowered := strings.ToLower(text)
	var matched int
	for _, term := range vocabulary {
		if strings.Contains(lowered, term) {
			matched++
		}
	}

	return clamp01(float64(matched) / float64(len(vocabulary)))
}

// MatchedKeywords returns the vocabulary terms present in the text, in
// vocabulary order, capped at limit.
func MatchedKeywords(text string, vocabulary []string, limit int) []string {
	lowered := strings.ToLower(text)

	var matched []string
	for _, term := range vocabulary {
		if strings.Contains(lowered, term) {
			matched = append(matched, term)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched
}
