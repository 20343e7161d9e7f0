package knowledge

import (
	"sort"
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
)

// Extractor maps free text to the known term set. It sits behind an
// interface so a stricter tokenizing implementation can be substituted
// without touching the scorers.
type Extractor interface {
	Extract(text string) []string
}

// DefaultVocabulary is the fixed keyword vocabulary matched in addition to
// the graph entity ids.
var DefaultVocabulary = []string{
	"bitcoin", "ethereum", "defi", "nft", "web3", "blockchain",
	"crypto", "mining", "staking", "yield farming", "dao",
	"smart contract", "dapp", "metaverse", "consensus",
}

// SubstringExtractor matches terms as plain substrings of the lower-cased
// text via an Aho-Corasick automaton. Substring semantics are deliberate and
// part of the contract: "bit" inside "bitmap" matches. Known limitation;
// swap in a tokenizing Extractor if it becomes a problem.
type SubstringExtractor struct {
	matcher *ahocorasick.Matcher
	terms   []string
}

// NewSubstringExtractor builds an extractor over the graph entity ids
// followed by the vocabulary terms. Result order is always graph terms
// first, then vocabulary terms, each in seed order.
func NewSubstringExtractor(graph *Graph, vocabulary []string) *SubstringExtractor {
	graphIDs := graph.EntityIDs()
	seen := make(map[string]bool, len(graphIDs)+len(vocabulary))
	terms := make([]string, 0, len(graphIDs)+len(vocabulary))

	for _, id := range graphIDs {
		if !seen[id] {
			seen[id] = true
			terms = append(terms, id)
		}
	}
	for _, term := range vocabulary {
		term = strings.ToLower(term)
		if term != "" && !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	return &SubstringExtractor{
		matcher: ahocorasick.NewStringMatcher(terms),
		terms:   terms,
	}
}

// Extract returns the ordered-unique list of terms present in the text.
func (e *SubstringExtractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	hits := e.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return nil
	}

	// Matcher reports dictionary indices in text order; restore term
	// insertion order so output is deterministic.
	sort.Ints(hits)

	matched := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx >= 0 && idx < len(e.terms) {
			matched = append(matched, e.terms[idx])
		}
	}
	return matched
}
