package knowledge

import "strings"

// categoryKeywords maps each category to the keywords that trigger it.
// Matching is substring-based, consistent with the extractor.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"defi", []string{"defi", "decentralized finance", "yield farming", "liquidity"}},
	{"nft", []string{"nft", "non-fungible token", "digital art", "collectible"}},
	{"web3", []string{"web3", "dapp", "decentralized app", "metaverse"}},
	{"trading", []string{"trading", "price", "market", "bull", "bear"}},
	{"technology", []string{"blockchain", "consensus", "mining", "staking"}},
	{"regulation", []string{"regulation", "sec", "government", "legal"}},
}

// CategoryFallback is assigned when no category keyword matches.
const CategoryFallback = "general"

// ExtractCategories returns the categories whose keywords appear in the
// text, falling back to ["general"] when nothing matches.
func ExtractCategories(text string) []string {
	text = strings.ToLower(text)

	var categories []string
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				categories = append(categories, entry.category)
				break
			}
		}
	}

	if len(categories) == 0 {
		return []string{CategoryFallback}
	}
	return categories
}
