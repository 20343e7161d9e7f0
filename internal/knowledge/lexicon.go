package knowledge

// Lexicon is the static sentiment word lists used for polarity estimation.
type Lexicon struct {
	Positive []string
	Negative []string
}

// NewLexicon returns the seed sentiment lexicon.
func NewLexicon() Lexicon {
	return Lexicon{
		Positive: []string{
			"bullish", "surge", "rise", "growth", "adoption",
			"breakthrough", "innovation",
		},
		Negative: []string{
			"bearish", "crash", "fall", "decline", "regulation",
			"ban", "hack",
		},
	}
}
