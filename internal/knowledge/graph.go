// Package knowledge holds the static domain knowledge used for ranking: the
// entity graph, the keyword vocabulary, and the sentiment lexicon. Everything
// here is immutable after construction, so concurrent readers need no locks.
package knowledge

// Entity is a recognized domain concept with its static graph metadata.
type Entity struct {
	ID        string
	Type      string
	Relevance float64 // static relevance weight, 0..1
	Sentiment float64 // static sentiment prior, -1..1
	Related   []string
}

// Graph is an in-memory, read-only entity table. Build it once at startup
// with NewGraph and share it by reference.
type Graph struct {
	entities map[string]Entity
	order    []string
}

// NewGraph builds the seed entity graph.
func NewGraph() *Graph {
	seed := []Entity{
		{
			ID:        "bitcoin",
			Type:      "cryptocurrency",
			Relevance: 0.9,
			Sentiment: 0.7,
			Related:   []string{"blockchain", "mining", "halving", "store_of_value"},
		},
		{
			ID:        "ethereum",
			Type:      "platform",
			Relevance: 0.95,
			Sentiment: 0.8,
			Related:   []string{"smart_contracts", "defi", "nft", "gas", "eth2"},
		},
		{
			ID:        "defi",
			Type:      "ecosystem",
			Relevance: 0.85,
			Sentiment: 0.6,
			Related:   []string{"yield_farming", "liquidity", "dex", "lending"},
		},
		{
			ID:        "nft",
			Type:      "technology",
			Relevance: 0.7,
			Sentiment: 0.5,
			Related:   []string{"digital_art", "collectibles", "gaming", "metaverse"},
		},
		{
			ID:        "web3",
			Type:      "movement",
			Relevance: 0.9,
			Sentiment: 0.8,
			Related:   []string{"decentralization", "dapp", "metaverse", "dao"},
		},
	}

	g := &Graph{
		entities: make(map[string]Entity, len(seed)),
		order:    make([]string, 0, len(seed)),
	}
	for _, e := range seed {
		g.entities[e.ID] = e
		g.order = append(g.order, e.ID)
	}
	return g
}

// Lookup returns the entity for the given id. Unknown ids return ok=false,
// never an error.
func (g *Graph) Lookup(id string) (Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Related returns the related entity ids for the given id, or an empty slice
// for unknown ids.
func (g *Graph) Related(id string) []string {
	e, ok := g.entities[id]
	if !ok {
		return nil
	}
	related := make([]string, len(e.Related))
	copy(related, e.Related)
	return related
}

// EntityIDs returns the entity ids in insertion order.
func (g *Graph) EntityIDs() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// BaseRelevance averages the static relevance weights over the given terms.
// Terms not present in the graph contribute zero weight but still count in
// the denominator. An empty term list yields exactly 0.
func (g *Graph) BaseRelevance(terms []string) float64 {
	if len(terms) == 0 {
		return 0.0
	}

	total := 0.0
	for _, term := range terms {
		if e, ok := g.entities[term]; ok {
			total += e.Relevance
		}
	}
	return total / float64(len(terms))
}
