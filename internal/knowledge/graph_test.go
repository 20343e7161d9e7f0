package knowledge

import (
	"math"
	"testing"
)

func TestGraph_Lookup(t *testing.T) {
	graph := NewGraph()

	entity, ok := graph.Lookup("ethereum")
	if !ok {
		t.Fatal("expected ethereum to be present")
	}
	if entity.Type != "platform" {
		t.Errorf("expected type platform, got %s", entity.Type)
	}
	if entity.Relevance != 0.95 {
		t.Errorf("expected relevance 0.95, got %f", entity.Relevance)
	}

	if _, ok := graph.Lookup("dogecoin"); ok {
		t.Error("expected unknown entity to report ok=false")
	}
}

func TestGraph_Related(t *testing.T) {
	graph := NewGraph()

	related := graph.Related("bitcoin")
	if len(related) != 4 {
		t.Fatalf("expected 4 related terms, got %d", len(related))
	}
	if related[0] != "blockchain" {
		t.Errorf("expected first related term blockchain, got %s", related[0])
	}

	// Mutating the returned slice must not touch the graph.
	related[0] = "mutated"
	if graph.Related("bitcoin")[0] != "blockchain" {
		t.Error("Related returned a shared slice")
	}

	if got := graph.Related("unknown"); len(got) != 0 {
		t.Errorf("expected empty related list for unknown entity, got %v", got)
	}
}

func TestGraph_BaseRelevance(t *testing.T) {
	graph := NewGraph()

	tests := []struct {
		name     string
		terms    []string
		expected float64
	}{
		{"empty", nil, 0},
		{"single entity", []string{"bitcoin"}, 0.9},
		{"two entities", []string{"bitcoin", "ethereum"}, (0.9 + 0.95) / 2},
		{"unknown term dilutes", []string{"bitcoin", "crypto"}, 0.9 / 2},
		{"all unknown", []string{"crypto", "mining"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.BaseRelevance(tt.terms)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, got)
			}
		})
	}
}
