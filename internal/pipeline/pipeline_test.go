package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/knowledge"
	"github.com/blockvibe/ranker/internal/logging"
	"github.com/blockvibe/ranker/internal/metrics"
	"github.com/blockvibe/ranker/internal/scoring"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	logger := logging.Nop()
	graph := knowledge.NewGraph()
	extractor := knowledge.NewSubstringExtractor(graph, knowledge.DefaultVocabulary)

	quality := scoring.NewQualityScorer(logger)
	ranker := scoring.NewRanker(
		logger,
		graph,
		extractor,
		scoring.NewPersonalizationScorer(logger),
		scoring.NewEngagementScorer(logger),
		scoring.NewRecencyScorer(logger),
	)
	enricher := NewEnricher(logger, quality, "ranker-test")
	m := metrics.New(prometheus.NewRegistry())

	return New(logger, enricher, ranker, m, "ranker-test")
}

func TestPipeline_Handle_UnknownAction(t *testing.T) {
	pipe := newTestPipeline(t)

	response := pipe.Handle(context.Background(), &domain.PipelineRequest{
		Action: "summarize_items",
		Items:  []*domain.ContentItem{{ID: "x", Title: "whatever"}},
	})

	require.NotNil(t, response)
	assert.False(t, response.Success)
	assert.Empty(t, response.Items)
	assert.Equal(t, "ranker-test", response.ProducerName)
}

func TestPipeline_Handle_EnrichAction(t *testing.T) {
	pipe := newTestPipeline(t)

	items := []*domain.ContentItem{
		{
			ID:      "e1",
			Title:   "Bitcoin climbs on steady spot demand",
			Summary: "The market saw steady inflows through the week and on into the weekend.",
			Source:  "CoinDesk",
		},
	}

	response := pipe.Handle(context.Background(), &domain.PipelineRequest{
		Action: domain.ActionEnrich,
		Items:  items,
	})

	require.True(t, response.Success)
	require.Len(t, response.Items, 1)

	enriched := response.Items[0]
	assert.False(t, enriched.Scored)
	assert.Equal(t, "ranker-test", enriched.ProcessedBy)
	assert.NotEmpty(t, enriched.ProcessedAt)
	assert.Equal(t, 0.9, enriched.SourceCredibility)
	assert.NotEmpty(t, enriched.Categories)
	assert.GreaterOrEqual(t, response.ElapsedSeconds, 0.0)
}

func TestPipeline_Handle_RankAction(t *testing.T) {
	pipe := newTestPipeline(t)

	response := pipe.Handle(context.Background(), &domain.PipelineRequest{
		Action: domain.ActionRank,
		Items: []*domain.ContentItem{
			{ID: "r1", Title: "Bitcoin adoption accelerates across exchanges everywhere"},
			{ID: "r2", Title: "city council reviews zoning decision"},
		},
	})

	require.True(t, response.Success)
	require.Len(t, response.Items, 2)
	assert.Equal(t, "r1", response.Items[0].ID)
	assert.True(t, response.Items[0].Scored)
	assert.GreaterOrEqual(t, response.Items[0].FinalScore, response.Items[1].FinalScore)
}

func TestPipeline_Run_MeanRelevanceAndLimit(t *testing.T) {
	pipe := newTestPipeline(t)

	items := []*domain.ContentItem{
		{ID: "a", Title: "Bitcoin adoption accelerates across exchanges everywhere"},
		{ID: "b", Title: "ethereum staking yields hold steady"},
		{ID: "c", Title: "city council reviews zoning decision"},
	}

	result := pipe.Run(context.Background(), items, nil, 2)

	require.NotNil(t, result)
	assert.Len(t, result.Items, 2)
	assert.Greater(t, result.MeanRelevance, 0.0)
	assert.WithinDuration(t, time.Now().UTC(), result.GeneratedAt, time.Minute)
}

func TestPipeline_Run_PartialFailureKeepsBatch(t *testing.T) {
	pipe := newTestPipeline(t)

	items := []*domain.ContentItem{
		{
			ID:          "bad-ts",
			Title:       "Bitcoin climbs back above resistance levels",
			PublishedAt: "not-a-date",
		},
		{
			ID:          "good-ts",
			Title:       "ethereum staking yields hold steady",
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}

	result := pipe.Run(context.Background(), items, nil, 0)

	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.True(t, item.Scored, "item %s should still score", item.ID)
		if item.ID == "bad-ts" {
			assert.Equal(t, 0.5, item.RecencyScore)
		}
	}
}

func TestPipeline_Run_ProfileChangesScores(t *testing.T) {
	pipe := newTestPipeline(t)
	ctx := context.Background()

	items := func() []*domain.ContentItem {
		return []*domain.ContentItem{
			{ID: "btc", Title: "Bitcoin climbs back above resistance levels", Source: "CoinDesk"},
		}
	}

	profile := &domain.UserProfile{
		UserID:    "u1",
		Interests: []string{"bitcoin"},
		Preferences: domain.Preferences{
			PreferredSources: []string{"CoinDesk"},
		},
	}

	baseline := pipe.Run(ctx, items(), nil, 0)
	personalized := pipe.Run(ctx, items(), profile, 0)

	require.Len(t, baseline.Items, 1)
	require.Len(t, personalized.Items, 1)
	assert.Greater(t, personalized.Items[0].FinalScore, baseline.Items[0].FinalScore)
	assert.Contains(t, personalized.Items[0].Factors, "matches_interest:bitcoin")
	assert.Contains(t, personalized.Items[0].Factors, "preferred_source")
}
