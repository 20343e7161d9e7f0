package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/blockvibe/ranker/internal/database"
	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/knowledge"
	"github.com/blockvibe/ranker/internal/logging"
	"github.com/blockvibe/ranker/internal/metrics"
	"github.com/blockvibe/ranker/internal/pipeline"
	"github.com/blockvibe/ranker/internal/scoring"
)

// stubFetcher returns a canned batch without touching the network.
type stubFetcher struct {
	items []*domain.ContentItem
}

func (s *stubFetcher) FetchAll(_ context.Context) []*domain.ContentItem {
	return s.items
}

func newTestRouter(t *testing.T, fetcher Fetcher, profiles database.ProfileStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logging.Nop()
	graph := knowledge.NewGraph()
	extractor := knowledge.NewSubstringExtractor(graph, knowledge.DefaultVocabulary)
	ranker := scoring.NewRanker(
		logger,
		graph,
		extractor,
		scoring.NewPersonalizationScorer(logger),
		scoring.NewEngagementScorer(logger),
		scoring.NewRecencyScorer(logger),
	)
	enricher := pipeline.NewEnricher(logger, scoring.NewQualityScorer(logger), "ranker-test")

	registry := prometheus.NewRegistry()
	pipe := pipeline.New(logger, enricher, ranker, metrics.New(registry), "ranker-test")

	sentiment := scoring.NewSentimentScorer(logger, knowledge.NewLexicon(), scoring.LexiconConfidenceScale)
	handler := NewHandler(pipe, fetcher, profiles, sentiment, logger, "ranker", "1.0.0", 10)

	router := gin.New()
	SetupRoutes(router, handler, registry)
	return router
}

func performJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandler_Rank(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	body := RankRequest{
		Items: []*domain.ContentItem{
			{ID: "a", Title: "Bitcoin adoption accelerates across exchanges everywhere"},
			{ID: "b", Title: "city council reviews zoning decision"},
		},
	}

	recorder := performJSON(router, http.MethodPost, "/api/v1/rank", body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var result domain.RankedResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].ID != "a" {
		t.Errorf("expected crypto item first, got %s", result.Items[0].ID)
	}
}

func TestHandler_Rank_EmptyBatchRejected(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	recorder := performJSON(router, http.MethodPost, "/api/v1/rank", map[string]any{"items": []any{}})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
}

func TestHandler_Rank_StoredProfileApplied(t *testing.T) {
	profiles := database.NewMemoryProfileStore()
	err := profiles.SaveProfile(context.Background(), &domain.UserProfile{
		UserID:    "u1",
		Interests: []string{"bitcoin"},
	})
	if err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	router := newTestRouter(t, &stubFetcher{}, profiles)

	body := RankRequest{
		Items:  []*domain.ContentItem{{ID: "a", Title: "Bitcoin climbs back above resistance"}},
		UserID: "u1",
	}

	recorder := performJSON(router, http.MethodPost, "/api/v1/rank", body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var result domain.RankedResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, factor := range result.Items[0].Factors {
		if factor == "matches_interest:bitcoin" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected interest factor from stored profile, got %v", result.Items[0].Factors)
	}
}

func TestHandler_Enrich(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	body := EnrichRequest{
		Items: []*domain.ContentItem{
			{ID: "e1", Title: "DeFi volumes rise", Summary: "Lending protocols saw inflows.", Source: "CoinDesk"},
		},
	}

	recorder := performJSON(router, http.MethodPost, "/api/v1/enrich", body)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var response domain.PipelineResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !response.Success {
		t.Error("expected success")
	}
	if len(response.Items) != 1 || response.Items[0].SourceCredibility != 0.9 {
		t.Errorf("expected enriched item, got %+v", response.Items)
	}
}

func TestHandler_Feed(t *testing.T) {
	fetcher := &stubFetcher{items: []*domain.ContentItem{
		{
			ID:          "f1",
			Title:       "Bitcoin adoption accelerates across exchanges everywhere",
			Summary:     "Institutional flows kept climbing through the week.",
			Source:      "CoinDesk",
			PublishedAt: time.Now().UTC().Format(time.RFC3339),
		},
	}}

	router := newTestRouter(t, fetcher, database.NewMemoryProfileStore())

	recorder := performJSON(router, http.MethodGet, "/api/v1/feed?limit=5", nil)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var result domain.RankedResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if !result.Items[0].Scored {
		t.Error("expected the feed item to be scored")
	}
}

func TestHandler_ProfileRoundTrip(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	profile := domain.UserProfile{
		Interests: []string{"defi"},
		Preferences: domain.Preferences{
			ReadingTimePreference: domain.ReadingShort,
		},
	}

	put := performJSON(router, http.MethodPut, "/api/v1/profiles/u9", profile)
	if put.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d", put.Code)
	}

	get := performJSON(router, http.MethodGet, "/api/v1/profiles/u9", nil)
	if get.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", get.Code)
	}

	var loaded domain.UserProfile
	if err := json.Unmarshal(get.Body.Bytes(), &loaded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loaded.UserID != "u9" || len(loaded.Interests) != 1 {
		t.Errorf("profile mangled: %+v", loaded)
	}
}

func TestHandler_ProfileNotFound(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	recorder := performJSON(router, http.MethodGet, "/api/v1/profiles/ghost", nil)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}

func TestHandler_Sentiment(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	recorder := performJSON(router, http.MethodPost, "/api/v1/sentiment",
		SentimentRequest{Text: "bullish surge continues"})

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var result scoring.Sentiment
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Score <= 0 {
		t.Errorf("expected positive sentiment, got %f", result.Score)
	}
	if result.Confidence != 1.0 {
		t.Errorf("expected saturated confidence, got %f", result.Confidence)
	}
}

func TestHandler_HealthAndReady(t *testing.T) {
	router := newTestRouter(t, &stubFetcher{}, database.NewMemoryProfileStore())

	health := performJSON(router, http.MethodGet, "/health", nil)
	if health.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", health.Code)
	}

	ready := performJSON(router, http.MethodGet, "/ready", nil)
	if ready.Code != http.StatusOK {
		t.Errorf("ready: expected 200, got %d", ready.Code)
	}
}
