package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blockvibe/ranker/internal/database"
	"github.com/blockvibe/ranker/internal/domain"
	"github.com/blockvibe/ranker/internal/pipeline"
	"github.com/blockvibe/ranker/internal/scoring"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Fetcher pulls the current item batch from the configured sources.
type Fetcher interface {
	FetchAll(ctx context.Context) []*domain.ContentItem
}

// Handler handles HTTP requests for the ranking API
type Handler struct {
	pipeline  *pipeline.Pipeline
	fetcher   Fetcher
	profiles  database.ProfileStore
	sentiment *scoring.SentimentScorer
	logger    Logger

	serviceName    string
	serviceVersion string
	resultLimit    int
}

// NewHandler creates a new API handler
func NewHandler(
	p *pipeline.Pipeline,
	fetcher Fetcher,
	profiles database.ProfileStore,
	sentiment *scoring.SentimentScorer,
	logger Logger,
	serviceName, serviceVersion string,
	resultLimit int,
) *Handler {
	return &Handler{
		pipeline:       p,
		fetcher:        fetcher,
		profiles:       profiles,
		sentiment:      sentiment,
		logger:         logger,
		serviceName:    serviceName,
		serviceVersion: serviceVersion,
		resultLimit:    resultLimit,
	}
}

// RankRequest represents a ranking request. The profile can be inlined or
// referenced by user id; an inline profile wins.
type RankRequest struct {
	Items   []*domain.ContentItem `json:"items" binding:"required,min=1"`
	UserID  string                `json:"user_id,omitempty"`
	Profile *domain.UserProfile   `json:"user_profile,omitempty"`
	Limit   int                   `json:"limit,omitempty"`
}

// EnrichRequest represents an enrichment-only request
type EnrichRequest struct {
	Items []*domain.ContentItem `json:"items" binding:"required,min=1"`
}

// Rank handles POST /api/v1/rank
func (h *Handler) Rank(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid rank request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.resolveProfile(c.Request.Context(), req.Profile, req.UserID)
	if err != nil {
		h.logger.Error("Failed to load profile", "user_id", req.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.resultLimit
	}

	h.logger.Info("Ranking items",
		"batch_size", len(req.Items),
		"user_id", req.UserID,
		"limit", limit,
	)

	result := h.pipeline.Run(c.Request.Context(), req.Items, profile, limit)

	c.JSON(http.StatusOK, result)
}

// Enrich handles POST /api/v1/enrich
func (h *Handler) Enrich(c *gin.Context) {
	var req EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid enrich request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Enriching items", "batch_size", len(req.Items))

	response := h.pipeline.Handle(c.Request.Context(), &domain.PipelineRequest{
		Action: domain.ActionEnrich,
		Items:  req.Items,
	})

	c.JSON(http.StatusOK, response)
}

// Feed handles GET /api/v1/feed: a full fetch, enrich and rank round trip.
func (h *Handler) Feed(c *gin.Context) {
	userID := c.Query("user_id")

	limit := h.resultLimit
	if limitParam := c.Query("limit"); limitParam != "" {
		if parsed, err := strconv.Atoi(limitParam); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	profile, err := h.resolveProfile(c.Request.Context(), nil, userID)
	if err != nil {
		h.logger.Error("Failed to load profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	h.logger.Info("Serving feed", "user_id", userID, "limit", limit)

	items := h.fetcher.FetchAll(c.Request.Context())
	result := h.pipeline.Run(c.Request.Context(), items, profile, limit)

	c.JSON(http.StatusOK, result)
}

// SentimentRequest represents a sentiment analysis request
type SentimentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Sentiment handles POST /api/v1/sentiment
func (h *Handler) Sentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid sentiment request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.sentiment.ScoreText(req.Text)

	c.JSON(http.StatusOK, result)
}

// GetProfile handles GET /api/v1/profiles/:user_id
func (h *Handler) GetProfile(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to get profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SaveProfile handles PUT /api/v1/profiles/:user_id
func (h *Handler) SaveProfile(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	var profile domain.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Warn("Invalid profile", "user_id", userID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile.UserID = userID
	profile.LastUpdated = time.Now().UTC()

	if err := h.profiles.SaveProfile(c.Request.Context(), &profile); err != nil {
		h.logger.Error("Failed to save profile", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	h.logger.Info("Profile saved", "user_id", userID)

	c.JSON(http.StatusOK, &profile)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.serviceName,
		"version": h.serviceVersion,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	if _, err := h.profiles.GetProfile(c.Request.Context(), "readiness-probe"); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"checks": gin.H{"profile_store": err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": gin.H{"profile_store": "ok"},
	})
}

// resolveProfile prefers an inline profile, then the store. Absent profiles
// resolve to nil, which scorers treat as baseline-only.
func (h *Handler) resolveProfile(ctx context.Context, inline *domain.UserProfile, userID string) (*domain.UserProfile, error) {
	if inline != nil {
		return inline, nil
	}
	if userID == "" {
		return nil, nil
	}
	return h.profiles.GetProfile(ctx, userID)
}
