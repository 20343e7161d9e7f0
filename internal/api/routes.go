package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures the API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, registry *prometheus.Registry) {
	v1 := router.Group("/api/v1")

	v1.POST("/rank", handler.Rank)           // POST /api/v1/rank
	v1.POST("/enrich", handler.Enrich)       // POST /api/v1/enrich
	v1.GET("/feed", handler.Feed)            // GET /api/v1/feed
	v1.POST("/sentiment", handler.Sentiment) // POST /api/v1/sentiment

	profiles := v1.Group("/profiles")
	profiles.GET("/:user_id", handler.GetProfile)  // GET /api/v1/profiles/:user_id
	profiles.PUT("/:user_id", handler.SaveProfile) // PUT /api/v1/profiles/:user_id

	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
