// Package handlers contains HTTP handler functions for the API.
//
// Related handlers hang off a single Handler struct that holds shared
// dependencies, injected once at startup. Handlers stay thin: bind,
// validate, call a service or the database, shape the response.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TeamPulse-Labs/teampulse-api/internal/database"
	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/coach"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/storage"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/webhook"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/worker"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	DB       *database.DB
	Worker   *worker.Pool
	Parser   *strengths.Parser
	Store    storage.Storage // nil when object storage is not configured
	Coach    *coach.Service
	Notifier *webhook.Service

	JWTSecret        string
	AdminAPIKey      string
	IncludeRawText   bool
	DefaultRateLimit int // requests/hour for new API keys that don't specify one
}

// NewHandler creates a new handler with all dependencies.
func NewHandler(db *database.DB, wp *worker.Pool, parser *strengths.Parser, store storage.Storage, coachSvc *coach.Service, notifier *webhook.Service, jwtSecret, adminAPIKey string, includeRawText bool, defaultRateLimit int) *Handler {
	return &Handler{
		DB:               db,
		Worker:           wp,
		Parser:           parser,
		Store:            store,
		Coach:            coachSvc,
		Notifier:         notifier,
		JWTSecret:        jwtSecret,
		AdminAPIKey:      adminAPIKey,
		IncludeRawText:   includeRawText,
		DefaultRateLimit: defaultRateLimit,
	}
}

// HealthCheck returns the API health status.
// GET /api/v1/health
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	if err := h.DB.HealthCheck(c.Request.Context()); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Database: dbStatus,
		Workers:  h.Worker.WorkerCount(),
	})
}
