// Package router sets up all HTTP routes for the API.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/TeamPulse-Labs/teampulse-api/internal/database"
	"github.com/TeamPulse-Labs/teampulse-api/internal/handlers"
	"github.com/TeamPulse-Labs/teampulse-api/internal/middleware"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/coach"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/storage"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/strengths"
	webhookservice "github.com/TeamPulse-Labs/teampulse-api/internal/services/webhook"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/worker"
)

// Setup creates and configures the Gin router with all routes.
func Setup(db *database.DB, wp *worker.Pool, parser *strengths.Parser, store storage.Storage, coachSvc *coach.Service, ws *webhookservice.Service, jwtSecret, adminAPIKey string, includeRawText bool, defaultRateLimit int, allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORS(allowedOrigins))

	h := handlers.NewHandler(db, wp, parser, store, coachSvc, ws, jwtSecret, adminAPIKey, includeRawText, defaultRateLimit)
	rateLimiter := middleware.NewRateLimiter()

	// --- Public Routes (no auth required) ---
	r.GET("/api/v1/health", h.HealthCheck)
	r.POST("/api/v1/keys", h.CreateAPIKey) // guarded by X-Admin-Key when configured

	// --- Auth Routes (TP-21) — public ---
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)

	// --- JWT-protected routes (TP-21) ---
	jwtProtected := r.Group("/api/v1")
	jwtProtected.Use(middleware.JWTAuth(db, jwtSecret))
	{
		jwtProtected.GET("/auth/me", h.GetMe)
		jwtProtected.POST("/auth/refresh", h.RefreshToken)
	}

	// --- Protected Routes (API key OR JWT) ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.DualAuth(db, jwtSecret))
	protected.Use(rateLimiter.RateLimit())
	{
		// Report endpoints (TP-31)
		protected.POST("/reports", h.UploadReport)
		protected.POST("/reports/parse-text", h.ParseText)
		protected.GET("/reports", h.ListReports)
		protected.GET("/reports/:id", h.GetReport)
		protected.GET("/reports/:id/export", h.ExportReport)
		protected.DELETE("/reports/:id", h.DeleteReport)

		// Batch processing (TP-35)
		protected.POST("/batches", h.CreateBatch)
		protected.GET("/batches/:id", h.GetBatch)

		// Team members (TP-33)
		protected.POST("/members", h.CreateMember)
		protected.GET("/members", h.ListMembers)
		protected.GET("/members/:id", h.GetMember)
		protected.PATCH("/members/:id", h.UpdateMember)
		protected.DELETE("/members/:id", h.DeleteMember)
		protected.POST("/members/:id/avatar", h.UploadAvatar)

		// AI coach (TP-44)
		protected.POST("/coach/team-insight", h.TeamInsight)

		// API key management
		protected.GET("/keys", h.ListAPIKeys)
		protected.DELETE("/keys/:id", h.RevokeAPIKey)

		// Webhook management (TP-41)
		protected.POST("/webhooks", h.CreateWebhook)
		protected.GET("/webhooks", h.ListWebhooks)
		protected.GET("/webhooks/:id/deliveries", h.ListWebhookDeliveries)
		protected.DELETE("/webhooks/:id", h.DeleteWebhook)
	}

	return r
}
