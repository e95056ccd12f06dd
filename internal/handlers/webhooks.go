// webhooks.go handles webhook registration endpoints (TP-41).
//
// POST   /api/v1/webhooks                — Register a webhook
// GET    /api/v1/webhooks                — List webhooks
// DELETE /api/v1/webhooks/:id            — Remove a webhook
// GET    /api/v1/webhooks/:id/deliveries — Recent delivery attempts
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TeamPulse-Labs/teampulse-api/internal/middleware"
	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
	"github.com/TeamPulse-Labs/teampulse-api/internal/services/webhook"
)

// validEvents lists the event names a webhook may subscribe to.
var validEvents = map[string]bool{
	webhook.EventReportParsed: true,
	webhook.EventReportFailed: true,
}

// CreateWebhook registers a new webhook endpoint.
// POST /api/v1/webhooks
//
// The generated HMAC secret is returned once; deliveries carry an
// X-Webhook-Signature header signed with it.
func (h *Handler) CreateWebhook(c *gin.Context) {
	var req models.CreateWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "url and at least one event are required",
			Code:    http.StatusBadRequest,
		})
		return
	}

	for _, ev := range req.Events {
		if !validEvents[ev] {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "invalid_event",
				Message: "Unknown event '" + ev + "'. Valid events: report.parsed, report.failed",
				Code:    http.StatusBadRequest,
			})
			return
		}
	}

	secret, err := webhook.GenerateSecret()
	if err != nil {
		log.Printf("❌ Failed to generate webhook secret: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "generation_error",
			Message: "Failed to generate webhook secret",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	var apiKeyID *string
	if apiKey := middleware.GetAPIKey(c); apiKey != nil {
		apiKeyID = &apiKey.ID
	}

	wh := &models.Webhook{
		APIKeyID: apiKeyID,
		URL:      req.URL,
		Events:   req.Events,
		Secret:   secret,
		Active:   true,
	}

	if err := h.DB.CreateWebhook(c.Request.Context(), wh); err != nil {
		log.Printf("❌ Failed to create webhook: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to create webhook",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	// The secret is only shown at creation time.
	c.JSON(http.StatusCreated, gin.H{
		"webhook": wh,
		"secret":  secret,
	})
}

// ListWebhooks returns all registered webhooks.
// GET /api/v1/webhooks
func (h *Handler) ListWebhooks(c *gin.Context) {
	webhooks, err := h.DB.ListWebhooks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list webhooks",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if webhooks == nil {
		webhooks = []models.Webhook{}
	}

	c.JSON(http.StatusOK, webhooks)
}

// DeleteWebhook removes a webhook.
// DELETE /api/v1/webhooks/:id
func (h *Handler) DeleteWebhook(c *gin.Context) {
	id := c.Param("id")

	if err := h.DB.DeleteWebhook(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Webhook not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook deleted"})
}

// ListWebhookDeliveries returns recent delivery attempts for a webhook.
// GET /api/v1/webhooks/:id/deliveries?limit=20
func (h *Handler) ListWebhookDeliveries(c *gin.Context) {
	id := c.Param("id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if _, err := h.DB.GetWebhook(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "Webhook not found",
			Code:    http.StatusNotFound,
		})
		return
	}

	deliveries, err := h.DB.ListWebhookDeliveries(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "database_error",
			Message: "Failed to list deliveries",
			Code:    http.StatusInternalServerError,
		})
		return
	}

	if deliveries == nil {
		deliveries = []models.WebhookDelivery{}
	}

	c.JSON(http.StatusOK, deliveries)
}
