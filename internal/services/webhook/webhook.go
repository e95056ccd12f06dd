// Package webhook handles sending event notifications for async report
// processing (TP-41). Events: report.parsed, report.failed.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/TeamPulse-Labs/teampulse-api/internal/database"
	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
)

// Event names sent to registered webhooks.
const (
	EventReportParsed = "report.parsed"
	EventReportFailed = "report.failed"
)

// Service handles webhook notification delivery.
type Service struct {
	db         *database.DB
	client     *http.Client
	shutdownCh chan struct{} // Signals pending deliveries to stop
}

// New creates a new webhook service.
func New(db *database.DB) *Service {
	return &Service{
		db: db,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		shutdownCh: make(chan struct{}),
	}
}

// Shutdown signals all pending webhook deliveries to stop.
// Call this during graceful server shutdown.
func (s *Service) Shutdown() {
	close(s.shutdownCh)
}

// GenerateSecret creates a random HMAC secret for a webhook.
func GenerateSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// SignPayload creates an HMAC-SHA256 signature for a payload.
func SignPayload(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// NotifyEvent sends webhook notifications for an event to every
// subscribed endpoint. Delivery happens asynchronously with retries.
func (s *Service) NotifyEvent(ctx context.Context, event string, data interface{}) {
	webhooks, err := s.db.GetActiveWebhooksForEvent(ctx, event)
	if err != nil {
		log.Printf("⚠️  Failed to get webhooks for event %s: %v", event, err)
		return
	}

	if len(webhooks) == 0 {
		return
	}

	payload := models.WebhookPayload{
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("⚠️  Failed to marshal webhook payload: %v", err)
		return
	}

	for _, wh := range webhooks {
		// Fire and forget — each delivery runs in its own goroutine
		go s.deliverWithRetry(wh, event, payloadJSON)
	}
}

// deliverWithRetry attempts to deliver a webhook with backoff.
// Retries: 3 extra attempts with delays of 1s, 5s, 30s. A delivery
// record is written once the outcome is known.
func (s *Service) deliverWithRetry(wh models.Webhook, event string, payloadJSON []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	retryDelays := []time.Duration{0, 1 * time.Second, 5 * time.Second, 30 * time.Second}

	var lastStatus int
	attempts := 0

	for attempt := 0; attempt < len(retryDelays); attempt++ {
		if attempt > 0 {
			select {
			case <-s.shutdownCh:
				log.Printf("⚠️  Webhook delivery aborted due to shutdown: %s → %s", event, wh.URL)
				s.recordDelivery(wh.ID, event, lastStatus, false, attempts)
				return
			case <-ctx.Done():
				log.Printf("⚠️  Webhook delivery timed out: %s → %s", event, wh.URL)
				s.recordDelivery(wh.ID, event, lastStatus, false, attempts)
				return
			case <-time.After(retryDelays[attempt]):
			}
		}

		attempts = attempt + 1
		statusCode, err := s.deliver(ctx, wh, payloadJSON)
		lastStatus = statusCode

		if err == nil && statusCode >= 200 && statusCode < 300 {
			log.Printf("✅ Webhook delivered: %s → %s (attempt %d)", event, wh.URL, attempts)
			s.recordDelivery(wh.ID, event, statusCode, true, attempts)
			return
		}

		if err != nil {
			log.Printf("⚠️  Webhook delivery failed (attempt %d/%d): %s → %s: %v",
				attempts, len(retryDelays), event, wh.URL, err)
		} else {
			log.Printf("⚠️  Webhook delivery failed (attempt %d/%d): %s → %s: HTTP %d",
				attempts, len(retryDelays), event, wh.URL, statusCode)
		}
	}

	log.Printf("❌ Webhook delivery failed permanently: %s → %s", event, wh.URL)
	s.recordDelivery(wh.ID, event, lastStatus, false, attempts)
}

// recordDelivery persists the final delivery outcome for auditability.
func (s *Service) recordDelivery(webhookID, event string, statusCode int, success bool, attempts int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	delivery := &models.WebhookDelivery{
		WebhookID:  webhookID,
		Event:      event,
		StatusCode: statusCode,
		Success:    success,
		Attempts:   attempts,
	}
	if err := s.db.CreateWebhookDelivery(ctx, delivery); err != nil {
		log.Printf("⚠️  Failed to record webhook delivery: %v", err)
	}
}

// deliver sends a single webhook HTTP request with context support.
func (s *Service) deliver(ctx context.Context, wh models.Webhook, payloadJSON []byte) (int, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", wh.URL, bytes.NewReader(payloadJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "TeamPulseAPI-Webhook/1.0")

	if wh.Secret != "" {
		signature := SignPayload(payloadJSON, wh.Secret)
		req.Header.Set("X-Webhook-Signature", signature)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
