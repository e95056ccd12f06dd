// Package models defines the data structures shared across the API.
//
// Models are plain structs: `json` tags control API serialization, `db`
// tags map columns for sqlx. The database package owns persistence; the
// strengths package owns the extraction result types — a report row here
// stores the parsed themes as a JSONB blob rather than re-declaring them.
package models

import (
	"encoding/json"
	"time"
)

// ReportStatus represents the processing state of an uploaded report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// StrengthsReport is a stored CliftonStrengths report extraction.
// Themes holds the parser's ordered ParsedTheme list as JSONB; Validation
// carries the validator's {valid, errors, warnings} output so the admin
// UI can surface review prompts.
type StrengthsReport struct {
	ID              string          `json:"id" db:"id"`
	MemberID        *string         `json:"member_id,omitempty" db:"member_id"`
	Filename        string          `json:"filename" db:"filename"`           // stored object key (uuid.pdf)
	OriginalName    string          `json:"original_name" db:"original_name"` // name of the uploaded file
	ParticipantName string          `json:"participant_name,omitempty" db:"participant_name"`
	ReportType      string          `json:"report_type" db:"report_type"` // TOP_5 / TOP_10 / ALL_34
	Confidence      float64         `json:"confidence" db:"confidence"`
	ThemeCount      int             `json:"theme_count" db:"theme_count"`
	Themes          json.RawMessage `json:"themes" db:"themes"`
	Validation      json.RawMessage `json:"validation,omitempty" db:"validation"`
	PageCount       int             `json:"page_count" db:"page_count"`
	WordCount       int             `json:"word_count" db:"word_count"`
	Status          ReportStatus    `json:"status" db:"status"`
	ErrorMessage    string          `json:"error_message,omitempty" db:"error_message"`
	BatchID         *string         `json:"batch_id,omitempty" db:"batch_id"`
	APIKeyID        *string         `json:"api_key_id,omitempty" db:"api_key_id"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Member is a team member with their current strengths profile. A member's
// profile is refreshed whenever a report parses with a matching
// participant name — the upload flow deduplicates against this table.
type Member struct {
	ID        string          `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Email     *string         `json:"email,omitempty" db:"email"`
	AvatarKey *string         `json:"avatar_key,omitempty" db:"avatar_key"` // object-storage key
	ReportID  *string         `json:"report_id,omitempty" db:"report_id"`   // latest parsed report
	Themes    json.RawMessage `json:"themes,omitempty" db:"themes"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// Batch groups the reports of one multi-file upload so aggregate progress
// can be tracked without querying every row. Counts are denormalized and
// updated as each report completes or fails.
type Batch struct {
	ID             string       `json:"id" db:"id"`
	Status         ReportStatus `json:"status" db:"status"`
	TotalCount     int          `json:"total_count" db:"total_count"`
	CompletedCount int          `json:"completed_count" db:"completed_count"`
	FailedCount    int          `json:"failed_count" db:"failed_count"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

// User is an authenticated dashboard account.
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never serialized
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// APIKey authenticates machine clients. Only the SHA-256 hash is stored.
type APIKey struct {
	ID         string     `json:"id" db:"id"`
	KeyHash    string     `json:"-" db:"key_hash"`
	KeyPrefix  string     `json:"key_prefix" db:"key_prefix"` // first chars, for identification
	Name       string     `json:"name" db:"name"`
	Active     bool       `json:"active" db:"active"`
	RateLimit  int        `json:"rate_limit" db:"rate_limit"` // requests per hour
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" db:"last_used_at"`
}

// Webhook is a registered event-notification endpoint.
type Webhook struct {
	ID        string    `json:"id" db:"id"`
	APIKeyID  *string   `json:"api_key_id,omitempty" db:"api_key_id"`
	URL       string    `json:"url" db:"url"`
	Events    []string  `json:"events" db:"-"` // scanned via pq.Array in the database layer
	Secret    string    `json:"-" db:"secret"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// WebhookDelivery records one delivery attempt for auditability.
type WebhookDelivery struct {
	ID         string    `json:"id" db:"id"`
	WebhookID  string    `json:"webhook_id" db:"webhook_id"`
	Event      string    `json:"event" db:"event"`
	StatusCode int       `json:"status_code" db:"status_code"`
	Success    bool      `json:"success" db:"success"`
	Attempts   int       `json:"attempts" db:"attempts"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// WebhookPayload is the JSON body sent to webhook endpoints.
type WebhookPayload struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// --- Request/Response DTOs ---

// ParseTextRequest is the JSON body for POST /api/v1/reports/parse-text,
// the entry point that skips PDF decoding. ParticipantName overrides
// header detection; used by the manual-correction workflow.
type ParseTextRequest struct {
	Text            string `json:"text" binding:"required"`
	ParticipantName string `json:"participant_name,omitempty"`
	IncludeRawText  bool   `json:"include_raw_text,omitempty"`
}

// CreateMemberRequest is the JSON body for POST /api/v1/members.
type CreateMemberRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email,omitempty"`
}

// UpdateMemberRequest is the JSON body for PATCH /api/v1/members/:id.
type UpdateMemberRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// TeamInsightRequest is the JSON body for POST /api/v1/coach/team-insight.
type TeamInsightRequest struct {
	MemberIDs []string `json:"member_ids" binding:"required,min=1,max=20"`
	Model     string   `json:"model,omitempty"`
	Focus     string   `json:"focus,omitempty"` // "collaboration", "conflict", "growth"
}

// RegisterRequest is the JSON body for POST /api/v1/auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

// LoginRequest is the JSON body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse returns a JWT plus the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateAPIKeyRequest is the JSON body for POST /api/v1/keys.
type CreateAPIKeyRequest struct {
	Name      string `json:"name" binding:"required"`
	RateLimit int    `json:"rate_limit,omitempty"` // 0 = use default
}

// CreateAPIKeyResponse includes the raw key — shown only once at creation.
type CreateAPIKeyResponse struct {
	APIKey
	RawKey string `json:"raw_key"`
}

// CreateWebhookRequest is the JSON body for POST /api/v1/webhooks.
type CreateWebhookRequest struct {
	URL    string   `json:"url" binding:"required,url"`
	Events []string `json:"events" binding:"required,min=1"`
}

// ReportListParams holds query parameters for listing reports.
type ReportListParams struct {
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Status     string `form:"status"`
	ReportType string `form:"report_type"`
	Search     string `form:"search"` // participant name / original filename
	SortBy     string `form:"sort_by"`
	SortDir    string `form:"sort_dir"`
	APIKeyID   *string
}

// MemberListParams holds query parameters for listing members.
type MemberListParams struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
	SortBy  string `form:"sort_by"`
	SortDir string `form:"sort_dir"`
}

// PaginatedResponse wraps a list response with pagination metadata.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse is the standard error format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Workers  int    `json:"workers"`
}
