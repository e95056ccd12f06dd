// Package database handles PostgreSQL connections and queries.
//
// We use sqlx on top of database/sql: raw SQL with struct scanning via
// the `db` tags on the models. One *DB is created at startup and shared —
// the built-in pool is safe for concurrent use.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver — the underscore import runs its init()

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
)

// DB wraps the sqlx connection with application-specific query methods.
type DB struct {
	*sqlx.DB
}

// New creates a database connection with pooling configured for
// serverless Postgres (aggressive idle-connection recycling).
func New(databaseURL string) (*DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(2 * time.Minute)
	db.SetConnMaxIdleTime(30 * time.Second)

	return &DB{db}, nil
}

// HealthCheck verifies the database connection is alive.
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}

// --- Report Operations ---

// CreateReport inserts a new strengths report record.
func (db *DB) CreateReport(ctx context.Context, r *models.StrengthsReport) error {
	query := `
		INSERT INTO strengths_reports
			(member_id, filename, original_name, participant_name, report_type, confidence,
			 theme_count, themes, validation, page_count, word_count, status, error_message,
			 batch_id, api_key_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`

	return db.QueryRowContext(ctx, query,
		r.MemberID, r.Filename, r.OriginalName, r.ParticipantName, r.ReportType,
		r.Confidence, r.ThemeCount, normalizeJSON(r.Themes), normalizeJSON(r.Validation),
		r.PageCount, r.WordCount, r.Status, r.ErrorMessage, r.BatchID, r.APIKeyID,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
}

// GetReport retrieves a single report by ID.
func (db *DB) GetReport(ctx context.Context, id string) (*models.StrengthsReport, error) {
	var r models.StrengthsReport
	err := db.GetContext(ctx, &r, `SELECT * FROM strengths_reports WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("report not found: %w", err)
	}
	return &r, nil
}

// UpdateReport saves a report's extraction results after processing.
func (db *DB) UpdateReport(ctx context.Context, r *models.StrengthsReport) error {
	query := `
		UPDATE strengths_reports
		SET member_id = $2, participant_name = $3, report_type = $4, confidence = $5,
			theme_count = $6, themes = $7, validation = $8, page_count = $9,
			word_count = $10, status = $11, error_message = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return db.QueryRowContext(ctx, query,
		r.ID, r.MemberID, r.ParticipantName, r.ReportType, r.Confidence,
		r.ThemeCount, normalizeJSON(r.Themes), normalizeJSON(r.Validation),
		r.PageCount, r.WordCount, r.Status, r.ErrorMessage,
	).Scan(&r.UpdatedAt)
}

// ListReports returns a paginated, filtered page of reports plus the total count.
func (db *DB) ListReports(ctx context.Context, params models.ReportListParams) ([]models.StrengthsReport, int, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}
	if params.SortBy == "" {
		params.SortBy = "created_at"
	}
	if params.SortDir == "" {
		params.SortDir = "desc"
	}

	var conditions []string
	var args []interface{}
	argNum := 1

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argNum))
		args = append(args, params.Status)
		argNum++
	}

	if params.ReportType != "" {
		conditions = append(conditions, fmt.Sprintf("report_type = $%d", argNum))
		args = append(args, params.ReportType)
		argNum++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(participant_name ILIKE $%d OR original_name ILIKE $%d)", argNum, argNum))
		args = append(args, "%"+params.Search+"%")
		argNum++
	}

	if params.APIKeyID != nil {
		conditions = append(conditions, fmt.Sprintf("api_key_id = $%d", argNum))
		args = append(args, *params.APIKeyID)
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Whitelist sort columns to prevent SQL injection.
	validSortColumns := map[string]bool{
		"created_at": true, "participant_name": true, "confidence": true, "theme_count": true,
	}
	if !validSortColumns[params.SortBy] {
		params.SortBy = "created_at"
	}
	if params.SortDir != "asc" && params.SortDir != "desc" {
		params.SortDir = "desc"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM strengths_reports %s", whereClause)
	var total int
	if err := db.GetContext(ctx, &total, countQuery, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			total = 0
		} else {
			return nil, 0, fmt.Errorf("count query failed: %w", err)
		}
	}

	offset := (params.Page - 1) * params.PerPage
	selectQuery := fmt.Sprintf(
		"SELECT * FROM strengths_reports %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, params.SortBy, params.SortDir, argNum, argNum+1,
	)
	args = append(args, params.PerPage, offset)

	var reports []models.StrengthsReport
	if err := db.SelectContext(ctx, &reports, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list query failed: %w", err)
	}

	return reports, total, nil
}

// GetReportByParticipant returns the most recent completed report for a
// participant name, used for upload deduplication.
func (db *DB) GetReportByParticipant(ctx context.Context, name string) (*models.StrengthsReport, error) {
	var r models.StrengthsReport
	err := db.GetContext(ctx, &r,
		`SELECT * FROM strengths_reports
		 WHERE participant_name ILIKE $1 AND status = 'completed'
		 ORDER BY created_at DESC LIMIT 1`, name)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReport removes a report by ID.
func (db *DB) DeleteReport(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM strengths_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("report not found")
	}
	return nil
}

// --- API Key Operations ---

// CreateAPIKey inserts a new API key record.
func (db *DB) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (key_hash, key_prefix, name, active, rate_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return db.QueryRowContext(ctx, query,
		key.KeyHash, key.KeyPrefix, key.Name, key.Active, key.RateLimit,
	).Scan(&key.ID, &key.CreatedAt)
}

// GetAPIKeyByHash retrieves an active API key by its hash.
func (db *DB) GetAPIKeyByHash(ctx context.Context, hash string) (*models.APIKey, error) {
	var key models.APIKey
	err := db.GetContext(ctx, &key,
		`SELECT * FROM api_keys WHERE key_hash = $1 AND active = true`, hash)
	if err != nil {
		return nil, fmt.Errorf("invalid API key: %w", err)
	}
	return &key, nil
}

// UpdateAPIKeyLastUsed bumps the last_used_at timestamp.
func (db *DB) UpdateAPIKeyLastUsed(ctx context.Context, id string) error {
	_, err := db.ExecContext(ctx, `UPDATE api_keys SET last_used_at = NOW() WHERE id = $1`, id)
	return err
}

// ListAPIKeys returns all API keys, active and inactive.
func (db *DB) ListAPIKeys(ctx context.Context) ([]models.APIKey, error) {
	var keys []models.APIKey
	err := db.SelectContext(ctx, &keys, `SELECT * FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list API keys: %w", err)
	}
	return keys, nil
}

// RevokeAPIKey deactivates an API key.
func (db *DB) RevokeAPIKey(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `UPDATE api_keys SET active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to revoke key: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("API key not found")
	}
	return nil
}

// normalizeJSON substitutes an empty JSON value for nil so JSONB NOT NULL
// columns never receive a Go nil.
func normalizeJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
