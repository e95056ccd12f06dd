// batches.go handles batch-upload database operations (TP-35).
package database

import (
	"context"
	"fmt"

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
)

// CreateBatch inserts a new batch record.
func (db *DB) CreateBatch(ctx context.Context, b *models.Batch) error {
	query := `
		INSERT INTO batches (status, total_count)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	return db.QueryRowContext(ctx, query, b.Status, b.TotalCount).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

// GetBatch retrieves a batch by ID.
func (db *DB) GetBatch(ctx context.Context, id string) (*models.Batch, error) {
	var b models.Batch
	err := db.GetContext(ctx, &b, `SELECT * FROM batches WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("batch not found: %w", err)
	}
	return &b, nil
}

// GetBatchReports returns all reports belonging to a batch.
func (db *DB) GetBatchReports(ctx context.Context, batchID string) ([]models.StrengthsReport, error) {
	var reports []models.StrengthsReport
	err := db.SelectContext(ctx, &reports,
		`SELECT * FROM strengths_reports WHERE batch_id = $1 ORDER BY created_at ASC`, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list batch reports: %w", err)
	}
	return reports, nil
}

// UpdateBatchCounts recomputes a batch's denormalized progress counters
// from its reports' statuses, and rolls the batch status up when all
// reports are terminal. Called after each report completes or fails so
// GET /batches/:id always returns fresh progress.
func (db *DB) UpdateBatchCounts(ctx context.Context, batchID string) error {
	query := `
		UPDATE batches SET
			completed_count = (SELECT COUNT(*) FROM strengths_reports WHERE batch_id = $1 AND status = 'completed'),
			failed_count    = (SELECT COUNT(*) FROM strengths_reports WHERE batch_id = $1 AND status = 'failed'),
			status = CASE
				WHEN (SELECT COUNT(*) FROM strengths_reports WHERE batch_id = $1 AND status IN ('pending', 'processing')) = 0
				THEN CASE
					WHEN (SELECT COUNT(*) FROM strengths_reports WHERE batch_id = $1 AND status = 'failed') > 0
					THEN 'failed'::text ELSE 'completed'::text END
				ELSE 'processing'::text
			END,
			updated_at = NOW()
		WHERE id = $1`

	if _, err := db.ExecContext(ctx, query, batchID); err != nil {
		return fmt.Errorf("failed to update batch counts: %w", err)
	}
	return nil
}
