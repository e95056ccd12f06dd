// members.go handles team-member database operations (TP-33).
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/TeamPulse-Labs/teampulse-api/internal/models"
)

// CreateMember inserts a new team member record.
func (db *DB) CreateMember(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (name, email, avatar_key, report_id, themes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	return db.QueryRowContext(ctx, query,
		m.Name, m.Email, m.AvatarKey, m.ReportID, normalizeJSON(m.Themes),
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

// GetMember retrieves a single member by ID.
func (db *DB) GetMember(ctx context.Context, id string) (*models.Member, error) {
	var m models.Member
	err := db.GetContext(ctx, &m, `SELECT * FROM members WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("member not found: %w", err)
	}
	return &m, nil
}

// GetMemberByName finds a member by exact (case-insensitive) name.
// Used to deduplicate report uploads against existing members.
func (db *DB) GetMemberByName(ctx context.Context, name string) (*models.Member, error) {
	var m models.Member
	err := db.GetContext(ctx, &m, `SELECT * FROM members WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMember updates a member's editable fields.
func (db *DB) UpdateMember(ctx context.Context, m *models.Member) error {
	query := `
		UPDATE members
		SET name = $2, email = $3, avatar_key = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return db.QueryRowContext(ctx, query,
		m.ID, m.Name, m.Email, m.AvatarKey,
	).Scan(&m.UpdatedAt)
}

// UpdateMemberStrengths replaces a member's strengths profile with the
// themes from a newly parsed report.
func (db *DB) UpdateMemberStrengths(ctx context.Context, memberID, reportID string, themes []byte) error {
	_, err := db.ExecContext(ctx,
		`UPDATE members SET report_id = $2, themes = $3, updated_at = NOW() WHERE id = $1`,
		memberID, reportID, normalizeJSON(themes))
	if err != nil {
		return fmt.Errorf("failed to update member strengths: %w", err)
	}
	return nil
}

// ListMembers returns a paginated, filtered page of members plus the total count.
func (db *DB) ListMembers(ctx context.Context, params models.MemberListParams) ([]models.Member, int, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}

	var conditions []string
	var args []interface{}
	argNum := 1

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", argNum, argNum))
		args = append(args, "%"+params.Search+"%")
		argNum++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	validSortColumns := map[string]bool{"created_at": true, "name": true, "updated_at": true}
	if !validSortColumns[params.SortBy] {
		params.SortBy = "name"
	}
	if params.SortDir != "asc" && params.SortDir != "desc" {
		params.SortDir = "asc"
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM members %s", whereClause)
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
		"SELECT * FROM members %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, params.SortBy, params.SortDir, argNum, argNum+1,
	)
	args = append(args, params.PerPage, offset)

	var members []models.Member
	if err := db.SelectContext(ctx, &members, selectQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list query failed: %w", err)
	}

	return members, total, nil
}

// DeleteMember removes a member by ID.
func (db *DB) DeleteMember(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("member not found")
	}
	return nil
}
