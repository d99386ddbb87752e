// Package attendees provides the PostgreSQL-backed RSVP register storage.
package attendees

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/dbx"
	"github.com/dmitrijs2005/letshang/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectWithUser = `
	SELECT a.id, a.hang_id, a.user_id, a.status, a.created_at,
		u.id, COALESCE(u.name, ''), COALESCE(u.avatar_url, ''), u.created_at, u.updated_at
	FROM attendees a
	JOIN users u ON u.id = a.user_id
`

func (r *PostgresRepository) Upsert(ctx context.Context, a *models.Attendee) error {
	query := `
		INSERT INTO attendees (id, hang_id, user_id, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (hang_id, user_id)
		DO UPDATE SET status = EXCLUDED.status
		RETURNING id, status, created_at
	`
	err := r.db.QueryRowContext(ctx, query, a.ID, a.HangID, a.UserID, a.Status).
		Scan(&a.ID, &a.Status, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByHang(ctx context.Context, hangID string) ([]models.AttendeeView, error) {
	query := selectWithUser + `
	WHERE a.hang_id = $1
	ORDER BY a.created_at, a.id
	`
	return r.list(ctx, query, hangID)
}

func (r *PostgresRepository) ListByHangStatus(ctx context.Context, status models.HangStatus) ([]models.AttendeeView, error) {
	query := selectWithUser + `
	JOIN hangs h ON h.id = a.hang_id
	WHERE h.status = $1
	ORDER BY a.created_at, a.id
	`
	return r.list(ctx, query, status)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.AttendeeView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select attendees: %w", err)
	}
	defer rows.Close()

	result := []models.AttendeeView{}
	for rows.Next() {
		var v models.AttendeeView
		if err := rows.Scan(
			&v.ID, &v.HangID, &v.UserID, &v.Status, &v.Attendee.CreatedAt,
			&v.User.ID, &v.User.Name, &v.User.AvatarURL, &v.User.CreatedAt, &v.User.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
