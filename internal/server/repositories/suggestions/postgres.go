// Package suggestions provides the PostgreSQL-backed suggestion ledger.
package suggestions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/common"
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
	SELECT s.id, s.hang_id, s.user_id, s.type, s.content, s.votes, s.created_at,
		u.id, COALESCE(u.name, ''), COALESCE(u.avatar_url, ''), u.created_at, u.updated_at
	FROM suggestions s
	JOIN users u ON u.id = s.user_id
`

func (r *PostgresRepository) Create(ctx context.Context, s *models.Suggestion) error {
	query :=
		`INSERT INTO suggestions (id, hang_id, user_id, type, content)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING votes, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.ID, s.HangID, s.UserID, s.Type, s.Content).
		Scan(&s.Votes, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) IncrementVotes(ctx context.Context, id string) (int64, error) {
	query :=
		`UPDATE suggestions SET votes = votes + 1
		 WHERE id = $1
		 RETURNING votes
		 `

	var votes int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&votes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return votes, nil
}

func (r *PostgresRepository) ListByHang(ctx context.Context, hangID string) ([]models.SuggestionView, error) {
	query := selectWithUser + `
	WHERE s.hang_id = $1
	ORDER BY s.created_at, s.id
	`
	return r.list(ctx, query, hangID)
}

func (r *PostgresRepository) ListByHangStatus(ctx context.Context, status models.HangStatus) ([]models.SuggestionView, error) {
	query := selectWithUser + `
	JOIN hangs h ON h.id = s.hang_id
	WHERE h.status = $1
	ORDER BY s.created_at, s.id
	`
	return r.list(ctx, query, status)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.SuggestionView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select suggestions: %w", err)
	}
	defer rows.Close()

	result := []models.SuggestionView{}
	for rows.Next() {
		var v models.SuggestionView
		if err := rows.Scan(
			&v.ID, &v.HangID, &v.UserID, &v.Type, &v.Content, &v.Votes, &v.Suggestion.CreatedAt,
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
