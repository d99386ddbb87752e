// Package hangs provides the PostgreSQL-backed repository for hang records.
package hangs

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

const selectWithHost = `
	SELECT h.id, h.title, h.description, h.date, h.time, h.location, h.max_attendees,
		h.type, h.status, h.host_id, h.created_at, h.updated_at,
		u.id, COALESCE(u.name, ''), COALESCE(u.avatar_url, ''), u.created_at, u.updated_at
	FROM hangs h
	JOIN users u ON u.id = h.host_id
`

func (r *PostgresRepository) Create(ctx context.Context, hang *models.Hang) error {
	query :=
		`INSERT INTO hangs (id, title, description, date, time, location, max_attendees, type, status, host_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		hang.ID, hang.Title, hang.Description, hang.Date, hang.Time, hang.Location,
		hang.MaxAttendees, hang.Type, hang.Status, hang.HostID,
	).Scan(&hang.CreatedAt, &hang.UpdatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Hang, error) {
	query :=
		`SELECT id, title, description, date, time, location, max_attendees, type, status, host_id, created_at, updated_at
		 FROM hangs
		 WHERE id = $1
		 `

	h := &models.Hang{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.Title, &h.Description, &h.Date, &h.Time, &h.Location, &h.MaxAttendees,
		&h.Type, &h.Status, &h.HostID, &h.CreatedAt, &h.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return h, nil
}

func (r *PostgresRepository) UpdateFields(ctx context.Context, hang *models.Hang) error {
	query :=
		`UPDATE hangs SET
			title = $2, description = $3, date = $4, time = $5, location = $6,
			max_attendees = $7, type = $8, updated_at = now()
		 WHERE id = $1 AND status = 'active'
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		hang.ID, hang.Title, hang.Description, hang.Date, hang.Time, hang.Location,
		hang.MaxAttendees, hang.Type,
	).Scan(&hang.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorHangNotActive
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, from, to models.HangStatus) error {
	query :=
		`UPDATE hangs SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorHangNotActive
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) ListWithHost(ctx context.Context, status models.HangStatus) ([]models.HangView, error) {
	query := selectWithHost + `
	WHERE h.status = $1
	ORDER BY h.created_at DESC, h.id
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to select hangs: %w", err)
	}
	defer rows.Close()

	result := []models.HangView{}
	for rows.Next() {
		v, err := scanWithHost(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetWithHost(ctx context.Context, id string) (*models.HangView, error) {
	query := selectWithHost + `
	WHERE h.id = $1
	`

	v, err := scanWithHost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &v, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWithHost(s scanner) (models.HangView, error) {
	var h models.Hang
	var host models.User
	err := s.Scan(
		&h.ID, &h.Title, &h.Description, &h.Date, &h.Time, &h.Location, &h.MaxAttendees,
		&h.Type, &h.Status, &h.HostID, &h.CreatedAt, &h.UpdatedAt,
		&host.ID, &host.Name, &host.AvatarURL, &host.CreatedAt, &host.UpdatedAt,
	)
	if err != nil {
		return models.HangView{}, err
	}
	return models.NewHangView(h, host), nil
}
