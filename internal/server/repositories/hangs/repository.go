package hangs

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, hang *models.Hang) error
	GetByID(ctx context.Context, id string) (*models.Hang, error)
	// UpdateFields rewrites the editable fields of an active hang.
	UpdateFields(ctx context.Context, hang *models.Hang) error
	// SetStatus moves a hang from one status to another; a hang not currently
	// in `from` is left unchanged and common.ErrorHangNotActive is returned.
	SetStatus(ctx context.Context, id string, from, to models.HangStatus) error

	// ListWithHost returns hangs in the given status joined with their host,
	// newest first. Attendees and suggestions are left empty.
	ListWithHost(ctx context.Context, status models.HangStatus) ([]models.HangView, error)
	GetWithHost(ctx context.Context, id string) (*models.HangView, error)
}
