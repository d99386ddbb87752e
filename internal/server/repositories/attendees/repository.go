package attendees

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/server/models"
)

type Repository interface {
	// Upsert writes the RSVP for (HangID, UserID). On conflict only the status
	// changes; the stored id and created_at are returned into the record.
	Upsert(ctx context.Context, a *models.Attendee) error
	ListByHang(ctx context.Context, hangID string) ([]models.AttendeeView, error)
	// ListByHangStatus returns attendees of every hang in the given status.
	ListByHangStatus(ctx context.Context, status models.HangStatus) ([]models.AttendeeView, error)
}
