package suggestions

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Suggestion) error
	// IncrementVotes adds one vote in place and returns the new total.
	IncrementVotes(ctx context.Context, id string) (int64, error)
	ListByHang(ctx context.Context, hangID string) ([]models.SuggestionView, error)
	ListByHangStatus(ctx context.Context, status models.HangStatus) ([]models.SuggestionView, error)
}
