package users

import (
	"context"

	"github.com/dmitrijs2005/letshang/internal/server/models"
)

type Repository interface {
	// Create inserts a bare identity record; an existing id is left untouched.
	Create(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	// SaveProfile upserts name and avatar for the user.
	SaveProfile(ctx context.Context, user *models.User) error
}
