package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
)

// IdentityService maps the opaque id issued by the identity provider to a
// stored user, creating the record on first sight.
type IdentityService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewIdentityService(m repomanager.RepositoryManager, l logging.Logger) *IdentityService {
	return &IdentityService{repomanager: m, logger: l.With("module", "identity")}
}

func (s *IdentityService) Resolve(ctx context.Context, userID string) (*models.User, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()
	if err := repo.Create(ctx, userID); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	u, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}

// RequireNamed is Resolve for operations that need a finished profile.
func (s *IdentityService) RequireNamed(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Resolve(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.Named() {
		return nil, common.ErrorProfileIncomplete
	}
	return u, nil
}

// UpdateProfile sets the display name and avatar reference. An empty avatar
// clears it.
func (s *IdentityService) UpdateProfile(ctx context.Context, userID, name, avatarURL string) (*models.User, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.MissingField("name")
	}

	u := &models.User{ID: userID, Name: name, AvatarURL: strings.TrimSpace(avatarURL)}
	err := s.repomanager.Users().SaveProfile(ctx, u)
	metrics.ObserveMutation("update_profile", err)
	if err != nil {
		s.logger.Error(ctx, "profile update failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("error saving profile: %w", err)
	}

	s.logger.Info(ctx, "profile updated", "user_id", userID)
	return u, nil
}
