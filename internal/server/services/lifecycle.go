package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// LifecycleService creates hangs and applies host edits and status changes.
// Status only moves from active to cancelled or completed.
type LifecycleService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewLifecycleService(m repomanager.RepositoryManager, l logging.Logger) *LifecycleService {
	return &LifecycleService{repomanager: m, logger: l.With("module", "lifecycle")}
}

// Create stores a new active hang hosted by hostID together with the host's
// going RSVP, in one transaction.
func (s *LifecycleService) Create(ctx context.Context, hostID string, fields models.HangFields) (*models.Hang, error) {
	if err := requireIdentity(hostID); err != nil {
		return nil, err
	}
	f, err := fields.Normalize()
	if err != nil {
		return nil, err
	}

	h := &models.Hang{ID: uuid.NewString(), Status: models.HangStatusActive, HostID: hostID}
	f.Apply(h)

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		if err := m.Hangs().Create(ctx, h); err != nil {
			return err
		}
		return m.Attendees().Upsert(ctx, &models.Attendee{
			ID:     uuid.NewString(),
			HangID: h.ID,
			UserID: hostID,
			Status: models.RSVPGoing,
		})
	})
	metrics.ObserveMutation("create_hang", err)
	if err != nil {
		s.logger.Error(ctx, "hang creation failed", "host_id", hostID, "error", err)
		return nil, fmt.Errorf("error creating hang: %w", err)
	}

	s.logger.Info(ctx, "hang created", "hang_id", h.ID, "host_id", hostID)
	return h, nil
}

// Update rewrites the editable fields. Only the host may edit, and only
// while the hang is active. Status is never changed here.
func (s *LifecycleService) Update(ctx context.Context, hangID, actorID string, fields models.HangFields) (*models.Hang, error) {
	if err := requireIdentity(actorID); err != nil {
		return nil, err
	}
	f, err := fields.Normalize()
	if err != nil {
		return nil, err
	}
	if err := checkID(hangID); err != nil {
		return nil, err
	}

	var h *models.Hang
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		var err error
		h, err = s.loadForHost(ctx, m, hangID, actorID)
		if err != nil {
			return err
		}
		f.Apply(h)
		return m.Hangs().UpdateFields(ctx, h)
	})
	metrics.ObserveMutation("update_hang", err)
	if err != nil {
		return nil, fmt.Errorf("error updating hang: %w", err)
	}

	s.logger.Info(ctx, "hang updated", "hang_id", hangID)
	return h, nil
}

// Transition moves an active hang to a terminal status.
func (s *LifecycleService) Transition(ctx context.Context, hangID, actorID string, to models.HangStatus) (*models.Hang, error) {
	if err := requireIdentity(actorID); err != nil {
		return nil, err
	}
	if !models.HangStatusActive.CanTransitionTo(to) {
		return nil, common.ErrorInvalidTransition
	}
	if err := checkID(hangID); err != nil {
		return nil, err
	}

	var h *models.Hang
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		var err error
		h, err = s.loadForHost(ctx, m, hangID, actorID)
		if err != nil {
			return err
		}
		if err := m.Hangs().SetStatus(ctx, hangID, models.HangStatusActive, to); err != nil {
			return err
		}
		h.Status = to
		return nil
	})
	metrics.ObserveMutation(string(to)+"_hang", err)
	if err != nil {
		return nil, fmt.Errorf("error changing hang status: %w", err)
	}

	s.logger.Info(ctx, "hang status changed", "hang_id", hangID, "status", to)
	return h, nil
}

func (s *LifecycleService) Cancel(ctx context.Context, hangID, actorID string) (*models.Hang, error) {
	return s.Transition(ctx, hangID, actorID, models.HangStatusCancelled)
}

func (s *LifecycleService) Complete(ctx context.Context, hangID, actorID string) (*models.Hang, error) {
	return s.Transition(ctx, hangID, actorID, models.HangStatusCompleted)
}

func (s *LifecycleService) loadForHost(ctx context.Context, m repomanager.RepositoryManager, hangID, actorID string) (*models.Hang, error) {
	h, err := m.Hangs().GetByID(ctx, hangID)
	if err != nil {
		return nil, err
	}
	if h.HostID != actorID {
		return nil, common.ErrorForbidden
	}
	if h.Status != models.HangStatusActive {
		return nil, common.ErrorHangNotActive
	}
	return h, nil
}
