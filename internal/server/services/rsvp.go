package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RSVPService records attendance. There is one record per (hang, user);
// later calls overwrite the status. Neither the hang status nor its capacity
// is checked.
type RSVPService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewRSVPService(m repomanager.RepositoryManager, l logging.Logger) *RSVPService {
	return &RSVPService{repomanager: m, logger: l.With("module", "rsvp")}
}

func (s *RSVPService) SetRSVP(ctx context.Context, hangID, userID, status string) (*models.Attendee, error) {
	if err := requireIdentity(userID); err != nil {
		return nil, err
	}
	st, err := models.ParseRSVPStatus(status)
	if err != nil {
		return nil, err
	}
	if err := checkID(hangID); err != nil {
		return nil, err
	}

	a := &models.Attendee{ID: uuid.NewString(), HangID: hangID, UserID: userID, Status: st}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		if _, err := m.Hangs().GetByID(ctx, hangID); err != nil {
			return err
		}
		return m.Attendees().Upsert(ctx, a)
	})
	metrics.ObserveMutation("set_rsvp", err)
	if err != nil {
		s.logger.Error(ctx, "rsvp failed", "hang_id", hangID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("error saving rsvp: %w", err)
	}

	s.logger.Info(ctx, "rsvp saved", "hang_id", hangID, "user_id", userID, "status", st)
	return a, nil
}
