package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/metrics"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
)

// AggregationService assembles HangViews from hangs, attendees and
// suggestions. All reads for one call share a snapshot.
type AggregationService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAggregationService(m repomanager.RepositoryManager, l logging.Logger) *AggregationService {
	return &AggregationService{repomanager: m, logger: l.With("module", "aggregation")}
}

// ListActiveHangs returns every active hang, newest first, with host,
// attendees, suggestions and the viewer's own RSVP. An empty list is not an
// error.
func (s *AggregationService) ListActiveHangs(ctx context.Context, viewerID string) ([]models.HangView, error) {
	var views []models.HangView

	err := s.repomanager.WithSnapshot(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		hangs, err := m.Hangs().ListWithHost(ctx, models.HangStatusActive)
		if err != nil {
			return err
		}
		if len(hangs) == 0 {
			views = hangs
			return nil
		}

		attendees, err := m.Attendees().ListByHangStatus(ctx, models.HangStatusActive)
		if err != nil {
			return err
		}
		suggestions, err := m.Suggestions().ListByHangStatus(ctx, models.HangStatusActive)
		if err != nil {
			return err
		}

		views = assemble(hangs, attendees, suggestions, viewerID)
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "listing active hangs failed", "error", err)
		return nil, fmt.Errorf("error listing active hangs: %w", err)
	}

	metrics.ActiveHangs.Set(float64(len(views)))
	return views, nil
}

// GetHang assembles a single hang regardless of its status.
func (s *AggregationService) GetHang(ctx context.Context, hangID, viewerID string) (*models.HangView, error) {
	if err := checkID(hangID); err != nil {
		return nil, err
	}

	var view *models.HangView

	err := s.repomanager.WithSnapshot(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		v, err := m.Hangs().GetWithHost(ctx, hangID)
		if err != nil {
			return err
		}
		attendees, err := m.Attendees().ListByHang(ctx, hangID)
		if err != nil {
			return err
		}
		suggestions, err := m.Suggestions().ListByHang(ctx, hangID)
		if err != nil {
			return err
		}

		views := assemble([]models.HangView{*v}, attendees, suggestions, viewerID)
		view = &views[0]
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error loading hang: %w", err)
	}

	return view, nil
}

// assemble distributes attendees and suggestions onto their hangs, keeping
// the input order of each list. Rows for hangs not in the list are dropped.
func assemble(hangs []models.HangView, attendees []models.AttendeeView, suggestions []models.SuggestionView, viewerID string) []models.HangView {
	index := make(map[string]int, len(hangs))
	for i := range hangs {
		index[hangs[i].ID] = i
	}

	for _, a := range attendees {
		if i, ok := index[a.HangID]; ok {
			hangs[i].Attendees = append(hangs[i].Attendees, a)
		}
	}
	for _, sg := range suggestions {
		if i, ok := index[sg.HangID]; ok {
			hangs[i].Suggestions = append(hangs[i].Suggestions, sg)
		}
	}

	for i := range hangs {
		hangs[i].ResolveViewer(viewerID)
	}
	return hangs
}
