package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/dmitrijs2005/letshang/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type env struct {
	rm          *repomanager.MemoryRepositoryManager
	identity    *IdentityService
	aggregation *AggregationService
	rsvp        *RSVPService
	suggestions *SuggestionService
	lifecycle   *LifecycleService
	share       *ShareService
}

func newEnv(t *testing.T, users ...string) *env {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	l := logging.Nop{}
	agg := NewAggregationService(rm, l)
	e := &env{
		rm:          rm,
		identity:    NewIdentityService(rm, l),
		aggregation: agg,
		rsvp:        NewRSVPService(rm, l),
		suggestions: NewSuggestionService(rm, l),
		lifecycle:   NewLifecycleService(rm, l),
		share:       NewShareService(agg, "https://hangs.example/"),
	}
	for _, u := range users {
		_, err := e.identity.UpdateProfile(context.Background(), u, "user "+u, "")
		require.NoError(t, err)
	}
	return e
}

func coffeeFields() models.HangFields {
	return models.HangFields{Title: "Coffee", Date: "2025-06-01", Time: "10:00", Location: "Cafe X"}
}

func (e *env) createCoffee(t *testing.T, hostID string) *models.Hang {
	t.Helper()
	h, err := e.lifecycle.Create(context.Background(), hostID, coffeeFields())
	require.NoError(t, err)
	return h
}

// failingManager fails every transaction and snapshot with err.
type failingManager struct {
	repomanager.RepositoryManager
	err error
}

func (f failingManager) WithTx(context.Context, repomanager.TxFunc) error       { return f.err }
func (f failingManager) WithSnapshot(context.Context, repomanager.TxFunc) error { return f.err }

func findView(t *testing.T, views []models.HangView, id string) models.HangView {
	t.Helper()
	for _, v := range views {
		if v.ID == id {
			return v
		}
	}
	require.FailNow(t, "hang not listed", id)
	return models.HangView{}
}
