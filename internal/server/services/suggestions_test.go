package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSuggestion_MaybeAndSuggestScenario(t *testing.T) {
	e := newEnv(t, "u1", "u2")
	ctx := context.Background()
	h := e.createCoffee(t, "u1")

	_, err := e.rsvp.SetRSVP(ctx, h.ID, "u2", "maybe")
	require.NoError(t, err)
	sg, err := e.suggestions.AddSuggestion(ctx, h.ID, "u2", "time", "  How about 11am?  ")
	require.NoError(t, err)
	assert.Equal(t, "How about 11am?", sg.Content)
	assert.Equal(t, int64(0), sg.Votes)

	views, err := e.aggregation.ListActiveHangs(ctx, "u2")
	require.NoError(t, err)
	v := findView(t, views, h.ID)

	require.NotNil(t, v.ViewerRSVP)
	assert.Equal(t, models.RSVPMaybe, *v.ViewerRSVP)
	require.Len(t, v.Attendees, 2)
	assert.Equal(t, "u2", v.Attendees[1].UserID)
	assert.Equal(t, "user u2", v.Attendees[1].User.Name)

	require.Len(t, v.Suggestions, 1)
	assert.Equal(t, sg.ID, v.Suggestions[0].ID)
	assert.Equal(t, models.SuggestionTime, v.Suggestions[0].Type)
	assert.Equal(t, int64(0), v.Suggestions[0].Votes)
	assert.Equal(t, "user u2", v.Suggestions[0].User.Name)
}

func TestAddSuggestion_AppendOnly(t *testing.T) {
	e := newEnv(t, "u1")
	ctx := context.Background()
	h := e.createCoffee(t, "u1")

	a, err := e.suggestions.AddSuggestion(ctx, h.ID, "u1", "", "Bring cards")
	require.NoError(t, err)
	b, err := e.suggestions.AddSuggestion(ctx, h.ID, "u1", "", "Bring cards")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, models.SuggestionGeneral, a.Type)

	list, err := e.rm.Suggestions().ListByHang(ctx, h.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddSuggestion_Validation(t *testing.T) {
	e := newEnv(t, "u1")
	ctx := context.Background()
	h := e.createCoffee(t, "u1")

	_, err := e.suggestions.AddSuggestion(ctx, h.ID, "u1", "time", " \n\t ")
	assert.ErrorIs(t, err, common.ErrorEmptyContent)
	assert.ErrorIs(t, err, common.ErrorValidation)

	_, err = e.suggestions.AddSuggestion(ctx, h.ID, "u1", "budget", "cheap")
	assert.ErrorIs(t, err, common.ErrorInvalidType)

	_, err = e.suggestions.AddSuggestion(ctx, h.ID, "", "time", "noon")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = e.suggestions.AddSuggestion(ctx, uuid.NewString(), "u1", "time", "noon")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, err := e.rm.Suggestions().ListByHang(ctx, h.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestVoteSuggestion_ThreeUsers(t *testing.T) {
	e := newEnv(t, "u1", "u2", "u3")
	ctx := context.Background()
	h := e.createCoffee(t, "u1")
	sg, err := e.suggestions.AddSuggestion(ctx, h.ID, "u1", "location", "Park")
	require.NoError(t, err)

	var last int64
	for _, u := range []string{"u1", "u2", "u3"} {
		last, err = e.suggestions.VoteSuggestion(ctx, sg.ID, u)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), last)

	again, err := e.suggestions.VoteSuggestion(ctx, sg.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), again, "re-voting is counted")
}

func TestVoteSuggestion_ConcurrentVotesAreNotLost(t *testing.T) {
	e := newEnv(t, "u1")
	ctx := context.Background()
	h := e.createCoffee(t, "u1")
	sg, err := e.suggestions.AddSuggestion(ctx, h.ID, "u1", "time", "noon")
	require.NoError(t, err)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.suggestions.VoteSuggestion(ctx, sg.ID, uuid.NewString())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := e.aggregation.GetHang(ctx, h.ID, "u1")
	require.NoError(t, err)
	require.Len(t, view.Suggestions, 1)
	assert.Equal(t, int64(n), view.Suggestions[0].Votes)
}

func TestVoteSuggestion_Unknown(t *testing.T) {
	e := newEnv(t, "u1")
	ctx := context.Background()

	_, err := e.suggestions.VoteSuggestion(ctx, uuid.NewString(), "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.suggestions.VoteSuggestion(ctx, "s1", "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.suggestions.VoteSuggestion(ctx, uuid.NewString(), "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
