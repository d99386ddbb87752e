package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/api"
	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func requireCode(t *testing.T, err error, code codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, status.Code(err), err.Error())
}

func onboard(t *testing.T, c api.HangServiceClient, userID, name string) context.Context {
	t.Helper()
	ctx := as(t, userID)
	resp, err := c.UpdateProfile(ctx, &api.UpdateProfileRequest{Name: name})
	require.NoError(t, err)
	require.Equal(t, name, resp.User.Name)
	return ctx
}

func TestHangFlow(t *testing.T) {
	ts := startTestServer(t)
	c := ts.client

	u1 := onboard(t, c, "u1", "Ann")
	u2 := onboard(t, c, "u2", "Bo")
	u3 := onboard(t, c, "u3", "Cy")

	created, err := c.CreateHang(u1, &api.CreateHangRequest{Hang: api.HangInput{
		Title: "Coffee", Date: "2025-06-01", Time: "10:00", Location: "Cafe X", MaxAttendees: "",
	}})
	require.NoError(t, err)
	h := created.Hang
	assert.Equal(t, models.HangStatusActive, h.Status)
	assert.Equal(t, "u1", h.HostID)
	assert.Equal(t, 10, h.MaxAttendees)
	assert.Equal(t, models.HangTypeSocial, h.Type)

	list, err := c.ListActiveHangs(u1, &api.ListActiveHangsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Hangs, 1)
	require.NotNil(t, list.Hangs[0].ViewerRSVP)
	assert.Equal(t, models.RSVPGoing, *list.Hangs[0].ViewerRSVP)
	assert.Equal(t, "Ann", list.Hangs[0].Host.Name)

	_, err = c.SetRSVP(u2, &api.SetRSVPRequest{HangID: h.ID, Status: "maybe"})
	require.NoError(t, err)
	sg, err := c.AddSuggestion(u2, &api.AddSuggestionRequest{HangID: h.ID, Type: "time", Content: "How about 11am?"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sg.Suggestion.Votes)

	for _, ctx := range []context.Context{u1, u2, u3} {
		_, err := c.VoteSuggestion(ctx, &api.VoteSuggestionRequest{SuggestionID: sg.Suggestion.ID})
		require.NoError(t, err)
	}

	view, err := c.GetHang(u2, &api.HangRequest{HangID: h.ID})
	require.NoError(t, err)
	require.Len(t, view.Hang.Attendees, 2)
	assert.Equal(t, "Bo", view.Hang.Attendees[1].User.Name)
	require.Len(t, view.Hang.Suggestions, 1)
	assert.Equal(t, int64(3), view.Hang.Suggestions[0].Votes)
	require.NotNil(t, view.Hang.ViewerRSVP)
	assert.Equal(t, models.RSVPMaybe, *view.Hang.ViewerRSVP)

	share, err := c.ShareHang(u3, &api.HangRequest{HangID: h.ID})
	require.NoError(t, err)
	assert.Equal(t, "https://hangs.example/?hang="+h.ID, share.URL)
	assert.Contains(t, share.Text, "1/10 people going")

	stats, err := c.GetStats(u2, &api.GetStatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, &api.StatsResponse{Hangs: 1, Going: 0, Attendees: 2}, stats)

	updated, err := c.UpdateHang(u1, &api.UpdateHangRequest{HangID: h.ID, Hang: api.HangInput{
		Title: "Tea", Date: "2025-06-01", Time: "11:00", Location: "Cafe X", MaxAttendees: "4", Type: "coffee",
	}})
	require.NoError(t, err)
	assert.Equal(t, "Tea", updated.Hang.Title)
	assert.Equal(t, 4, updated.Hang.MaxAttendees)

	cancelled, err := c.CancelHang(u1, &api.HangRequest{HangID: h.ID})
	require.NoError(t, err)
	assert.Equal(t, models.HangStatusCancelled, cancelled.Hang.Status)

	_, err = c.CompleteHang(u1, &api.HangRequest{HangID: h.ID})
	requireCode(t, err, codes.FailedPrecondition)

	list, err = c.ListActiveHangs(u2, &api.ListActiveHangsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Hangs)
}

func TestErrorCodes(t *testing.T) {
	ts := startTestServer(t)
	c := ts.client

	host := onboard(t, c, "host", "Host")
	guest := onboard(t, c, "guest", "Guest")

	created, err := c.CreateHang(host, &api.CreateHangRequest{Hang: api.HangInput{
		Title: "Games", Date: "d", Time: "t", Location: "l", Type: "games",
	}})
	require.NoError(t, err)
	id := created.Hang.ID

	t.Run("missing token", func(t *testing.T) {
		_, err := c.ListActiveHangs(context.Background(), &api.ListActiveHangsRequest{})
		requireCode(t, err, codes.Unauthenticated)
	})

	t.Run("bad token", func(t *testing.T) {
		ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, "junk")
		_, err := c.GetProfile(ctx, &api.GetProfileRequest{})
		requireCode(t, err, codes.Unauthenticated)
	})

	t.Run("profile incomplete", func(t *testing.T) {
		_, err := c.ListActiveHangs(as(t, "newcomer"), &api.ListActiveHangsRequest{})
		requireCode(t, err, codes.FailedPrecondition)

		p, err := c.GetProfile(as(t, "newcomer"), &api.GetProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, "newcomer", p.User.ID)
		assert.Empty(t, p.User.Name)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := c.CreateHang(host, &api.CreateHangRequest{Hang: api.HangInput{Title: "x"}})
		requireCode(t, err, codes.InvalidArgument)
		_, err = c.AddSuggestion(guest, &api.AddSuggestionRequest{HangID: id, Content: "   "})
		requireCode(t, err, codes.InvalidArgument)
		_, err = c.SetRSVP(guest, &api.SetRSVPRequest{HangID: id, Status: "yes"})
		requireCode(t, err, codes.InvalidArgument)
	})

	t.Run("forbidden", func(t *testing.T) {
		_, err := c.CancelHang(guest, &api.HangRequest{HangID: id})
		requireCode(t, err, codes.PermissionDenied)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetHang(guest, &api.HangRequest{HangID: uuid.NewString()})
		requireCode(t, err, codes.NotFound)
		_, err = c.VoteSuggestion(guest, &api.VoteSuggestionRequest{SuggestionID: "nope"})
		requireCode(t, err, codes.NotFound)
	})
}

func TestHealth_NoTokenNeeded(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: api.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
}
