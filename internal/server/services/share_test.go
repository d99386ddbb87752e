package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLink(t *testing.T) {
	assert.Equal(t, "https://hangs.example/?hang=h1", ShareLink("https://hangs.example/", "h1"))
	assert.Equal(t, "https://hangs.example/app?hang=h1&ref=x", ShareLink("https://hangs.example/app?ref=x", "h1"))
}

func TestBuildShare(t *testing.T) {
	v := models.NewHangView(models.Hang{
		ID: "h1", Title: "Coffee", Date: "2025-06-01", Time: "10:00", Location: "Cafe X", MaxAttendees: 6,
	}, models.User{ID: "u1"})
	v.Attendees = []models.AttendeeView{
		{Attendee: models.Attendee{UserID: "u1", Status: models.RSVPGoing}},
		{Attendee: models.Attendee{UserID: "u2", Status: models.RSVPMaybe}},
		{Attendee: models.Attendee{UserID: "u3", Status: models.RSVPGoing}},
	}

	p := BuildShare("https://hangs.example/", &v)
	assert.Equal(t, "https://hangs.example/?hang=h1", p.URL)
	assert.Equal(t,
		"Join me for Coffee!\n\n2025-06-01 at 10:00\nCafe X\n2/6 people going\n\nRSVP here: https://hangs.example/?hang=h1",
		p.Text)
}

func TestShare(t *testing.T) {
	e := newEnv(t, "u1")
	ctx := context.Background()
	h := e.createCoffee(t, "u1")

	p, err := e.share.Share(ctx, h.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "https://hangs.example/?hang="+h.ID, p.URL)
	assert.Contains(t, p.Text, "1/10 people going")
	assert.Contains(t, p.Text, "Cafe X")

	_, err = e.share.Share(ctx, uuid.NewString(), "")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
