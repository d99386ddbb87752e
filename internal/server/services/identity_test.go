package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CreatesOnFirstSight(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	u, err := e.identity.Resolve(ctx, "idp|42")
	require.NoError(t, err)
	assert.Equal(t, "idp|42", u.ID)
	assert.False(t, u.Named())

	again, err := e.identity.Resolve(ctx, "idp|42")
	require.NoError(t, err)
	assert.Equal(t, u.CreatedAt, again.CreatedAt)
}

func TestResolve_NoIdentity(t *testing.T) {
	e := newEnv(t)
	_, err := e.identity.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRequireNamed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.identity.RequireNamed(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrorProfileIncomplete)

	_, err = e.identity.UpdateProfile(ctx, "u1", "  Ann  ", "avatars/u1/x")
	require.NoError(t, err)

	u, err := e.identity.RequireNamed(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	assert.Equal(t, "avatars/u1/x", u.AvatarURL)
}

func TestUpdateProfile_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.identity.UpdateProfile(ctx, "u1", "   ", "")
	assert.ErrorIs(t, err, common.ErrorMissingField)

	_, err = e.identity.UpdateProfile(ctx, "", "Ann", "")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = e.rm.Users().GetByID(ctx, "u1")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
