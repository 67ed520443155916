package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padips/padips-cli/internal/common"
	"github.com/padips/padips-cli/internal/models"
)

func TestFilterByEmail(t *testing.T) {
	users := []models.UserProfile{
		{Email: "Anitha@Example.org"},
		{Email: "bala@example.org"},
		{Email: "chitra@other.net"},
	}

	assert.Len(t, FilterByEmail(users, ""), 3)
	assert.Len(t, FilterByEmail(users, "  "), 3)

	got := FilterByEmail(users, "EXAMPLE")
	require.Len(t, got, 2)

	got = FilterByEmail(users, "anitha")
	require.Len(t, got, 1)
	assert.Equal(t, "Anitha@Example.org", got[0].Email)

	assert.Empty(t, FilterByEmail(users, "zzz"))
}

func TestBlocked(t *testing.T) {
	users := []models.UserProfile{
		{Email: "a@x.org", Status: models.StatusActive},
		{Email: "b@x.org", Status: models.StatusSuspended},
		{Email: "c@x.org", IsBlocked: true},
	}
	got := Blocked(users)
	require.Len(t, got, 2)
	assert.Equal(t, "b@x.org", got[0].Email)
	assert.Equal(t, "c@x.org", got[1].Email)
}

func TestAdminService_SuspendRequiresReason(t *testing.T) {
	fake := &fakeClient{}
	svc := NewAdminService(fake)

	err := svc.Suspend(context.Background(), "u1", "   ")
	assert.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, fake.suspendedID, "remote call must not happen")

	require.NoError(t, svc.Suspend(context.Background(), "u1", "cheating on test 3"))
	assert.Equal(t, "u1", fake.suspendedID)
	assert.Equal(t, "cheating on test 3", fake.suspendedReason)
}

func TestAdminService_Activate(t *testing.T) {
	fake := &fakeClient{}
	svc := NewAdminService(fake)

	assert.ErrorIs(t, svc.Activate(context.Background(), ""), common.ErrorValidation)

	require.NoError(t, svc.Activate(context.Background(), "u2"))
	assert.Equal(t, "u2", fake.activatedID)
}
