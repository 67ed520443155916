package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padips/padips-cli/internal/models"
)

func newTestStore(t *testing.T) *SQLiteSessionStore {
	t.Helper()
	ctx := context.Background()
	db, err := InitDatabase(ctx, "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteSessionStore(db)
}

func testSession() models.Session {
	return models.Session{
		Token: "tok-1",
		User: models.UserProfile{
			ID:     "u1",
			Name:   "Anitha",
			Email:  "anitha@example.org",
			Role:   models.RoleUser,
			Status: models.StatusActive,
		},
	}
}

func TestSQLiteSessionStore_EmptyByDefault(t *testing.T) {
	store := newTestStore(t)

	s, err := store.Session(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestSQLiteSessionStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testSession()))

	got, err := store.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-1", got.Token)
	assert.Equal(t, "anitha@example.org", got.User.Email)
}

func TestSQLiteSessionStore_SaveOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testSession()))

	next := testSession()
	next.Token = "tok-2"
	require.NoError(t, store.SaveSession(ctx, next))

	got, err := store.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok-2", got.Token)
}

func TestSQLiteSessionStore_ClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, testSession()))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteSessionStore_CorruptProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.set(ctx, store.db, keyToken, []byte("tok")))
	require.NoError(t, store.set(ctx, store.db, keyUser, []byte("{not json")))

	_, err := store.Session(ctx)
	assert.Error(t, err)
}
