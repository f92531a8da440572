package favorites

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/hay-kot/favs/internal/store/jsonfile"
	"github.com/hay-kot/favs/internal/store/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each call builds a fresh Service over the same files, as separate CLI
// invocations do.
func newFileService(t *testing.T, sessionsPath string, backend favorite.Backend) *Service {
	t.Helper()
	sessions := jsonfile.NewSessionStore(sessionsPath)
	opts := Options{User: testUser, Server: "1", MaxSize: 3}
	return New(sessions, backend, opts, zerolog.New(io.Discard))
}

func TestService_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	sessionsPath := filepath.Join(t.TempDir(), "sessions.json")

	backend, err := sqlite.NewInMemory("favorite_tables")
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	l, err := newFileService(t, sessionsPath, backend).Open(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, l.Add(ctx, "shop", "users"))
	require.NoError(t, l.Add(ctx, "shop", "orders"))

	// Same session in a later invocation reads the cached list.
	l, err = newFileService(t, sessionsPath, backend).Open(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []favorite.Item{item("shop", "orders"), item("shop", "users")}, mustItems(t, l))

	// A new session hydrates from the database.
	l, err = newFileService(t, sessionsPath, backend).Open(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, []favorite.Item{item("shop", "orders"), item("shop", "users")}, mustItems(t, l))

	require.NoError(t, l.Remove(ctx, "shop", "orders"))

	payload, err := backend.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"db":"shop","table":"users"}]`, string(payload))
}

func TestService_EndRehydrates(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	sessionsPath := filepath.Join(dir, "sessions.json")
	backend := jsonfile.NewBackend(filepath.Join(dir, "favorites.json"), "favorite_tables")

	svc := newFileService(t, sessionsPath, backend)

	l, err := svc.Open(ctx, "s1")
	require.NoError(t, err)
	require.NoError(t, l.Add(ctx, "shop", "users"))

	// Another session writes through to the shared backend.
	other, err := svc.Open(ctx, "s2")
	require.NoError(t, err)
	require.NoError(t, other.Add(ctx, "shop", "orders"))

	// s1 keeps its cached copy until the session ends.
	l, err = svc.Open(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []favorite.Item{item("shop", "users")}, mustItems(t, l))

	n, err := svc.End(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	l, err = svc.Open(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []favorite.Item{item("shop", "orders"), item("shop", "users")}, mustItems(t, l))
}
