package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_FetchNoRecord(t *testing.T) {
	backend, err := NewInMemory("favorite_tables")
	require.NoError(t, err)
	defer backend.Close()

	_, err = backend.Fetch(context.Background(), "alice")
	assert.ErrorIs(t, err, favorite.ErrNoRecord)
}

func TestBackend_UpsertReplaces(t *testing.T) {
	backend, err := NewInMemory("favorite_tables")
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	require.NoError(t, backend.Upsert(ctx, "alice", []byte(`[{"db":"shop","table":"users"}]`)))
	require.NoError(t, backend.Upsert(ctx, "alice", []byte(`[]`)))
	require.NoError(t, backend.Upsert(ctx, "bob", []byte(`[{"db":"crm","table":"leads"}]`)))

	got, err := backend.Fetch(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	got, err = backend.Fetch(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, `[{"db":"crm","table":"leads"}]`, string(got))

	var rows int
	require.NoError(t, backend.db.QueryRow(`SELECT COUNT(*) FROM "favorite_tables"`).Scan(&rows))
	assert.Equal(t, 2, rows)
}

func TestBackend_PersistsAcrossOpens(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "favs.db")
	ctx := context.Background()

	backend, err := New(dbPath, "favorite_tables")
	require.NoError(t, err)
	require.NoError(t, backend.Upsert(ctx, "alice", []byte(`[{"db":"shop","table":"users"}]`)))
	require.NoError(t, backend.Close())

	reopened, err := New(dbPath, "favorite_tables")
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Fetch(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, `[{"db":"shop","table":"users"}]`, string(got))
}

func TestBackend_TablesAreIndependent(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	ctx := context.Background()

	a, err := NewWithDB(db, "favorites_a")
	require.NoError(t, err)
	b, err := NewWithDB(db, "favorites_b")
	require.NoError(t, err)

	require.NoError(t, a.Upsert(ctx, "alice", []byte(`[]`)))

	_, err = b.Fetch(ctx, "alice")
	assert.ErrorIs(t, err, favorite.ErrNoRecord)
}

func TestBackend_InvalidTable(t *testing.T) {
	tests := []string{"", "1abc", "fav-tables", `x"; DROP TABLE users; --`, "a.b"}

	for _, table := range tests {
		t.Run(table, func(t *testing.T) {
			_, err := NewInMemory(table)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestBackend_Closed(t *testing.T) {
	backend, err := NewInMemory("favorite_tables")
	require.NoError(t, err)
	require.NoError(t, backend.Close())

	ctx := context.Background()

	_, err = backend.Fetch(ctx, "alice")
	assert.ErrorIs(t, err, ErrStoreClosed)
	assert.ErrorIs(t, backend.Upsert(ctx, "alice", []byte(`[]`)), ErrStoreClosed)
	assert.ErrorIs(t, backend.Ping(ctx), ErrStoreClosed)

	// Closing twice is fine.
	assert.NoError(t, backend.Close())
}

func TestBackend_Ping(t *testing.T) {
	backend, err := NewInMemory("favorite_tables")
	require.NoError(t, err)
	defer backend.Close()

	assert.NoError(t, backend.Ping(context.Background()))
}
