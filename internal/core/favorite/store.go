package favorite

import (
	"context"
	"errors"
)

// Sentinel errors for favorites stores.
var (
	ErrNoRecord    = errors.New("no favorites record")
	ErrSessionMiss = errors.New("favorites not cached for session")
)

// SessionKey addresses one cached list. Favorites are cached per session and
// per server so that lists never leak between servers in the same session.
type SessionKey struct {
	Session string `json:"session"`
	Server  string `json:"server"`
}

func (k SessionKey) String() string {
	return k.Session + "/" + k.Server
}

// BackendKey names where favorites are persisted: a database (a file path
// for the bundled drivers) and the table or collection inside it.
type BackendKey struct {
	Database string
	Table    string
}

// NewBackendKey returns the key for database and table. The key is only
// valid when both are non-empty; otherwise persistence is disabled.
func NewBackendKey(database, table string) (BackendKey, bool) {
	if database == "" || table == "" {
		return BackendKey{}, false
	}
	return BackendKey{Database: database, Table: table}, true
}

func (k BackendKey) String() string {
	return k.Database + ":" + k.Table
}

// Backend persists one serialized favorites list per user.
type Backend interface {
	// Fetch returns the stored payload for user. Returns ErrNoRecord if the
	// user has never saved favorites.
	Fetch(ctx context.Context, user string) ([]byte, error)
	// Upsert replaces the stored payload for user.
	Upsert(ctx context.Context, user string, payload []byte) error
}

// Pinger is a Backend that can report whether it is reachable.
type Pinger interface {
	Backend
	Ping(ctx context.Context) error
}

// SessionStore caches favorites lists for the lifetime of a session.
type SessionStore interface {
	// Get returns the cached list. Returns ErrSessionMiss if nothing is cached
	// for key yet.
	Get(ctx context.Context, key SessionKey) ([]Item, error)
	// Set replaces the cached list for key.
	Set(ctx context.Context, key SessionKey, items []Item) error
	// Drop removes every list cached for session and returns how many were
	// removed.
	Drop(ctx context.Context, session string) (int, error)
}
