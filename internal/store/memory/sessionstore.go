// Package memory provides in-process favorites stores.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/hay-kot/favs/internal/core/favorite"
)

// SessionStore implements favorite.SessionStore in memory. Lists are copied
// on the way in and out so callers never share backing arrays with the store.
type SessionStore struct {
	lists map[favorite.SessionKey][]favorite.Item
	mu    sync.RWMutex
}

// NewSessionStore creates an empty in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{lists: make(map[favorite.SessionKey][]favorite.Item)}
}

// Get returns the cached list for key.
func (m *SessionStore) Get(_ context.Context, key favorite.SessionKey) ([]favorite.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.lists[key]
	if !ok {
		return nil, favorite.ErrSessionMiss
	}
	return slices.Clone(items), nil
}

// Set replaces the cached list for key.
func (m *SessionStore) Set(_ context.Context, key favorite.SessionKey, items []favorite.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if items == nil {
		items = []favorite.Item{}
	}
	m.lists[key] = slices.Clone(items)
	return nil
}

// Drop removes every list of session.
func (m *SessionStore) Drop(_ context.Context, session string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for key := range m.lists {
		if key.Session == session {
			delete(m.lists, key)
			n++
		}
	}
	return n, nil
}
