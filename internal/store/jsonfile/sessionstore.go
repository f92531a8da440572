// Package jsonfile provides JSON file-based favorites stores.
package jsonfile

import (
	"context"
	"sync"
	"time"

	"github.com/hay-kot/favs/internal/core/favorite"
)

// sessionFile is the root JSON structure of the session cache.
// Lists are indexed by session, then by server.
type sessionFile struct {
	Sessions map[string]map[string]cachedList `json:"sessions"`
}

type cachedList struct {
	Items     []favorite.Item `json:"items"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// SessionStore implements favorite.SessionStore using a JSON file, so that a
// session's cache survives between command invocations.
type SessionStore struct {
	path string
	lock fileLock
	mu   sync.RWMutex
}

// NewSessionStore creates a session store at the given path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path, lock: fileLock{path: path}}
}

// Get returns the cached list for key. Returns favorite.ErrSessionMiss if the
// session has no list for the server.
func (s *SessionStore) Get(ctx context.Context, key favorite.SessionKey) ([]favorite.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		list  cachedList
		found bool
	)

	err := s.lock.shared(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}
		list, found = file.Sessions[key.Session][key.Server]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, favorite.ErrSessionMiss
	}
	if list.Items == nil {
		list.Items = []favorite.Item{}
	}
	return list.Items, nil
}

// Set replaces the cached list for key.
func (s *SessionStore) Set(ctx context.Context, key favorite.SessionKey, items []favorite.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items == nil {
		items = []favorite.Item{}
	}

	return s.lock.exclusive(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		servers, ok := file.Sessions[key.Session]
		if !ok {
			servers = make(map[string]cachedList)
			file.Sessions[key.Session] = servers
		}
		servers[key.Server] = cachedList{Items: items, UpdatedAt: time.Now()}

		return writeJSON(s.path, file)
	})
}

// Drop removes every list cached for session.
func (s *SessionStore) Drop(ctx context.Context, session string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int

	err := s.lock.exclusive(func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		servers, ok := file.Sessions[session]
		if !ok {
			return nil
		}

		n = len(servers)
		delete(file.Sessions, session)
		return writeJSON(s.path, file)
	})
	if err != nil {
		return 0, err
	}

	return n, nil
}

// load reads the session file from disk.
// Returns an empty sessionFile if the file doesn't exist.
func (s *SessionStore) load() (sessionFile, error) {
	var file sessionFile
	if err := readJSON(s.path, &file); err != nil {
		return sessionFile{}, err
	}

	if file.Sessions == nil {
		file.Sessions = make(map[string]map[string]cachedList)
	}

	return file, nil
}
