package jsonfile

import (
	"context"
	"sync"
	"time"

	"github.com/hay-kot/favs/internal/core/favorite"
)

// Record is one user's stored favorites payload.
type Record struct {
	User      string    `json:"user"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// backendFile is the root JSON structure of the backend file. Records are
// grouped by table so several lists can share one file.
type backendFile struct {
	Tables map[string]map[string]Record `json:"tables"`
}

// Backend implements favorite.Backend using a JSON file for persistence.
type Backend struct {
	path  string
	table string
	lock  fileLock
	mu    sync.RWMutex
}

var _ favorite.Pinger = (*Backend)(nil)

// NewBackend creates a backend that keeps its records under table in the
// JSON file at path.
func NewBackend(path, table string) *Backend {
	return &Backend{path: path, table: table, lock: fileLock{path: path}}
}

// Fetch returns the stored payload for user. Returns favorite.ErrNoRecord if
// there is none.
func (b *Backend) Fetch(ctx context.Context, user string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var (
		rec   Record
		found bool
	)

	err := b.lock.shared(func() error {
		file, err := b.load()
		if err != nil {
			return err
		}
		rec, found = file.Tables[b.table][user]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, favorite.ErrNoRecord
	}

	return []byte(rec.Payload), nil
}

// Upsert creates or replaces the payload stored for user.
func (b *Backend) Upsert(ctx context.Context, user string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.lock.exclusive(func() error {
		file, err := b.load()
		if err != nil {
			return err
		}

		records, ok := file.Tables[b.table]
		if !ok {
			records = make(map[string]Record)
			file.Tables[b.table] = records
		}

		now := time.Now()
		rec, exists := records[user]
		if exists {
			rec.Payload = string(payload)
			rec.UpdatedAt = now
		} else {
			rec = Record{
				User:      user,
				Payload:   string(payload),
				CreatedAt: now,
				UpdatedAt: now,
			}
		}

		records[user] = rec
		return writeJSON(b.path, file)
	})
}

// Ping checks that the backend file is readable.
func (b *Backend) Ping(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lock.shared(func() error {
		_, err := b.load()
		return err
	})
}

// load reads the backend file from disk.
// Returns an empty backendFile if the file doesn't exist.
func (b *Backend) load() (backendFile, error) {
	var file backendFile
	if err := readJSON(b.path, &file); err != nil {
		return backendFile{}, err
	}

	if file.Tables == nil {
		file.Tables = make(map[string]map[string]Record)
	}

	return file, nil
}
