// Package sqlite provides a SQLite favorites backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/hay-kot/favs/internal/core/favorite"
	_ "modernc.org/sqlite"
)

// Common errors.
var (
	ErrStoreClosed  = errors.New("favorites backend is closed")
	ErrInvalidTable = errors.New("invalid table name")
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Backend implements favorite.Backend using SQLite. Each user owns one row
// holding the JSON encoded list.
type Backend struct {
	mu     sync.RWMutex
	db     *sql.DB
	table  string
	closed bool
}

var _ favorite.Pinger = (*Backend)(nil)

// New opens (creating if needed) the database at dbPath and ensures table
// exists.
func New(dbPath, table string) (*Backend, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open favorites database: %w", err)
	}

	b, err := NewWithDB(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

// NewWithDB creates a backend using an existing database connection.
func NewWithDB(db *sql.DB, table string) (*Backend, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	b := &Backend{db: db, table: table}
	if err := b.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize favorites table: %w", err)
	}
	return b, nil
}

// NewInMemory creates a backend on a private in-memory database (useful for
// testing).
func NewInMemory(table string) (*Backend, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	b, err := NewWithDB(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}

	return b, nil
}

// initialize creates the favorites table.
func (b *Backend) initialize() error {
	schema := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %q (
			username   TEXT PRIMARY KEY,
			tables     TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`, b.table)

	_, err := b.db.Exec(schema)
	return err
}

// Fetch returns the stored payload for user. Returns favorite.ErrNoRecord if
// the user has no row.
func (b *Backend) Fetch(ctx context.Context, user string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return nil, ErrStoreClosed
	}

	var payload string
	err := b.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT tables FROM %q WHERE username = ?", b.table),
		user,
	).Scan(&payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, favorite.ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch favorites: %w", err)
	}

	return []byte(payload), nil
}

// Upsert replaces the row of user.
func (b *Backend) Upsert(ctx context.Context, user string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrStoreClosed
	}

	_, err := b.db.ExecContext(ctx,
		fmt.Sprintf("INSERT OR REPLACE INTO %q (username, tables, updated_at) VALUES (?, ?, ?)", b.table),
		user, string(payload), time.Now().Unix(),
	)

	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	return nil
}

// Ping checks the database connection.
func (b *Backend) Ping(ctx context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrStoreClosed
	}

	return b.db.PingContext(ctx)
}

// Close closes the backend.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	return b.db.Close()
}
