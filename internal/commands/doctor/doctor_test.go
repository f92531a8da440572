package doctor

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/hay-kot/favs/internal/core/config"
	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBackend implements favorite.Pinger for testing.
type mockBackend struct {
	payload  []byte
	fetchErr error
	pingErr  error
}

func (m *mockBackend) Fetch(_ context.Context, _ string) ([]byte, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if m.payload == nil {
		return nil, favorite.ErrNoRecord
	}
	return m.payload, nil
}

func (m *mockBackend) Upsert(_ context.Context, _ string, _ []byte) error { return nil }

func (m *mockBackend) Ping(_ context.Context) error { return m.pingErr }

var testKey = favorite.BackendKey{Database: "/tmp/favs.db", Table: "favorite_tables"}

func TestStorageCheck(t *testing.T) {
	tests := []struct {
		name     string
		backend  favorite.Pinger
		statuses []Status
		detail   string
	}{
		{
			name:     "not configured",
			backend:  nil,
			statuses: []Status{StatusWarn},
			detail:   "session only",
		},
		{
			name:     "unreachable",
			backend:  &mockBackend{pingErr: errors.New("unable to open database file")},
			statuses: []Status{StatusFail},
			detail:   "unable to open database file",
		},
		{
			name:     "no record",
			backend:  &mockBackend{},
			statuses: []Status{StatusPass, StatusPass},
			detail:   "none saved yet",
		},
		{
			name:     "readable record",
			backend:  &mockBackend{payload: []byte(`[{"db":"shop","table":"users"}]`)},
			statuses: []Status{StatusPass, StatusPass},
			detail:   "1 saved",
		},
		{
			name:     "unreadable record",
			backend:  &mockBackend{payload: []byte(`{broken`)},
			statuses: []Status{StatusPass, StatusWarn},
			detail:   "will be ignored",
		},
		{
			name:     "fetch error",
			backend:  &mockBackend{fetchErr: errors.New("no such table")},
			statuses: []Status{StatusPass, StatusFail},
			detail:   "no such table",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var check *StorageCheck
			if tt.backend == nil {
				check = NewStorageCheck(nil, favorite.BackendKey{}, "alice")
			} else {
				check = NewStorageCheck(tt.backend, testKey, "alice")
			}

			result := check.Run(context.Background())
			assert.Equal(t, "Storage", result.Name)
			require.Len(t, result.Findings, len(tt.statuses))
			for i, want := range tt.statuses {
				assert.Equal(t, want, result.Findings[i].Status, "finding %d", i)
			}
			assert.Contains(t, result.Findings[len(result.Findings)-1].Detail, tt.detail)
		})
	}
}

func labels(r Result) []string {
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Label)
	}
	return out
}

func TestConfigCheck(t *testing.T) {
	newConfig := func() config.Config {
		cfg := config.DefaultConfig()
		cfg.User = "alice"
		cfg.DataDir = t.TempDir()
		cfg.Storage.Database = "favs.db"
		return cfg
	}

	t.Run("valid", func(t *testing.T) {
		cfg := newConfig()
		result := NewConfigCheck(&cfg, "").Run(context.Background())

		assert.Equal(t, []string{"Config file", "Identity", "Session cache", "Favorites limit"}, labels(result))
		assert.Equal(t, StatusPass, result.Worst())
		assert.Contains(t, result.Findings[1].Detail, `user "alice"`)
		assert.Equal(t, "10 per server", result.Findings[3].Detail)
	})

	t.Run("missing config file uses defaults", func(t *testing.T) {
		cfg := newConfig()
		result := NewConfigCheck(&cfg, filepath.Join(t.TempDir(), "config.yaml")).Run(context.Background())

		assert.Contains(t, result.Findings[0].Detail, "not found, using defaults")
		assert.Equal(t, StatusPass, result.Worst())
	})

	t.Run("invalid", func(t *testing.T) {
		cfg := newConfig()
		cfg.Storage.Driver = "mysql"
		result := NewConfigCheck(&cfg, "").Run(context.Background())

		assert.Equal(t, []string{"Config file", "storage.driver"}, labels(result))
		assert.Equal(t, StatusFail, result.Worst())
	})

	t.Run("zero limit warns", func(t *testing.T) {
		cfg := newConfig()
		cfg.MaxFavorites = 0
		result := NewConfigCheck(&cfg, "").Run(context.Background())

		assert.Equal(t, []string{"Config file", "Identity", "Session cache", "max_favorites"}, labels(result))
		assert.Equal(t, StatusWarn, result.Worst())
	})

	t.Run("disabled storage is left to the storage check", func(t *testing.T) {
		cfg := newConfig()
		cfg.Storage.Database = ""
		result := NewConfigCheck(&cfg, "").Run(context.Background())

		assert.Equal(t, StatusPass, result.Worst())
	})

	t.Run("not loaded", func(t *testing.T) {
		result := NewConfigCheck(nil, "").Run(context.Background())
		require.Len(t, result.Findings, 1)
		assert.Equal(t, StatusFail, result.Findings[0].Status)
	})
}

func TestRun(t *testing.T) {
	report := Run(context.Background(),
		NewStorageCheck(nil, favorite.BackendKey{}, "alice"),
		NewStorageCheck(&mockBackend{}, testKey, "alice"),
	)

	assert.True(t, report.Healthy)
	assert.Equal(t, Tally{Passed: 2, Warned: 1, Failed: 0}, report.Summary)
	require.Len(t, report.Checks, 2)

	report = Run(context.Background(),
		NewStorageCheck(&mockBackend{pingErr: errors.New("locked")}, testKey, "alice"),
	)
	assert.False(t, report.Healthy)
	assert.Equal(t, 1, report.Summary.Failed)
}

func TestReportJSON(t *testing.T) {
	report := Run(context.Background(), NewStorageCheck(nil, favorite.BackendKey{}, "alice"))

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"healthy": true,
		"summary": {"passed": 0, "warned": 1, "failed": 0},
		"checks": [{
			"name": "Storage",
			"findings": [{
				"label": "Backend",
				"status": "warn",
				"detail": "not configured, favorites are kept for the session only"
			}]
		}]
	}`, string(data))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "pass", StatusPass.String())
	assert.Equal(t, "fail", StatusFail.String())
	assert.Equal(t, "unknown", Status(7).String())
}
