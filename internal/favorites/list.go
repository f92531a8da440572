package favorites

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/favs/internal/core/favorite"
	"github.com/rs/zerolog"
)

// List is the favorites list of one session on one server. The session
// cache is the working copy: every operation reads it, changes a local copy
// and writes it back before touching the backend. A List is not safe for
// concurrent mutation.
type List struct {
	key      favorite.SessionKey
	user     string
	maxSize  int
	sessions favorite.SessionStore
	backend  favorite.Backend
	log      zerolog.Logger
}

// Key returns the session cache key of the list.
func (l *List) Key() favorite.SessionKey {
	return l.key
}

// SetMaxSize changes the size bound. The list is trimmed on the next Items
// or Trim call.
func (l *List) SetMaxSize(n int) {
	l.maxSize = n
}

// Items returns the list after trimming it to the current size bound. When
// trimming dropped entries and a backend is configured, the trimmed list is
// saved; a failed save is returned as a *favorite.Error together with the
// trimmed items, which remain valid.
func (l *List) Items(ctx context.Context) ([]favorite.Item, error) {
	items, err := l.current(ctx)
	if err != nil {
		return nil, err
	}

	items, trimmed := favorite.Trim(items, l.maxSize)
	if !trimmed {
		return items, nil
	}

	if err := l.store(ctx, items); err != nil {
		return nil, err
	}

	if l.backend != nil {
		if err := l.saveToBackend(ctx, items); err != nil {
			return items, err
		}
	}

	return items, nil
}

// Trim shortens the cached list to the size bound and reports whether
// anything was dropped. It does not write to the backend.
func (l *List) Trim(ctx context.Context) (bool, error) {
	items, err := l.current(ctx)
	if err != nil {
		return false, err
	}

	items, trimmed := favorite.Trim(items, l.maxSize)
	if !trimmed {
		return false, nil
	}

	return true, l.store(ctx, items)
}

// Add puts db.table at the front of the list. Adding the item that is
// already at the front does nothing. A backend failure is returned as a
// *favorite.Error; the cached list keeps the new item regardless.
func (l *List) Add(ctx context.Context, db, table string) error {
	item := favorite.NewItem(db, table)

	items, err := l.current(ctx)
	if err != nil {
		return err
	}

	if len(items) > 0 && items[0] == item {
		return nil
	}

	items, _ = favorite.Trim(favorite.Promote(items, item), l.maxSize)
	if err := l.store(ctx, items); err != nil {
		return err
	}

	l.log.Debug().Str("table", item.Path()).Msg("favorite added")

	if l.backend == nil {
		return nil
	}
	return l.saveToBackend(ctx, items)
}

// Remove drops every occurrence of db.table from the list. The resulting
// list is persisted even when it is empty.
func (l *List) Remove(ctx context.Context, db, table string) error {
	item := favorite.NewItem(db, table)

	items, err := l.current(ctx)
	if err != nil {
		return err
	}

	items = favorite.Without(items, item)
	if err := l.store(ctx, items); err != nil {
		return err
	}

	l.log.Debug().Str("table", item.Path()).Msg("favorite removed")

	if l.backend == nil {
		return nil
	}
	return l.removeFromBackend(ctx, items)
}

// current returns the cached list. A session without a cached list, either
// new or ended since the List was opened, is hydrated from the backend first.
func (l *List) current(ctx context.Context) ([]favorite.Item, error) {
	items, err := l.sessions.Get(ctx, l.key)
	switch {
	case errors.Is(err, favorite.ErrSessionMiss):
		return l.hydrate(ctx)
	case err != nil:
		return nil, fmt.Errorf("read session cache: %w", err)
	}
	return items, nil
}

func (l *List) hydrate(ctx context.Context) ([]favorite.Item, error) {
	items := []favorite.Item{}
	if l.backend != nil {
		items = l.loadFromBackend(ctx)
	}

	if err := l.store(ctx, items); err != nil {
		return nil, err
	}

	l.log.Debug().Int("count", len(items)).Msg("favorites hydrated")
	return items, nil
}

func (l *List) store(ctx context.Context, items []favorite.Item) error {
	if err := l.sessions.Set(ctx, l.key, items); err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}
	return nil
}

// loadFromBackend never fails: a missing record, an unreachable backend and
// an unreadable payload all mean the user has no favorites.
func (l *List) loadFromBackend(ctx context.Context) []favorite.Item {
	payload, err := l.backend.Fetch(ctx, l.user)
	if err != nil {
		if !errors.Is(err, favorite.ErrNoRecord) {
			l.log.Warn().Err(err).Str("user", l.user).Msg("failed to load favorites")
		}
		return []favorite.Item{}
	}

	items, err := favorite.Decode(payload)
	if err != nil {
		l.log.Warn().Err(err).Str("user", l.user).Msg("ignoring unreadable favorites record")
		return []favorite.Item{}
	}

	return items
}

func (l *List) saveToBackend(ctx context.Context, items []favorite.Item) error {
	if err := l.upsert(ctx, items); err != nil {
		return favorite.SaveError(err)
	}
	return nil
}

// removeFromBackend writes the whole post-removal list; the backend has no
// delete operation.
func (l *List) removeFromBackend(ctx context.Context, items []favorite.Item) error {
	if err := l.upsert(ctx, items); err != nil {
		return favorite.RemoveError(err)
	}
	return nil
}

func (l *List) upsert(ctx context.Context, items []favorite.Item) error {
	payload, err := favorite.Encode(items)
	if err != nil {
		return err
	}

	if err := l.backend.Upsert(ctx, l.user, payload); err != nil {
		l.log.Warn().Err(err).Str("user", l.user).Msg("failed to persist favorites")
		return err
	}

	l.log.Debug().Str("user", l.user).Int("count", len(items)).Msg("favorites persisted")
	return nil
}
