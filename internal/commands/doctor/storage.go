package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/favs/internal/core/favorite"
)

// StorageCheck verifies the persistent backend and the user's stored list.
type StorageCheck struct {
	backend favorite.Pinger
	key     favorite.BackendKey
	user    string
}

// NewStorageCheck creates a storage check. A nil backend reports that
// persistence is disabled.
func NewStorageCheck(backend favorite.Pinger, key favorite.BackendKey, user string) *StorageCheck {
	return &StorageCheck{backend: backend, key: key, user: user}
}

func (c *StorageCheck) Name() string {
	return "Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	if c.backend == nil {
		result.add(Warn("Backend", "not configured, favorites are kept for the session only"))
		return result
	}

	if err := c.backend.Ping(ctx); err != nil {
		result.add(Fail("Backend reachable", err.Error()))
		return result
	}

	result.add(Pass("Backend reachable", c.key.String()), c.checkRecord(ctx))
	return result
}

// checkRecord surfaces problems that loading hides: an unreadable record
// silently becomes an empty list.
func (c *StorageCheck) checkRecord(ctx context.Context) Finding {
	label := fmt.Sprintf("Favorites of %s", c.user)

	payload, err := c.backend.Fetch(ctx, c.user)
	switch {
	case errors.Is(err, favorite.ErrNoRecord):
		return Pass(label, "none saved yet")
	case err != nil:
		return Fail(label, err.Error())
	}

	items, err := favorite.Decode(payload)
	if err != nil {
		return Warn(label, "stored list is unreadable and will be ignored: "+err.Error())
	}

	return Pass(label, fmt.Sprintf("%d saved", len(items)))
}
