// Package favorites tracks the user's favorite product ids, persisted as
// an array in the local store.
package favorites

import (
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/bus"
	"github.com/fyndhq/fynd/internal/store"
)

// Favorites is the application-scoped favorite set. Load happens once at
// construction; storage stays authoritative across restarts.
type Favorites struct {
	db     *store.DB
	bus    *bus.Bus
	logger *zap.Logger

	mu  sync.Mutex
	ids map[int64]bool
}

// New creates a favorites set, loading any persisted ids. A corrupt stored
// value degrades to an empty set.
func New(db *store.DB, b *bus.Bus, logger *zap.Logger) *Favorites {
	ids := make(map[int64]bool)
	for _, id := range store.Load(db, store.KeyFavorites, []int64{}) {
		ids[id] = true
	}
	return &Favorites{db: db, bus: b, logger: logger, ids: ids}
}

// Toggle flips a product in or out of the set and persists the result.
// Toggling twice restores the original set.
func (f *Favorites) Toggle(productID int64) {
	f.mu.Lock()
	if f.ids[productID] {
		delete(f.ids, productID)
	} else {
		f.ids[productID] = true
	}
	if err := store.Save(f.db, store.KeyFavorites, f.sortedLocked()); err != nil {
		f.logger.Warn("persist favorites failed", zap.Error(err))
	}
	f.mu.Unlock()

	if f.bus != nil {
		f.bus.Publish(bus.Event{Kind: "favorites.changed", Timestamp: time.Now(), Payload: productID})
	}
}

// IsFavorite reports whether a product is in the set.
func (f *Favorites) IsFavorite(productID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids[productID]
}

// IDs returns the favorite product ids in ascending order.
func (f *Favorites) IDs() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sortedLocked()
}

func (f *Favorites) sortedLocked() []int64 {
	out := make([]int64, 0, len(f.ids))
	for id := range f.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
