package chat

import (
	"strconv"

	"github.com/fyndhq/fynd/internal/store"
)

// History persists per-product message timelines. All timelines live under
// one storage key as a map of product-id-string to message array; each
// write replaces the whole document, which the single writing instance
// (guarded by the data dir lock) keeps safe.
type History struct {
	db *store.DB
}

// NewHistory creates a history over the given store.
func NewHistory(db *store.DB) *History {
	return &History{db: db}
}

// Load returns the timeline for a product, empty if none was ever saved or
// the stored document is unreadable.
func (h *History) Load(productID int64) []Message {
	timelines := store.Load(h.db, store.KeyChatMessages, map[string][]Message{})
	return timelines[key(productID)]
}

// Save replaces the timeline for a product, leaving other products intact.
func (h *History) Save(productID int64, messages []Message) error {
	timelines := store.Load(h.db, store.KeyChatMessages, map[string][]Message{})
	if timelines == nil {
		timelines = make(map[string][]Message)
	}
	timelines[key(productID)] = messages
	return store.Save(h.db, store.KeyChatMessages, timelines)
}

func key(productID int64) string {
	return strconv.FormatInt(productID, 10)
}
