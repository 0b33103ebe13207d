package bus

import "time"

// Event represents a domain event published on the bus.
//
// Kinds in use: "chat.status_changed", "chat.message_appended",
// "chat.timeline_loaded", "chat.typing_changed", "favorites.changed",
// "auth.changed".
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
