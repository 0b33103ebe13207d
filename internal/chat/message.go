package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies which side authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderShop Sender = "shop"
)

// Message is one chat message. Immutable once created; owned exclusively
// by the product timeline it was appended to.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp int64  `json:"timestamp"`
}

// NewMessage creates a message with a fresh id and the current epoch-millis.
func NewMessage(text string, sender Sender) Message {
	return Message{
		ID:        uuid.New().String(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UnixMilli(),
	}
}
