package chat

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/bus"
	"github.com/fyndhq/fynd/internal/status"
	"github.com/fyndhq/fynd/internal/store"
)

// Session composes the connection manager, the simulated responder and the
// persisted history into a per-product message timeline. All timeline
// mutations are serialized by one mutex, so appends land in arrival order
// and every append is persisted before the next one is observed.
//
// epoch identifies the active product context. It advances, under the same
// lock as the product id, whenever pending replies must become stale:
// product switch, window close, shutdown. A scheduled reply carries the
// epoch it was scheduled under and is discarded on mismatch, so a reply
// already past cancellation can never land on another product's timeline.
type Session struct {
	history   *History
	conn      Transport
	responder *Responder
	bus       *bus.Bus
	logger    *zap.Logger

	mu        sync.Mutex
	productID int64
	open      bool
	epoch     uint64
	messages  []Message
}

// NewSession creates a session controller. The transport's frame handler
// is bound to the responder; replies land back on the session.
func NewSession(db *store.DB, conn Transport, strategy ReplyStrategy, b *bus.Bus, logger *zap.Logger) *Session {
	s := &Session{
		history: NewHistory(db),
		conn:    conn,
		bus:     b,
		logger:  logger,
	}
	s.responder = NewResponder(strategy, s.snapshotEpoch, s.receiveReply, s.publishTyping)
	conn.SetHandler(s.responder.OnFrame)
	return s
}

// SetProduct switches the active product: pending replies are cancelled
// with no delivery, and the timeline for the new product is loaded from
// storage. A no-op when the product is unchanged.
func (s *Session) SetProduct(productID int64) {
	s.mu.Lock()
	if productID == s.productID {
		s.mu.Unlock()
		return
	}
	s.epoch++
	s.productID = productID
	s.mu.Unlock()

	s.responder.CancelAll()

	s.mu.Lock()
	s.messages = s.history.Load(productID)
	s.mu.Unlock()

	s.publish("chat.timeline_loaded", productID)
}

// SetOpen drives the connection lifecycle from the chat window's
// visibility: the socket exists only while the window is open.
func (s *Session) SetOpen(open bool) {
	s.mu.Lock()
	if open == s.open {
		s.mu.Unlock()
		return
	}
	s.open = open
	if !open {
		s.epoch++
	}
	s.mu.Unlock()

	if open {
		s.conn.Enable()
		return
	}
	s.conn.Disable()
	s.responder.CancelAll()
}

// Send appends a user message to the timeline, persists it, and forwards
// the raw text to the connection. Text that is empty after trimming is
// rejected as a pure no-op. Transmission is independent of persistence:
// a failed write is logged, the message stays on the in-memory timeline,
// and the frame still goes out.
func (s *Session) Send(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.mu.Lock()
	productID := s.appendLocked(NewMessage(text, SenderUser))
	s.mu.Unlock()

	s.publish("chat.message_appended", productID)
	s.conn.Send(text)
}

// receiveReply lands a simulated seller reply. The epoch was captured when
// the reply was scheduled; on mismatch the product context has moved on
// and the reply is dropped without touching timeline or storage.
func (s *Session) receiveReply(text string, epoch uint64) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	productID := s.appendLocked(NewMessage(text, SenderShop))
	s.mu.Unlock()

	s.publish("chat.message_appended", productID)
}

// appendLocked appends and persists under the caller-held mutex and
// returns the product the message landed on.
func (s *Session) appendLocked(msg Message) int64 {
	s.messages = append(s.messages, msg)
	if err := s.history.Save(s.productID, s.messages); err != nil {
		s.logger.Warn("persist timeline failed", zap.Int64("product_id", s.productID), zap.Error(err))
	}
	return s.productID
}

// snapshotEpoch is sampled by the responder when a reply is scheduled.
func (s *Session) snapshotEpoch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}

// Messages returns a copy of the active timeline.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ProductID returns the active product id.
func (s *Session) ProductID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.productID
}

// Typing reports whether the simulated seller is typing.
func (s *Session) Typing() bool {
	return s.responder.Typing()
}

// Status returns the connection state.
func (s *Session) Status() status.State {
	return s.conn.Status()
}

// Close tears the session down: cancels pending replies and closes the socket.
func (s *Session) Close() {
	s.mu.Lock()
	s.epoch++
	s.mu.Unlock()

	s.responder.CancelAll()
	s.conn.Disable()
}

func (s *Session) publish(kind string, productID int64) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: productID})
}

func (s *Session) publishTyping(typing bool) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(bus.Event{Kind: "chat.typing_changed", Timestamp: time.Now(), Payload: typing})
}
