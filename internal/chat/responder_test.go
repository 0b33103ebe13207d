package chat

import (
	"sync"
	"testing"
	"time"
)

// collector records delivered replies and typing edges.
type collector struct {
	mu      sync.Mutex
	replies []string
	epochs  []uint64
	typing  []bool
}

func (c *collector) deliver(text string, epoch uint64) {
	c.mu.Lock()
	c.replies = append(c.replies, text)
	c.epochs = append(c.epochs, epoch)
	c.mu.Unlock()
}

func (c *collector) onTyping(t bool) {
	c.mu.Lock()
	c.typing = append(c.typing, t)
	c.mu.Unlock()
}

func (c *collector) replyCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.replies)
}

func fastResponder(c *collector) *Responder {
	r := NewResponder(nil, nil, c.deliver, c.onTyping)
	r.minDelay = 5 * time.Millisecond
	r.maxDelay = 15 * time.Millisecond
	return r
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestEchoReplyDelivered(t *testing.T) {
	c := &collector{}
	r := fastResponder(c)

	r.OnFrame("hello")
	if !r.Typing() {
		t.Error("Typing() = false right after OnFrame, want true")
	}

	waitFor(t, func() bool { return c.replyCount() == 1 }, "reply never delivered")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replies[0] != "hello" {
		t.Errorf("reply = %q, want echoed hello", c.replies[0])
	}
	if r.Typing() {
		t.Error("Typing() = true after delivery, want false")
	}
}

func TestTypingReflectsAtLeastOnePending(t *testing.T) {
	c := &collector{}
	r := fastResponder(c)
	// Widen the window so two replies overlap.
	r.minDelay = 50 * time.Millisecond
	r.maxDelay = 60 * time.Millisecond

	r.OnFrame("a")
	time.Sleep(20 * time.Millisecond)
	r.OnFrame("b")

	waitFor(t, func() bool { return c.replyCount() == 1 }, "first reply never delivered")
	if !r.Typing() {
		t.Error("Typing() = false with one reply still pending, want true")
	}

	waitFor(t, func() bool { return c.replyCount() == 2 }, "second reply never delivered")
	waitFor(t, func() bool { return !r.Typing() }, "typing never cleared")
}

func TestCancelAllSuppressesPendingReplies(t *testing.T) {
	c := &collector{}
	r := fastResponder(c)
	r.minDelay = 30 * time.Millisecond
	r.maxDelay = 40 * time.Millisecond

	r.OnFrame("a")
	r.OnFrame("b")
	r.CancelAll()

	if r.Typing() {
		t.Error("Typing() = true after CancelAll, want false")
	}

	time.Sleep(80 * time.Millisecond)
	if n := c.replyCount(); n != 0 {
		t.Errorf("replies after CancelAll = %d, want 0", n)
	}
}

func TestCancelAllIdempotentAndSilentWhenEmpty(t *testing.T) {
	c := &collector{}
	r := fastResponder(c)

	r.CancelAll()
	r.CancelAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.typing) != 0 {
		t.Errorf("typing edges = %v, want none for empty CancelAll", c.typing)
	}
}

func TestReplyCarriesScheduleTimeEpoch(t *testing.T) {
	var mu sync.Mutex
	current := uint64(1)

	c := &collector{}
	r := NewResponder(nil, func() uint64 {
		mu.Lock()
		defer mu.Unlock()
		return current
	}, c.deliver, nil)
	r.minDelay = 20 * time.Millisecond
	r.maxDelay = 30 * time.Millisecond

	r.OnFrame("hello")

	// Advance the context while the reply is still pending.
	mu.Lock()
	current = 2
	mu.Unlock()

	waitFor(t, func() bool { return c.replyCount() == 1 }, "reply never delivered")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epochs[0] != 1 {
		t.Errorf("delivered epoch = %d, want the epoch at scheduling time (1)", c.epochs[0])
	}
}

type upperStrategy struct{}

func (upperStrategy) Reply(text string) string { return "RE: " + text }

func TestPluggableStrategy(t *testing.T) {
	c := &collector{}
	r := NewResponder(upperStrategy{}, nil, c.deliver, nil)
	r.minDelay = 5 * time.Millisecond
	r.maxDelay = 10 * time.Millisecond

	r.OnFrame("lamp still available?")
	waitFor(t, func() bool { return c.replyCount() == 1 }, "reply never delivered")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.replies[0] != "RE: lamp still available?" {
		t.Errorf("reply = %q", c.replies[0])
	}
}
