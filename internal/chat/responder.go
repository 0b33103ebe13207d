package chat

import (
	"math/rand"
	"sync"
	"time"
)

// Reply delay bounds for the simulated seller.
const (
	replyDelayMin = 900 * time.Millisecond
	replyDelayMax = 1300 * time.Millisecond
)

// ReplyStrategy produces the shop-side reply for an inbound frame. The
// demo endpoint echoes, so the default strategy does too; real seller
// logic would plug in here.
type ReplyStrategy interface {
	Reply(text string) string
}

// EchoStrategy replies with the inbound text unchanged.
type EchoStrategy struct{}

func (EchoStrategy) Reply(text string) string { return text }

// Responder simulates the seller typing and answering. Every inbound
// frame schedules one delayed reply; the pending set is a map of
// cancellable timer handles so overlapping replies are tracked
// individually, and "typing" means at least one reply is pending.
//
// A fired timer leaves the pending set before deliver runs, so CancelAll
// alone cannot stop a reply already in flight. Each reply therefore
// carries the epoch observed when it was scheduled; the receiver rejects
// replies whose epoch no longer matches its active context.
type Responder struct {
	strategy ReplyStrategy
	epoch    func() uint64
	deliver  func(text string, epoch uint64)
	onTyping func(typing bool)

	minDelay time.Duration
	maxDelay time.Duration

	mu      sync.Mutex
	pending map[*time.Timer]struct{}
}

// NewResponder creates a responder. epoch is sampled when a reply is
// scheduled and handed back on delivery; deliver receives each reply text
// when its timer fires; onTyping observes the typing flag edges. All three
// may be nil.
func NewResponder(strategy ReplyStrategy, epoch func() uint64, deliver func(string, uint64), onTyping func(bool)) *Responder {
	if strategy == nil {
		strategy = EchoStrategy{}
	}
	if epoch == nil {
		epoch = func() uint64 { return 0 }
	}
	return &Responder{
		strategy: strategy,
		epoch:    epoch,
		deliver:  deliver,
		onTyping: onTyping,
		minDelay: replyDelayMin,
		maxDelay: replyDelayMax,
		pending:  make(map[*time.Timer]struct{}),
	}
}

// OnFrame schedules a reply for one inbound frame after a jittered delay.
func (r *Responder) OnFrame(text string) {
	reply := r.strategy.Reply(text)
	epoch := r.epoch()
	delay := r.minDelay + time.Duration(rand.Int63n(int64(r.maxDelay-r.minDelay)))

	r.mu.Lock()
	var tm *time.Timer
	tm = time.AfterFunc(delay, func() { r.fire(tm, reply, epoch) })
	r.pending[tm] = struct{}{}
	first := len(r.pending) == 1
	r.mu.Unlock()

	if first && r.onTyping != nil {
		r.onTyping(true)
	}
}

func (r *Responder) fire(tm *time.Timer, reply string, epoch uint64) {
	r.mu.Lock()
	if _, ok := r.pending[tm]; !ok {
		// Cancelled after the timer fired but before this ran.
		r.mu.Unlock()
		return
	}
	delete(r.pending, tm)
	last := len(r.pending) == 0
	r.mu.Unlock()

	if r.deliver != nil {
		r.deliver(reply, epoch)
	}
	if last && r.onTyping != nil {
		r.onTyping(false)
	}
}

// Typing reports whether at least one reply is pending.
func (r *Responder) Typing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending) > 0
}

// CancelAll stops every pending reply with no delivery. Invoked on every
// teardown path: product switch, window close, shutdown.
func (r *Responder) CancelAll() {
	r.mu.Lock()
	had := len(r.pending) > 0
	for tm := range r.pending {
		tm.Stop()
	}
	r.pending = make(map[*time.Timer]struct{})
	r.mu.Unlock()

	if had && r.onTyping != nil {
		r.onTyping(false)
	}
}
