package chat

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/status"
)

// echoServer upgrades each request and echoes text frames back, counting
// live connections.
type echoServer struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu   sync.Mutex
	live int
}

func newEchoServer(t *testing.T) *echoServer {
	t.Helper()
	es := &echoServer{}
	es.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := es.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		es.mu.Lock()
		es.live++
		es.mu.Unlock()
		defer func() {
			es.mu.Lock()
			es.live--
			es.mu.Unlock()
			_ = ws.Close()
		}()
		for {
			msgType, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			if err := ws.WriteMessage(msgType, data); err != nil {
				return
			}
		}
	}))
	t.Cleanup(es.srv.Close)
	return es
}

func (es *echoServer) url() string {
	return "ws" + strings.TrimPrefix(es.srv.URL, "http")
}

func (es *echoServer) liveConns() int {
	es.mu.Lock()
	defer es.mu.Unlock()
	return es.live
}

func testConn(t *testing.T, url string) *Conn {
	t.Helper()
	c := NewConn(url, status.NewMachine(nil), zap.NewNop())
	t.Cleanup(c.Disable)
	return c
}

func TestEnableConnects(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")
}

func TestEnableWhileConnectedIsNoOp(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")

	c.Enable()
	c.Enable()
	time.Sleep(50 * time.Millisecond)
	if n := es.liveConns(); n != 1 {
		t.Errorf("live connections = %d, want 1", n)
	}
}

func TestSendAndReceiveEcho(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	var mu sync.Mutex
	var frames []string
	c.SetHandler(func(text string) {
		mu.Lock()
		frames = append(frames, text)
		mu.Unlock()
	})

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")

	c.Send("ping")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(frames) == 1 && frames[0] == "ping"
	}, "echo never delivered")
}

func TestHandlerRebindMidConnection(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	var mu sync.Mutex
	var old, cur []string
	c.SetHandler(func(text string) {
		mu.Lock()
		old = append(old, text)
		mu.Unlock()
	})

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")

	// Rebind: the read loop must resolve the newest handler per frame.
	c.SetHandler(func(text string) {
		mu.Lock()
		cur = append(cur, text)
		mu.Unlock()
	})

	c.Send("ping")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(cur) == 1
	}, "rebound handler never called")

	mu.Lock()
	defer mu.Unlock()
	if len(old) != 0 {
		t.Errorf("stale handler received %v", old)
	}
}

func TestSendDroppedUnlessConnected(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	var mu sync.Mutex
	var frames []string
	c.SetHandler(func(text string) {
		mu.Lock()
		frames = append(frames, text)
		mu.Unlock()
	})

	// Idle: dropped.
	c.Send("x")

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")

	// The dropped frame must not surface after connecting (no buffering).
	c.Send("y")
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(frames) == 1
	}, "echo never delivered")

	mu.Lock()
	defer mu.Unlock()
	if frames[0] != "y" {
		t.Errorf("frames = %v, want only y", frames)
	}
}

func TestDisableReturnsToIdleIdempotently(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")

	c.Disable()
	if c.Status() != status.Idle {
		t.Errorf("status = %s, want idle", c.Status())
	}
	c.Disable()
	if c.Status() != status.Idle {
		t.Errorf("status after second Disable = %s, want idle", c.Status())
	}
	waitFor(t, func() bool { return es.liveConns() == 0 }, "server side never closed")
}

func TestDialFailureTransitionsToError(t *testing.T) {
	// A plain HTTP server that never upgrades makes the dial fail fast.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := testConn(t, "ws"+strings.TrimPrefix(srv.URL, "http"))
	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Failed }, "never reached error state")

	// The next enable cycle returns to connecting.
	c.Enable()
	waitFor(t, func() bool { return c.Status() != status.Failed }, "enable after error did nothing")
}

func TestReenableAfterDisable(t *testing.T) {
	es := newEchoServer(t)
	c := testConn(t, es.url())

	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never connected")
	c.Disable()
	c.Enable()
	waitFor(t, func() bool { return c.Status() == status.Connected }, "never reconnected")
	waitFor(t, func() bool { return es.liveConns() == 1 }, "expected exactly one live connection")
}
