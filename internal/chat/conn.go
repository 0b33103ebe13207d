package chat

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/fyndhq/fynd/internal/status"
)

const writeWait = 10 * time.Second

// FrameHandler receives inbound text frames verbatim.
type FrameHandler func(text string)

// Transport is the connection surface the session controller drives.
type Transport interface {
	Enable()
	Disable()
	Send(text string)
	SetHandler(h FrameHandler)
	Status() status.State
}

// Conn owns at most one live websocket to the chat endpoint and the
// four-state connection machine around it.
//
// Dialing carries no explicit timeout: an attempt that never resolves
// leaves the status at connecting until the window is closed.
type Conn struct {
	url     string
	machine *status.Machine
	logger  *zap.Logger

	mu  sync.Mutex
	ws  *websocket.Conn
	gen int // bumped on every Disable; stale dials and read loops check it

	handlerMu sync.RWMutex
	handler   FrameHandler
}

// NewConn creates a connection manager for the given websocket URL.
func NewConn(url string, machine *status.Machine, logger *zap.Logger) *Conn {
	return &Conn{
		url:     url,
		machine: machine,
		logger:  logger,
	}
}

// Status returns the current connection state.
func (c *Conn) Status() status.State {
	return c.machine.Current()
}

// SetHandler installs the frame handler. The read loop resolves the
// handler through this cell on every frame, so rebinding mid-connection
// takes effect immediately.
func (c *Conn) SetHandler(h FrameHandler) {
	c.handlerMu.Lock()
	c.handler = h
	c.handlerMu.Unlock()
}

// Enable opens the socket unless one is already opening or open.
func (c *Conn) Enable() {
	cur := c.machine.Current()
	if cur == status.Connecting || cur == status.Connected {
		return
	}
	if err := c.machine.Transition(status.Connecting); err != nil {
		return
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	go c.dial(gen)
}

func (c *Conn) dial(gen int) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 0, // no connect timeout
	}
	ws, resp, err := dialer.Dial(c.url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.mu.Lock()
	if gen != c.gen || c.machine.Current() != status.Connecting {
		// Disabled while the dial was in flight; discard the socket.
		c.mu.Unlock()
		if ws != nil {
			_ = ws.Close()
		}
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("chat dial failed", zap.String("url", c.url), zap.Error(err))
		_ = c.machine.Transition(status.Failed)
		return
	}
	c.ws = ws
	c.mu.Unlock()

	_ = c.machine.Transition(status.Connected)
	go c.readLoop(ws, gen)
}

// Disable closes any live socket and returns to idle. Idempotent.
func (c *Conn) Disable() {
	c.mu.Lock()
	c.gen++
	if c.ws != nil {
		_ = c.ws.Close()
		c.ws = nil
	}
	c.mu.Unlock()
	_ = c.machine.Transition(status.Idle)
}

// Send transmits a text frame. Effective only while connected; otherwise
// the text is dropped with no queueing or retry.
func (c *Conn) Send(text string) {
	c.mu.Lock()
	ws := c.ws
	c.mu.Unlock()
	if ws == nil || c.machine.Current() != status.Connected {
		return
	}

	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := ws.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		c.logger.Warn("chat send failed", zap.Error(err))
		c.teardown(ws, status.Failed)
	}
}

func (c *Conn) readLoop(ws *websocket.Conn, gen int) {
	for {
		msgType, data, err := ws.ReadMessage()
		if err != nil {
			next := status.Failed
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				next = status.Idle
			}
			c.mu.Lock()
			if gen != c.gen {
				// Disable already tore this socket down.
				c.mu.Unlock()
				return
			}
			c.ws = nil
			c.mu.Unlock()
			_ = ws.Close()
			_ = c.machine.Transition(next)
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		c.handlerMu.RLock()
		h := c.handler
		c.handlerMu.RUnlock()
		if h != nil {
			h(string(data))
		}
	}
}

func (c *Conn) teardown(ws *websocket.Conn, next status.State) {
	c.mu.Lock()
	if c.ws == ws {
		c.ws = nil
	}
	c.mu.Unlock()
	_ = ws.Close()
	_ = c.machine.Transition(next)
}
