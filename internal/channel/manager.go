// Package channel owns the live debate connection: exactly one
// websocket per debate id, reconnect with bounded backoff, and decoded
// events delivered one at a time in arrival order.
package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/debatehub/console/internal/debate"
)

// State of the reconnect machine:
// connecting -> open -> retrying -> (open | closed).
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateRetrying
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateRetrying:
		return "retrying"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

var ErrNotOpen = errors.New("channel: not open")

// Address builds the channel endpoint for one debate. The address is a
// pure function of the debate id; credentials ride on the connection's
// cookies, never in frames.
func Address(wsBase string, debateID int64) string {
	return fmt.Sprintf("%s/ws/debates/%d", strings.TrimRight(wsBase, "/"), debateID)
}

type Options struct {
	Logger            *slog.Logger
	ReconnectBase     time.Duration
	ReconnectCap      time.Duration
	ReconnectAttempts int
	Header            http.Header
}

// Manager drives one channel session. It is bound to a single debate
// id for its whole lifetime; a new debate means a new Manager, with
// Close called on the old one first.
type Manager struct {
	url    string
	connID string
	log    *slog.Logger

	base        time.Duration
	cap         time.Duration
	maxAttempts int
	header      http.Header

	state atomic.Int32

	mu   sync.Mutex
	conn *websocket.Conn

	events    chan debate.Event
	done      chan struct{}
	closeOnce sync.Once
}

func New(wsBase string, debateID int64, opts Options) *Manager {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	base := opts.ReconnectBase
	if base <= 0 {
		base = 500 * time.Millisecond
	}
	ceiling := opts.ReconnectCap
	if ceiling <= 0 {
		ceiling = 15 * time.Second
	}
	attempts := opts.ReconnectAttempts
	if attempts < 0 {
		attempts = 0
	}

	m := &Manager{
		url:         Address(wsBase, debateID),
		connID:      uuid.New().String(),
		log:         log,
		base:        base,
		cap:         ceiling,
		maxAttempts: attempts,
		header:      opts.Header,
		events:      make(chan debate.Event, 64),
		done:        make(chan struct{}),
	}
	m.state.Store(int32(StateConnecting))
	return m
}

// Events delivers decoded frames in arrival order. The channel is
// closed once the manager gives up or Close is called.
func (m *Manager) Events() <-chan debate.Event { return m.events }

func (m *Manager) State() State { return State(m.state.Load()) }

func (m *Manager) setState(s State) { m.state.Store(int32(s)) }

// Open starts the connection loop. Dial failures are not fatal: the
// manager keeps retrying under its backoff policy and the caller keeps
// rendering a connecting placeholder until State reports open.
func (m *Manager) Open(ctx context.Context) {
	m.setState(StateConnecting)
	go m.run(ctx)
}

func (m *Manager) run(ctx context.Context) {
	defer close(m.events)

	conn, err := m.dial(ctx)
	if err != nil {
		m.log.Warn("channel dial failed", "conn", m.connID, "url", m.url, "error", err)
		if !m.redial(ctx) {
			return
		}
	} else {
		m.install(conn)
	}

	m.readFrames(ctx)
}

func (m *Manager) dial(ctx context.Context) (*websocket.Conn, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, m.url, m.header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	return conn, err
}

func (m *Manager) install(conn *websocket.Conn) {
	select {
	case <-m.done:
		_ = conn.Close()
		return
	default:
	}
	m.mu.Lock()
	if m.conn != nil {
		_ = m.conn.Close()
	}
	m.conn = conn
	m.mu.Unlock()
	m.setState(StateOpen)
	m.log.Info("channel open", "conn", m.connID, "url", m.url)
}

func (m *Manager) current() *websocket.Conn {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn
}

func (m *Manager) readFrames(ctx context.Context) {
	for {
		conn := m.current()
		if conn == nil {
			return
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-m.done:
				return
			case <-ctx.Done():
				return
			default:
			}
			m.log.Warn("channel read failed", "conn", m.connID, "error", err)
			if !m.redial(ctx) {
				return
			}
			continue
		}

		ev, perr := debate.ParseEvent(data)
		if perr != nil {
			// One bad frame must not degrade the session.
			m.log.Warn("dropping malformed frame", "conn", m.connID, "error", perr)
			continue
		}

		select {
		case m.events <- ev:
		case <-m.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// redial runs the retrying arm of the state machine. It returns true
// once a fresh connection is installed, false when attempts are
// exhausted or the manager is shutting down.
func (m *Manager) redial(ctx context.Context) bool {
	m.setState(StateRetrying)

	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		delay := m.backoffDelay(attempt)
		m.log.Info("channel retrying", "conn", m.connID, "attempt", attempt, "delay", delay)

		select {
		case <-time.After(delay):
		case <-m.done:
			return false
		case <-ctx.Done():
			return false
		}

		conn, err := m.dial(ctx)
		if err != nil {
			m.log.Warn("channel redial failed", "conn", m.connID, "attempt", attempt, "error", err)
			continue
		}
		m.install(conn)
		return true
	}

	m.log.Warn("channel retries exhausted", "conn", m.connID, "attempts", m.maxAttempts)
	m.setState(StateClosed)
	return false
}

// backoffDelay is bounded exponential: base, 2*base, 4*base, ... capped.
func (m *Manager) backoffDelay(attempt int) time.Duration {
	if attempt > 20 {
		return m.cap
	}
	d := m.base << uint(attempt-1)
	if d <= 0 || d > m.cap {
		return m.cap
	}
	return d
}

// Send transmits one outbound argument frame. Delivery confirmation,
// if any, arrives later as the echoed argument event.
func (m *Manager) Send(frame debate.OutboundArgument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil || m.State() != StateOpen {
		return ErrNotOpen
	}
	return m.conn.WriteJSON(frame)
}

// Close tears the channel down. Safe to call more than once, and
// required before opening a manager for another debate.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		m.setState(StateClosed)
		close(m.done)
		m.mu.Lock()
		if m.conn != nil {
			_ = m.conn.Close()
			m.conn = nil
		}
		m.mu.Unlock()
	})
}
