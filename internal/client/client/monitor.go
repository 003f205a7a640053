package client

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/blueprint/internal/client/events"
	"github.com/dmitrijs2005/blueprint/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Conn is a backend whose capabilities can be re-read.
type Conn interface {
	Backend
	RefreshCapabilities(ctx context.Context) error
}

// Monitor tracks whether the backend is reachable. Until the first
// successful ping it reports ModeOffline.
type Monitor struct {
	conn        Conn
	logger      logging.Logger
	pingTimeout time.Duration

	mu   sync.RWMutex
	mode Mode

	changes *events.Bus[Mode]
}

type MonitorOption func(*Monitor)

func WithPingTimeout(d time.Duration) MonitorOption {
	return func(m *Monitor) { m.pingTimeout = d }
}

// NewMonitor watches conn; a nil conn stays offline for good.
func NewMonitor(conn Conn, logger logging.Logger, opts ...MonitorOption) *Monitor {
	m := &Monitor{
		conn:        conn,
		logger:      logger.With("module", "monitor"),
		pingTimeout: 3 * time.Second,
		mode:        ModeOffline,
		changes:     events.NewBus[Mode](),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

func (m *Monitor) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Backend returns the backend when it is currently reachable.
func (m *Monitor) Backend() (Backend, bool) {
	if m.conn == nil || m.Mode() != ModeOnline {
		return nil, false
	}
	return m.conn, true
}

// OnChange registers fn for mode transitions.
func (m *Monitor) OnChange(fn func(Mode)) (unsubscribe func()) {
	return m.changes.Subscribe(fn)
}

// Check pings once and updates the mode. Coming online re-reads the
// backend's capabilities; if that fails the backend stays offline.
func (m *Monitor) Check(ctx context.Context) Mode {
	if m.conn == nil {
		return ModeOffline
	}

	ctx, cancel := context.WithTimeout(ctx, m.pingTimeout)
	defer cancel()

	next := ModeOnline
	if err := m.conn.Ping(ctx); err != nil {
		m.logger.Debug(ctx, "backend ping failed", "error", err)
		next = ModeOffline
	} else if m.Mode() != ModeOnline {
		if err := m.conn.RefreshCapabilities(ctx); err != nil {
			m.logger.Warn(ctx, "failed to read backend capabilities", "error", err)
			next = ModeOffline
		}
	}

	m.setMode(ctx, next)
	return next
}

func (m *Monitor) setMode(ctx context.Context, mode Mode) {
	m.mu.Lock()
	changed := m.mode != mode
	m.mode = mode
	m.mu.Unlock()

	if changed {
		m.logger.Info(ctx, "switched mode", "mode", mode, "capabilities", m.conn.Capabilities().String())
		m.changes.Publish(mode)
	}
}

// Run checks immediately and then on every interval until ctx is done.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	m.Check(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
