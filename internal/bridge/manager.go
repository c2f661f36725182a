// Package bridge is the websocket plumbing between served pages and their
// install controllers. Each page connection becomes a Session with its own
// controller; the manager is the registry plus the fan-out for session
// change events.
package bridge

import (
	"log"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"

	"appshell/internal/config"
	"appshell/internal/install"
	"appshell/internal/instructions"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 16384,
	// Allow connections from the Wails webview (localhost, file://, etc.)
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionInfo is one attached page as reported by the sessions API.
type SessionInfo struct {
	install.Status
	Remote      string `json:"remote"`
	ConnectedAt int64  `json:"connected_at"`
	Ready       bool   `json:"ready"`
}

// SessionEvent notes a change in the session registry, for the live stream.
type SessionEvent struct {
	Type    string      `json:"type"` // "attach", "update" or "detach"
	Session SessionInfo `json:"session"`
}

// Manager owns all page sessions of a running shell.
type Manager struct {
	cfg    config.Config
	guides *instructions.Set

	mu       sync.RWMutex
	sessions map[string]*Session

	listenerMu sync.RWMutex
	listeners  map[chan SessionEvent]struct{}
}

// New creates a session manager for the given config.
func New(cfg config.Config, guides *instructions.Set) *Manager {
	return &Manager{
		cfg:       cfg,
		guides:    guides,
		sessions:  make(map[string]*Session),
		listeners: make(map[chan SessionEvent]struct{}),
	}
}

// HandleSocket upgrades a page connection and runs its session until the
// socket dies. Mounted at /api/install/socket.
func (m *Manager) HandleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("BRIDGE: websocket upgrade error: %v", err)
		return
	}

	s := newSession(m, conn, r.RemoteAddr)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("BRIDGE: session %s connected from %s", s.ID, r.RemoteAddr)

	s.readLoop()

	m.mu.Lock()
	delete(m.sessions, s.ID)
	m.mu.Unlock()

	log.Printf("BRIDGE: session %s disconnected", s.ID)
	m.notify("detach", s.Info())
}

// Sessions returns a snapshot of all attached pages, oldest first.
func (m *Manager) Sessions() []SessionInfo {
	m.mu.RLock()
	out := make([]SessionInfo, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Info())
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].ConnectedAt != out[j].ConnectedAt {
			return out[i].ConnectedAt < out[j].ConnectedAt
		}
		return out[i].Session < out[j].Session
	})
	return out
}

// Count returns the number of attached pages.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// BroadcastSiteUpdated tells every attached page that the site content
// changed. Dev mode uses it to reload pages after an edit.
func (m *Manager) BroadcastSiteUpdated(version string) {
	m.mu.RLock()
	targets := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		targets = append(targets, s)
	}
	m.mu.RUnlock()

	for _, s := range targets {
		if err := s.sendCommand(Command{Cmd: CmdSiteUpdated, Version: version}); err != nil {
			log.Printf("BRIDGE: session %s site update push failed: %v", s.ID, err)
		}
	}
	log.Printf("BRIDGE: pushed site version %s to %d session(s)", version, len(targets))
}

// Subscribe returns a channel that receives session change events.
func (m *Manager) Subscribe() (ch chan SessionEvent, cancel func()) {
	ch = make(chan SessionEvent, 64)

	m.listenerMu.Lock()
	m.listeners[ch] = struct{}{}
	m.listenerMu.Unlock()

	cancel = func() {
		m.listenerMu.Lock()
		if _, ok := m.listeners[ch]; ok {
			delete(m.listeners, ch)
			close(ch)
		}
		m.listenerMu.Unlock()
	}
	return ch, cancel
}

func (m *Manager) notify(typ string, info SessionInfo) {
	evt := SessionEvent{Type: typ, Session: info}

	m.listenerMu.RLock()
	for ch := range m.listeners {
		select {
		case ch <- evt:
		default:
		}
	}
	m.listenerMu.RUnlock()
}

// Close tears down all sessions and listeners.
func (m *Manager) Close() {
	m.mu.Lock()
	for _, s := range m.sessions {
		s.close()
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	m.listenerMu.Lock()
	for ch := range m.listeners {
		close(ch)
	}
	m.listeners = make(map[chan SessionEvent]struct{})
	m.listenerMu.Unlock()
}
