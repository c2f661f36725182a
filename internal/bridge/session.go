package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"appshell/internal/install"
	"appshell/internal/platform"
	"appshell/internal/util"
)

var ErrSessionClosed = errors.New("session closed")

// Session is one attached page: a websocket connection plus the controller
// driving its install affordance. The session implements install.Surface,
// and its prompt handles pair a prompt command with the matching
// prompt_outcome event by id.
type Session struct {
	ID string

	mgr  *Manager
	conn *websocket.Conn

	ctx    context.Context
	cancel context.CancelFunc

	writeMu sync.Mutex

	mu          sync.RWMutex
	ctrl        *install.Controller
	remote      string
	connectedAt time.Time

	promptMu sync.Mutex
	prompts  map[string]chan promptResult

	closeOnce sync.Once
	closed    chan struct{}
}

type promptResult struct {
	outcome install.Outcome
	err     error
}

func newSession(mgr *Manager, conn *websocket.Conn, remote string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:          uuid.NewString(),
		mgr:         mgr,
		conn:        conn,
		ctx:         ctx,
		cancel:      cancel,
		remote:      remote,
		connectedAt: time.Now(),
		prompts:     make(map[string]chan promptResult),
		closed:      make(chan struct{}),
	}
}

// close tears the session down: the socket dies, pending prompts fail and
// the controller is discarded with everything it held.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		s.cancel()
		_ = s.conn.Close()
	})
}

func (s *Session) controller() *install.Controller {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctrl
}

// readLoop pumps page events until the socket dies. It must never block on
// controller work: a button click suspends on the prompt outcome, which
// arrives through this very loop.
func (s *Session) readLoop() {
	defer s.close()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			log.Printf("BRIDGE: session %s bad event: %v", s.ID, err)
			continue
		}
		s.handleEvent(&evt)
	}
}

func (s *Session) handleEvent(evt *Event) {
	if evt.Type != EvtReady && s.controller() == nil {
		log.Printf("BRIDGE: session %s %s before ready, ignored", s.ID, evt.Type)
		return
	}

	switch evt.Type {
	case EvtReady:
		s.handleReady(evt)

	case EvtCanInstall:
		s.controller().CanInstall(s.newPromptHandle())
		s.mgr.notify("update", s.Info())

	case EvtButtonClick:
		// Runs aside the read loop: the prompt await needs the loop free
		// to deliver the outcome event.
		ctrl := s.controller()
		go func() {
			ctx, cancel := context.WithTimeout(s.ctx, util.DefaultPromptTimeout)
			defer cancel()
			ctrl.ButtonActivated(ctx)
			s.mgr.notify("update", s.Info())
		}()

	case EvtInstalled:
		s.controller().Installed()
		s.mgr.notify("update", s.Info())

	case EvtPromptOutcome:
		s.resolvePrompt(evt)

	case EvtWorkerResult:
		s.controller().WorkerResult(evt.OK, evt.Detail)

	default:
		log.Printf("BRIDGE: session %s unknown event %q ignored", s.ID, evt.Type)
	}
}

func (s *Session) handleReady(evt *Event) {
	if evt.Signals == nil {
		log.Printf("BRIDGE: session %s ready without signals, ignored", s.ID)
		return
	}
	if s.controller() != nil {
		log.Printf("BRIDGE: session %s duplicate ready ignored", s.ID)
		return
	}

	sig := *evt.Signals
	class := platform.Classify(sig)
	standalone := sig.Standalone()
	log.Printf("BRIDGE: session %s ready: class=%s standalone=%v touch=%d", s.ID, class, standalone, sig.MaxTouchPoints)

	ic := s.mgr.cfg.Install
	ctrl := install.New(s, install.Options{
		Session:    s.ID,
		Class:      class,
		Standalone: standalone,
		WorkerPath: ic.WorkerPath,
		ShowDelay:  time.Duration(ic.ShowDelayMs) * time.Millisecond,
		Disabled:   ic.Disabled,
	})

	s.mu.Lock()
	s.ctrl = ctrl
	s.mu.Unlock()

	ctrl.Start()
	s.mgr.notify("attach", s.Info())
}

func (s *Session) resolvePrompt(evt *Event) {
	s.promptMu.Lock()
	ch, ok := s.prompts[evt.ID]
	if ok {
		delete(s.prompts, evt.ID)
	}
	s.promptMu.Unlock()

	if !ok {
		log.Printf("BRIDGE: session %s outcome for unknown prompt %q ignored", s.ID, evt.ID)
		return
	}

	var res promptResult
	switch {
	case evt.Error != "":
		res.err = errors.New(evt.Error)
	case evt.Outcome == string(install.OutcomeAccepted):
		res.outcome = install.OutcomeAccepted
	case evt.Outcome == string(install.OutcomeDismissed):
		res.outcome = install.OutcomeDismissed
	default:
		res.err = fmt.Errorf("unknown outcome %q", evt.Outcome)
	}
	ch <- res
}

// --- install.Surface ---

func (s *Session) ShowButton() error {
	ic := s.mgr.cfg.Install
	return s.sendCommand(Command{
		Cmd:           CmdShowButton,
		ContainerID:   ic.ContainerID,
		Label:         ic.ButtonLabel,
		RevealDelayMs: ic.RevealDelayMs,
	})
}

func (s *Session) RemoveButton() error {
	return s.sendCommand(Command{Cmd: CmdRemoveButton})
}

func (s *Session) ShowInstructions(class platform.Class) error {
	g, ok := s.mgr.guides.For(class)
	if !ok {
		return fmt.Errorf("no instructions for %s", class)
	}
	return s.sendCommand(Command{
		Cmd:       CmdShowInstructions,
		HTML:      string(g.HTML),
		AckLabel:  "Got it",
		FadeOutMs: s.mgr.cfg.Install.FadeOutMs,
	})
}

func (s *Session) RegisterWorker(path string) error {
	// Root-absolute so the registration scope covers the origin no matter
	// which page the session attached from.
	return s.sendCommand(Command{
		Cmd:  CmdRegisterWorker,
		Path: "/" + strings.TrimPrefix(path, "/"),
	})
}

func (s *Session) sendCommand(cmd Command) error {
	select {
	case <-s.closed:
		return ErrSessionClosed
	default:
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(cmd)
}

// --- install.PromptHandle ---

// promptHandle is the session-backed single-result future for one native
// prompt invocation.
type promptHandle struct {
	s  *Session
	id string
}

func (s *Session) newPromptHandle() install.PromptHandle {
	return &promptHandle{s: s, id: uuid.NewString()}
}

func (h *promptHandle) Prompt(ctx context.Context) (install.Outcome, error) {
	ch := make(chan promptResult, 1)

	h.s.promptMu.Lock()
	h.s.prompts[h.id] = ch
	h.s.promptMu.Unlock()

	drop := func() {
		h.s.promptMu.Lock()
		delete(h.s.prompts, h.id)
		h.s.promptMu.Unlock()
	}

	if err := h.s.sendCommand(Command{Cmd: CmdPrompt, ID: h.id}); err != nil {
		drop()
		return "", err
	}

	// The platform guarantees exactly one resolution, so the only other
	// exits are the session dying under us or the caller giving up.
	select {
	case res := <-ch:
		return res.outcome, res.err
	case <-h.s.closed:
		drop()
		return "", ErrSessionClosed
	case <-ctx.Done():
		drop()
		return "", ctx.Err()
	}
}

// Info snapshots the session for the sessions API.
func (s *Session) Info() SessionInfo {
	s.mu.RLock()
	ctrl := s.ctrl
	remote := s.remote
	connectedAt := s.connectedAt
	s.mu.RUnlock()

	info := SessionInfo{
		Remote:      remote,
		ConnectedAt: connectedAt.UnixMilli(),
		Ready:       ctrl != nil,
	}
	if ctrl != nil {
		info.Status = ctrl.Status()
	} else {
		info.Status = install.Status{Session: s.ID, State: install.StateIdle}
	}
	return info
}
