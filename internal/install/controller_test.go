package install

import (
	"context"
	"sync"
	"testing"
	"time"

	"appshell/internal/platform"
)

// fakeSurface records every command a controller issues.
type fakeSurface struct {
	mu           sync.Mutex
	showCalls    int
	removeCalls  int
	instructions []platform.Class
	workerPaths  []string
}

func (f *fakeSurface) ShowButton() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showCalls++
	return nil
}

func (f *fakeSurface) RemoveButton() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	return nil
}

func (f *fakeSurface) ShowInstructions(class platform.Class) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.instructions = append(f.instructions, class)
	return nil
}

func (f *fakeSurface) RegisterWorker(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workerPaths = append(f.workerPaths, path)
	return nil
}

func (f *fakeSurface) counts() (show, remove int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showCalls, f.removeCalls
}

// fakeHandle resolves a prompt with a fixed outcome. A non-nil release
// channel blocks resolution until the test closes it.
type fakeHandle struct {
	outcome Outcome
	err     error
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func (h *fakeHandle) Prompt(ctx context.Context) (Outcome, error) {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()
	if h.release != nil {
		<-h.release
	}
	return h.outcome, h.err
}

func (h *fakeHandle) promptCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

// manualTimer collects scheduled actions so tests decide when they fire.
type manualTimer struct {
	mu  sync.Mutex
	fns []func()
}

func (m *manualTimer) After(d time.Duration, fn func()) {
	m.mu.Lock()
	m.fns = append(m.fns, fn)
	m.mu.Unlock()
}

func (m *manualTimer) fire() {
	m.mu.Lock()
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (m *manualTimer) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestNativePromptFlow(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeAccepted, OutcomeDismissed} {
		t.Run(string(outcome), func(t *testing.T) {
			surface := &fakeSurface{}
			c := New(surface, Options{Session: "s1", Class: platform.Other})

			// can-install arms the controller and renders the button.
			h := &fakeHandle{outcome: outcome}
			c.CanInstall(h)
			if got := c.State(); got != StateArmed {
				t.Fatalf("after can-install state = %q, want %q", got, StateArmed)
			}
			if show, _ := surface.counts(); show != 1 {
				t.Fatalf("expected 1 show call, got %d", show)
			}

			// Click consumes the handle exactly once, whatever the outcome.
			c.ButtonActivated(context.Background())
			if got := h.promptCalls(); got != 1 {
				t.Fatalf("prompt invoked %d times, want 1", got)
			}
			if got := c.State(); got != StateConsumed {
				t.Fatalf("after prompt state = %q, want %q", got, StateConsumed)
			}
			if _, remove := surface.counts(); remove != 1 {
				t.Fatalf("expected 1 remove call, got %d", remove)
			}
			if st := c.Status(); st.Shown {
				t.Fatal("button still marked shown after consumption")
			}

			// A trailing installed signal must be a harmless no-op.
			c.Installed()
			if _, remove := surface.counts(); remove != 1 {
				t.Fatalf("installed after consumption removed again: %d calls", remove)
			}
		})
	}
}

func TestProactiveAppleButton(t *testing.T) {
	surface := &fakeSurface{}
	timer := &manualTimer{}
	c := New(surface, Options{
		Session:    "s1",
		Class:      platform.IOS,
		WorkerPath: "/sw.js",
		ShowDelay:  1500 * time.Millisecond,
		After:      timer.After,
	})
	c.Start()

	// Worker registration is requested on attach.
	if len(surface.workerPaths) != 1 || surface.workerPaths[0] != "/sw.js" {
		t.Fatalf("worker registration requests = %v, want [/sw.js]", surface.workerPaths)
	}

	// No button before the delay elapses, and no can-install signal ever.
	if show, _ := surface.counts(); show != 0 {
		t.Fatalf("button shown before delay: %d calls", show)
	}
	timer.fire()
	if show, _ := surface.counts(); show != 1 {
		t.Fatalf("expected 1 show call after delay, got %d", show)
	}

	// Clicking without a capability opens the iOS instructions, and the
	// capability state stays untouched.
	c.ButtonActivated(context.Background())
	if len(surface.instructions) != 1 || surface.instructions[0] != platform.IOS {
		t.Fatalf("instructions = %v, want [ios]", surface.instructions)
	}
	if got := c.State(); got != StateIdle {
		t.Fatalf("fallback click changed state to %q", got)
	}
}

func TestProactiveSkips(t *testing.T) {
	t.Run("standalone", func(t *testing.T) {
		surface := &fakeSurface{}
		timer := &manualTimer{}
		c := New(surface, Options{Class: platform.IOS, Standalone: true, After: timer.After})
		c.Start()
		if timer.pending() != 0 {
			t.Fatal("timer scheduled despite standalone mode")
		}
	})

	t.Run("non-apple", func(t *testing.T) {
		surface := &fakeSurface{}
		timer := &manualTimer{}
		c := New(surface, Options{Class: platform.Other, After: timer.After})
		c.Start()
		if timer.pending() != 0 {
			t.Fatal("timer scheduled for a prompting platform")
		}
	})

	t.Run("fires after consumed", func(t *testing.T) {
		surface := &fakeSurface{}
		timer := &manualTimer{}
		c := New(surface, Options{Class: platform.MacOS, After: timer.After})
		c.Start()
		c.Installed()
		timer.fire()
		if show, _ := surface.counts(); show != 0 {
			t.Fatalf("stale timer still showed the button: %d calls", show)
		}
	})
}

func TestInstalledIdempotent(t *testing.T) {
	surface := &fakeSurface{}
	c := New(surface, Options{Session: "s1", Class: platform.Other})

	// Installed with no button present.
	c.Installed()
	c.Installed()
	if _, remove := surface.counts(); remove != 0 {
		t.Fatalf("remove issued with no button shown: %d calls", remove)
	}
	if got := c.State(); got != StateConsumed {
		t.Fatalf("state = %q, want %q", got, StateConsumed)
	}

	// Installed with a visible button removes it once.
	surface2 := &fakeSurface{}
	c2 := New(surface2, Options{Session: "s2", Class: platform.Other})
	c2.CanInstall(&fakeHandle{outcome: OutcomeAccepted})
	c2.Installed()
	c2.Installed()
	if _, remove := surface2.counts(); remove != 1 {
		t.Fatalf("expected 1 remove call, got %d", remove)
	}
}

func TestRearmReplacesHandle(t *testing.T) {
	surface := &fakeSurface{}
	c := New(surface, Options{Session: "s1", Class: platform.Other})

	h1 := &fakeHandle{outcome: OutcomeAccepted}
	h2 := &fakeHandle{outcome: OutcomeAccepted}
	c.CanInstall(h1)
	c.CanInstall(h2)

	// Re-arming keeps the existing button.
	if show, _ := surface.counts(); show != 1 {
		t.Fatalf("expected 1 show call, got %d", show)
	}

	c.ButtonActivated(context.Background())
	if h1.promptCalls() != 0 {
		t.Fatal("stale handle was prompted")
	}
	if h2.promptCalls() != 1 {
		t.Fatalf("replacement handle prompted %d times, want 1", h2.promptCalls())
	}
}

func TestClickWhilePromptInFlight(t *testing.T) {
	surface := &fakeSurface{}
	c := New(surface, Options{Session: "s1", Class: platform.IOS})

	h := &fakeHandle{outcome: OutcomeAccepted, release: make(chan struct{})}
	c.CanInstall(h)

	go c.ButtonActivated(context.Background())
	waitFor(t, "prompt in flight", func() bool { return c.Status().Prompting })

	// The second click must neither re-prompt nor open instructions.
	c.ButtonActivated(context.Background())
	if h.promptCalls() != 1 {
		t.Fatalf("prompt invoked %d times, want 1", h.promptCalls())
	}
	if len(surface.instructions) != 0 {
		t.Fatalf("instructions opened during prompt: %v", surface.instructions)
	}

	close(h.release)
	waitFor(t, "consumption", func() bool { return c.State() == StateConsumed })
	if _, remove := surface.counts(); remove != 1 {
		t.Fatalf("expected 1 remove call, got %d", remove)
	}
}

func TestRearmDuringPromptStaysArmed(t *testing.T) {
	surface := &fakeSurface{}
	c := New(surface, Options{Session: "s1", Class: platform.Other})

	h1 := &fakeHandle{outcome: OutcomeDismissed, release: make(chan struct{})}
	c.CanInstall(h1)
	go c.ButtonActivated(context.Background())
	waitFor(t, "prompt in flight", func() bool { return c.Status().Prompting })

	// A fresh capability arrives while the old prompt is on screen.
	h2 := &fakeHandle{outcome: OutcomeAccepted}
	c.CanInstall(h2)
	close(h1.release)
	waitFor(t, "prompt settled", func() bool { return !c.Status().Prompting })

	if got := c.State(); got != StateArmed {
		t.Fatalf("state = %q after raced re-arm, want %q", got, StateArmed)
	}
	if _, remove := surface.counts(); remove != 0 {
		t.Fatalf("button removed despite fresh handle: %d calls", remove)
	}

	// The fresh handle still works.
	c.ButtonActivated(context.Background())
	if h2.promptCalls() != 1 {
		t.Fatalf("fresh handle prompted %d times, want 1", h2.promptCalls())
	}
	if got := c.State(); got != StateConsumed {
		t.Fatalf("state = %q, want %q", got, StateConsumed)
	}
}

func TestIdleClickOutsideApple(t *testing.T) {
	surface := &fakeSurface{}
	c := New(surface, Options{Session: "s1", Class: platform.Other})
	c.ButtonActivated(context.Background())
	if len(surface.instructions) != 0 {
		t.Fatalf("instructions shown for %q: %v", platform.Other, surface.instructions)
	}
}

func TestDisabledController(t *testing.T) {
	surface := &fakeSurface{}
	timer := &manualTimer{}
	c := New(surface, Options{
		Session:    "s1",
		Class:      platform.IOS,
		WorkerPath: "/sw.js",
		Disabled:   true,
		After:      timer.After,
	})
	c.Start()
	c.CanInstall(&fakeHandle{outcome: OutcomeAccepted})

	if len(surface.workerPaths) != 0 {
		t.Fatal("worker registration requested while disabled")
	}
	if timer.pending() != 0 {
		t.Fatal("proactive timer scheduled while disabled")
	}
	if show, _ := surface.counts(); show != 0 {
		t.Fatal("button shown while disabled")
	}
}
