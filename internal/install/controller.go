package install

import (
	"context"
	"log"
	"sync"
	"time"

	"appshell/internal/platform"
)

// Options configures a Controller for one page session.
type Options struct {
	Session    string         // session id, for log correlation
	Class      platform.Class // classification of the attach signals
	Standalone bool           // page already runs as an installed app
	WorkerPath string         // worker script path; empty disables registration
	ShowDelay  time.Duration  // proactive button delay on Apple platforms
	Disabled   bool           // affordance kill switch

	// After schedules fn once after d. Nil means time.AfterFunc. Tests
	// inject an immediate or manual scheduler here.
	After func(d time.Duration, fn func())
}

// Controller runs the install affordance for a single page session.
//
// State is only ever touched under mu. The two suspension points (the
// prompt-outcome await and the proactive timer) run outside the lock and
// re-check state when they fire, so a fire-once timer never needs cancelling:
// a stale action simply finds nothing to do.
type Controller struct {
	surface Surface
	opts    Options
	after   func(time.Duration, func())

	mu        sync.Mutex
	state     State
	handle    PromptHandle
	shown     bool
	prompting bool
}

// New creates a controller in the Idle state. Call Start once the session
// is attached.
func New(surface Surface, opts Options) *Controller {
	after := opts.After
	if after == nil {
		after = func(d time.Duration, fn func()) { time.AfterFunc(d, fn) }
	}
	return &Controller{
		surface: surface,
		opts:    opts,
		after:   after,
		state:   StateIdle,
	}
}

// Start kicks off the attach-time work: worker registration and, on Apple
// platforms outside standalone mode, the delayed proactive button.
func (c *Controller) Start() {
	if c.opts.Disabled {
		log.Printf("INSTALL: session %s affordance disabled by config", c.opts.Session)
		return
	}

	if c.opts.WorkerPath != "" {
		// Fire-and-forget: the page reports the result once via
		// WorkerResult and nothing else depends on it.
		if err := c.surface.RegisterWorker(c.opts.WorkerPath); err != nil {
			log.Printf("INSTALL: session %s worker registration request failed: %v", c.opts.Session, err)
		}
	}

	// Apple platforms never fire the can-install signal, so the button has
	// to appear on our own initiative. The delay tolerates late DOM
	// readiness on the page.
	if c.opts.Class.Apple() && !c.opts.Standalone {
		c.after(c.opts.ShowDelay, c.proactiveShow)
	}
}

func (c *Controller) proactiveShow() {
	c.mu.Lock()
	if c.state == StateConsumed || c.shown {
		c.mu.Unlock()
		return
	}
	c.shown = true
	c.mu.Unlock()

	log.Printf("INSTALL: session %s showing button proactively (%s)", c.opts.Session, c.opts.Class)
	if err := c.surface.ShowButton(); err != nil {
		log.Printf("INSTALL: session %s show button: %v", c.opts.Session, err)
	}
}

// CanInstall handles the platform's can-install signal. The first signal
// arms the controller; a repeat replaces the stored handle and leaves the
// button alone. The page has already suppressed the default platform UI
// before forwarding, so the custom button is the sole entry point.
func (c *Controller) CanInstall(h PromptHandle) {
	if c.opts.Disabled || h == nil {
		return
	}

	c.mu.Lock()
	rearmed := c.handle != nil
	c.handle = h
	c.state = StateArmed
	show := !c.shown
	if show {
		c.shown = true
	}
	c.mu.Unlock()

	if rearmed {
		log.Printf("INSTALL: session %s re-armed, handle replaced", c.opts.Session)
	} else {
		log.Printf("INSTALL: session %s armed", c.opts.Session)
	}

	if show {
		if err := c.surface.ShowButton(); err != nil {
			log.Printf("INSTALL: session %s show button: %v", c.opts.Session, err)
		}
	}
}

// ButtonActivated handles a click on the install button. With a handle
// armed it runs the native prompt flow; without one it falls through to the
// manual instructions dialog.
func (c *Controller) ButtonActivated(ctx context.Context) {
	c.mu.Lock()
	if c.prompting {
		// A prompt is already on screen; the platform would reject a
		// second invocation of the same handle anyway.
		c.mu.Unlock()
		log.Printf("INSTALL: session %s click ignored, prompt in flight", c.opts.Session)
		return
	}
	h := c.handle
	if h != nil {
		c.prompting = true
	}
	c.mu.Unlock()

	if h == nil {
		c.fallbackInstructions()
		return
	}

	outcome, err := h.Prompt(ctx)

	c.mu.Lock()
	c.prompting = false
	// Only the handle we just consumed gets cleared. A can-install signal
	// that raced the prompt has stored a fresh handle and stays armed.
	consumed := c.handle == h
	if consumed {
		c.handle = nil
		c.state = StateConsumed
		c.shown = false
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("INSTALL: session %s prompt failed: %v", c.opts.Session, err)
	} else {
		log.Printf("INSTALL: session %s user %s the install prompt", c.opts.Session, outcome)
	}

	if consumed {
		if err := c.surface.RemoveButton(); err != nil {
			log.Printf("INSTALL: session %s remove button: %v", c.opts.Session, err)
		}
	}
}

// fallbackInstructions opens the manual dialog when no native capability is
// available, the Apple-platform case. Outside the Apple family, or already
// standalone, there is nothing useful to show.
func (c *Controller) fallbackInstructions() {
	if !c.opts.Class.Apple() || c.opts.Standalone {
		log.Printf("INSTALL: session %s click with no capability and no guidance (%s)", c.opts.Session, c.opts.Class)
		return
	}
	log.Printf("INSTALL: session %s showing %s install instructions", c.opts.Session, c.opts.Class)
	if err := c.surface.ShowInstructions(c.opts.Class); err != nil {
		log.Printf("INSTALL: session %s show instructions: %v", c.opts.Session, err)
	}
}

// Installed handles the platform's installed signal: drop any capability and
// clear the button. Idempotent, and safe when no button exists.
func (c *Controller) Installed() {
	c.mu.Lock()
	c.handle = nil
	c.state = StateConsumed
	wasShown := c.shown
	c.shown = false
	c.mu.Unlock()

	log.Printf("INSTALL: session %s app installed", c.opts.Session)

	// Removal is tolerant of an absent button, but skipping the round trip
	// when we never showed one keeps the wire quiet.
	if wasShown {
		if err := c.surface.RemoveButton(); err != nil {
			log.Printf("INSTALL: session %s remove button: %v", c.opts.Session, err)
		}
	}
}

// WorkerResult records the page's one-shot worker registration report.
// Success and failure are both terminal; nothing retries and nothing else
// depends on the outcome.
func (c *Controller) WorkerResult(ok bool, detail string) {
	if ok {
		log.Printf("INSTALL: session %s worker registered, scope %s", c.opts.Session, detail)
	} else {
		log.Printf("INSTALL: session %s worker registration failed: %s", c.opts.Session, detail)
	}
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns a snapshot for the sessions API.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Session:    c.opts.Session,
		State:      c.state,
		Class:      c.opts.Class,
		Standalone: c.opts.Standalone,
		Shown:      c.shown,
		Prompting:  c.prompting,
	}
}
