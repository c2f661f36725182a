//
// Install affordance: per-session state machine behind the "Install App"
// button. Each attached page gets its own Controller; everything it holds is
// transient and dies with the session. The page itself stays dumb: it
// forwards raw signals in and applies surface commands out.
package install

import (
	"context"

	"appshell/internal/platform"
)

// State of a controller.
type State string

const (
	// StateIdle means no deferred install capability is held.
	StateIdle State = "idle"
	// StateArmed means a capability is held and the button has been requested.
	StateArmed State = "armed"
	// StateConsumed means the capability was used or invalidated.
	StateConsumed State = "consumed"
)

// Outcome is the user's decision on a native install prompt.
type Outcome string

const (
	OutcomeAccepted  Outcome = "accepted"
	OutcomeDismissed Outcome = "dismissed"
)

// PromptHandle is the deferred install capability captured from a
// can-install signal. Prompt presents the native dialog and resolves to
// exactly one Outcome. Handles are single-shot: the platform guarantees
// exactly one resolution, so the handle carries no cancellation or retry
// semantics of its own.
type PromptHandle interface {
	Prompt(ctx context.Context) (Outcome, error)
}

// Surface is the page-side rendering a controller drives. The production
// implementation forwards commands over the session's websocket; tests
// substitute a fake. All calls are best-effort; a vanished page is not an
// affordance error.
type Surface interface {
	// ShowButton renders the install button into the configured container.
	// The render is idempotent and a missing container is a silent no-op.
	ShowButton() error
	// RemoveButton removes the button, tolerating one that was never shown.
	RemoveButton() error
	// ShowInstructions opens the manual install dialog for the given class.
	ShowInstructions(class platform.Class) error
	// RegisterWorker asks the page to register the background worker script.
	// Fire-and-forget; the result arrives later via Controller.WorkerResult.
	RegisterWorker(path string) error
}

// Status is a read-only snapshot of a controller, as served by the
// sessions API.
type Status struct {
	Session    string         `json:"session"`
	State      State          `json:"state"`
	Class      platform.Class `json:"class"`
	Standalone bool           `json:"standalone"`
	Shown      bool           `json:"button_shown"`
	Prompting  bool           `json:"prompting"`
}
