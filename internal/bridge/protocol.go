package bridge

import "appshell/internal/platform"

// Page → shell event types.
const (
	EvtReady         = "ready"
	EvtCanInstall    = "can_install"
	EvtButtonClick   = "button_click"
	EvtInstalled     = "installed"
	EvtPromptOutcome = "prompt_outcome"
	EvtWorkerResult  = "worker_result"
)

// Shell → page command types.
const (
	CmdRegisterWorker   = "register_worker"
	CmdShowButton       = "show_button"
	CmdRemoveButton     = "remove_button"
	CmdShowInstructions = "show_instructions"
	CmdPrompt           = "prompt"
	CmdSiteUpdated      = "site_updated"
)

// Event is a message the page sends up the socket. One flat shape for all
// types; unused fields stay at their zero values.
type Event struct {
	Type    string            `json:"type"`
	Signals *platform.Signals `json:"signals,omitempty"`
	ID      string            `json:"id,omitempty"`
	Outcome string            `json:"outcome,omitempty"`
	OK      bool              `json:"ok,omitempty"`
	Detail  string            `json:"detail,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Command is a message the shell sends down the socket.
type Command struct {
	Cmd           string `json:"cmd"`
	Path          string `json:"path,omitempty"`
	ContainerID   string `json:"container_id,omitempty"`
	Label         string `json:"label,omitempty"`
	RevealDelayMs int    `json:"reveal_delay_ms,omitempty"`
	HTML          string `json:"html,omitempty"`
	AckLabel      string `json:"ack_label,omitempty"`
	FadeOutMs     int    `json:"fade_out_ms,omitempty"`
	ID            string `json:"id,omitempty"`
	Version       string `json:"version,omitempty"`
}
