// Package routes: swaggo annotation stubs.
// Each function below is a documentation stub only; the real handler logic
// lives in the closures passed to handleGet/mux.HandleFunc. Run `go generate`
// from the project root to regenerate ./internal/openapi/.
package routes

// ── Request / Response types ─────────────────────────────────────────────────

// sessionInfo is one connected page in the sessions API.
type sessionInfo struct {
	Session     string `json:"session"       example:"0f8a1c2e-5b7d-4e91-a3f6-8c2d9b4e7a10"`
	State       string `json:"state"         example:"armed"`
	Class       string `json:"class"         example:"ios"`
	Standalone  bool   `json:"standalone"    example:"false"`
	ButtonShown bool   `json:"button_shown"  example:"true"`
	Prompting   bool   `json:"prompting"     example:"false"`
	Remote      string `json:"remote"        example:"127.0.0.1:52114"`
	ConnectedAt int64  `json:"connected_at"  example:"1755950400000"`
	Ready       bool   `json:"ready"         example:"true"`
}

// logEntry is one buffered shell log line.
type logEntry struct {
	TS  string `json:"ts"  example:"2025-08-23T10:15:04.731Z"`
	Msg string `json:"msg" example:"INSTALL: session 0f8a1c2e armed"`
}

// ── Install ──────────────────────────────────────────────────────────────────

// swagInstallSocket is a documentation stub for GET /api/install/socket.
//
//	@Summary	WebSocket bridge between a served page and its install controller
//	@Description	The page shim connects here on load and speaks JSON frames.\nPage to shell events: ready, can_install, button_click, installed, prompt_outcome, worker_result.\nShell to page commands: register_worker, show_button, remove_button, show_instructions, prompt, site_updated.
//	@Tags		install
//	@Success	101	{string}	string	"WebSocket upgrade"
//	@Router		/api/install/socket [get]
func swagInstallSocket() {}

// swagInstallSessions is a documentation stub for GET /api/install/sessions.
//
//	@Summary	Snapshot of all connected page sessions
//	@Tags		install
//	@Produce	json
//	@Success	200	{array}	sessionInfo
//	@Router		/api/install/sessions [get]
func swagInstallSessions() {}

// swagInstallStream is a documentation stub for GET /api/install/stream.
//
//	@Summary	SSE stream of session registry changes
//	@Description	First frame is a snapshot event with all current sessions.\nThen attach, update and detach events as pages come, change and go.\nComment pings every 25 s keep proxies from closing the stream.
//	@Tags		install
//	@Produce	text/event-stream
//	@Success	200	{string}	string	"SSE stream"
//	@Router		/api/install/stream [get]
func swagInstallStream() {}

// ── Logs ─────────────────────────────────────────────────────────────────────

// swagLogsSnapshot is a documentation stub for GET /api/logs.
//
//	@Summary	Recent shell log lines, oldest first
//	@Tags		logs
//	@Produce	json
//	@Param		tail	query	int	false	"Only the newest N lines"
//	@Success	200	{array}	logEntry
//	@Router		/api/logs [get]
func swagLogsSnapshot() {}

// swagLogsStream is a documentation stub for GET /api/logs/stream.
//
//	@Summary	SSE stream of new shell log lines
//	@Tags		logs
//	@Produce	text/event-stream
//	@Success	200	{string}	string	"SSE stream"
//	@Router		/api/logs/stream [get]
func swagLogsStream() {}

// ── Spec ─────────────────────────────────────────────────────────────────────

// swagOpenAPISpec is a documentation stub for GET /openapi.json.
//
//	@Summary	This OpenAPI spec (generated by swaggo/swag)
//	@Tags		spec
//	@Produce	application/json
//	@Success	200	{object}	map[string]any
//	@Router		/openapi.json [get]
func swagOpenAPISpec() {}
