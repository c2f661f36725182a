// internal/webapp/logbuf.go
package webapp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"appshell/internal/util"
)

type LogEntry struct {
	TS  time.Time `json:"ts"`
	Msg string    `json:"msg"`
}

// LogBuffer keeps the newest shell log lines in memory and fans new lines
// out to SSE subscribers. Wire it into log.SetOutput via io.MultiWriter.
type LogBuffer struct {
	mu   sync.Mutex
	ring *util.RingBuffer[LogEntry]
	subs map[chan LogEntry]struct{}

	partial bytes.Buffer
}

func NewLogBuffer(max int) *LogBuffer {
	if max <= 0 {
		max = 500
	}
	return &LogBuffer{
		ring: util.NewRingBuffer[LogEntry](max),
		subs: make(map[chan LogEntry]struct{}),
	}
}

// Write implements io.Writer. Input is split on newlines; a trailing
// fragment is held back until its line completes.
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.partial.Write(p)

	for {
		data := b.partial.Bytes()
		i := bytes.IndexByte(data, '\n')
		if i == -1 {
			break
		}

		line := strings.TrimRight(string(data[:i]), "\r")
		b.partial.Next(i + 1)

		if strings.TrimSpace(line) == "" {
			continue
		}

		e := LogEntry{TS: time.Now(), Msg: line}
		b.ring.Push(e)
		for ch := range b.subs {
			select {
			case ch <- e:
			default:
				// drop on slow subscriber
			}
		}
	}

	return len(p), nil
}

// Tail returns the newest n entries, oldest first. n <= 0 means everything
// buffered.
func (b *LogBuffer) Tail(n int) []LogEntry {
	if n <= 0 {
		return b.ring.Snapshot()
	}
	return b.ring.Tail(n)
}

// TailLines is Tail reduced to the bare lines, for server-rendered pages.
func (b *LogBuffer) TailLines(n int) []string {
	entries := b.Tail(n)
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Msg)
	}
	return out
}

func (b *LogBuffer) Subscribe() (ch chan LogEntry, cancel func()) {
	ch = make(chan LogEntry, 64)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel = func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// GET /api/logs?tail=N
func (b *LogBuffer) ServeLogsJSON(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n := 0
	if raw := r.URL.Query().Get("tail"); raw != "" {
		for _, ch := range raw {
			if ch < '0' || ch > '9' {
				http.Error(w, "bad tail", http.StatusBadRequest)
				return
			}
			n = n*10 + int(ch-'0')
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(b.Tail(n))
}

// GET /api/logs/stream  (Server-Sent Events) - tail only (no snapshot)
func (b *LogBuffer) ServeLogsSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := b.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			payload, _ := json.Marshal(e)
			_, _ = w.Write([]byte("event: message\ndata: " + string(payload) + "\n\n"))
			flusher.Flush()
		}
	}
}
