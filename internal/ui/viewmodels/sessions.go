// internal/ui/viewmodels/sessions.go

package viewmodels

import (
	"sort"
	"time"

	"appshell/internal/bridge"
)

type SessionRow struct {
	ID         string
	Class      string
	State      string
	Standalone bool
	Shown      bool
	Prompting  bool
	Remote     string
	Connected  time.Time
	Ready      bool
}

type StatusVM struct {
	BaseVM
	Addr     string
	SiteDir  string
	Sessions []SessionRow
	LogTail  []string
}

func BuildSessionRows(infos []bridge.SessionInfo) []SessionRow {
	rows := make([]SessionRow, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, SessionRow{
			ID:         info.Session,
			Class:      string(info.Class),
			State:      string(info.State),
			Standalone: info.Standalone,
			Shown:      info.Shown,
			Prompting:  info.Prompting,
			Remote:     info.Remote,
			Connected:  time.UnixMilli(info.ConnectedAt),
			Ready:      info.Ready,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Connected.Before(rows[j].Connected) })
	return rows
}
