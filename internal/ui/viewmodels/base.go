// internal/ui/viewmodels/base.go

package viewmodels

type BaseVM struct {
	Title       string
	Active      string
	SiteName    string
	Version     string // site content version, empty until computed
	ContentTmpl string
	Debug       bool
}
