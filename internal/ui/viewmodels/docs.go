// internal/ui/viewmodels/docs.go

package viewmodels

import (
	"appshell/internal/docsite"
	"appshell/internal/instructions"
)

type DocsVM struct {
	BaseVM
	Pages []docsite.Page
	Page  docsite.Page
}

type GuideVM struct {
	BaseVM
	Guide instructions.Guide
}
