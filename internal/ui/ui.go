// Package ui holds the shell's own pages: the status page, the handbook and
// the install guide pages.
package ui

import "embed"

//go:embed all:templates
var TemplatesFS embed.FS
