// Package platform classifies a browser environment from the read-only
// signals a page reports when it attaches: user agent, platform identifier,
// touch-point count and the two standalone flags. Classification is a pure
// function over a Signals value so it can be exercised with synthetic inputs,
// without a browser anywhere near the test.
package platform

import "strings"

// Class is the device family an environment resolves to.
type Class string

const (
	IOS    Class = "ios"
	IPadOS Class = "ipados"
	MacOS  Class = "macos"
	Other  Class = "other"
)

// Apple reports whether the class is one of the platforms that never emit
// the native can-install signal and need manual install guidance instead.
func (c Class) Apple() bool {
	return c == IOS || c == IPadOS || c == MacOS
}

// Signals holds the environment values a page reports on attach. All fields
// are read-only queries; none of them change for the lifetime of a session.
type Signals struct {
	UserAgent           string `json:"user_agent"`
	Platform            string `json:"platform"`
	MaxTouchPoints      int    `json:"max_touch_points"`
	DisplayStandalone   bool   `json:"display_standalone"`
	NavigatorStandalone bool   `json:"navigator_standalone"`
}

// Standalone reports whether the page is already running as an installed app.
// Either the display-mode media query or the navigator flag is sufficient;
// Safari only sets the latter.
func (s Signals) Standalone() bool {
	return s.DisplayStandalone || s.NavigatorStandalone
}

// Classify resolves the device family for the given signals.
//
// Order matters: since iPadOS 13 an iPad reports the desktop platform string
// "MacIntel", so the multi-touch disambiguation has to run before the Mac
// prefix check or every modern iPad would classify as a desktop Mac.
func Classify(s Signals) Class {
	if s.Platform == "MacIntel" && s.MaxTouchPoints > 1 {
		return IPadOS
	}
	ua := strings.ToLower(s.UserAgent)
	if strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad") || strings.Contains(ua, "ipod") {
		return IOS
	}
	if strings.HasPrefix(s.Platform, "Mac") {
		return MacOS
	}
	return Other
}
