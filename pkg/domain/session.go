package domain

import "fmt"

// SessionType identifies the kind of automation context a session drives.
type SessionType string

const (
	SessionWeb    SessionType = "web"
	SessionMobile SessionType = "mobile"
	SessionAPI    SessionType = "api"
	// SessionMixed is understood by engines but cannot be requested through open-session.
	SessionMixed SessionType = "mixed"
)

// OpenableSessionTypes lists the types accepted by the open-session tool, default first.
var OpenableSessionTypes = []SessionType{SessionWeb, SessionMobile, SessionAPI}

// ParseSessionType validates a caller supplied type. Empty input yields SessionWeb.
func ParseSessionType(s string) (SessionType, error) {
	if s == "" {
		return SessionWeb, nil
	}
	for _, t := range OpenableSessionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedSessionType, s)
}

// Browser names accepted for web sessions.
type Browser string

const (
	BrowserChrome  Browser = "chrome"
	BrowserFirefox Browser = "firefox"
	BrowserEdge    Browser = "edge"
)

// DefaultBrowser is used for web sessions when the caller does not pick one.
const DefaultBrowser = BrowserChrome

// SupportedBrowsers lists the accepted browser names.
var SupportedBrowsers = []Browser{BrowserChrome, BrowserFirefox, BrowserEdge}

// Session is the core's cached view of what the engine reported when a session was opened.
// The engine owns every driver resource behind the identifier.
type Session struct {
	ID   string      `json:"sessionId"`
	Type SessionType `json:"sessionType"`
}
