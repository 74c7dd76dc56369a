package domain

// SessionResult is the uniform envelope every engine entry point returns.
type SessionResult struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId,omitempty"`
	// Tree holds the accessibility or DOM tree for tree queries.
	Tree    any    `json:"tree,omitempty"`
	Message string `json:"message,omitempty"`
}

// Failed builds an unsuccessful result carrying msg.
func Failed(msg string) SessionResult {
	return SessionResult{Success: false, Message: msg}
}
