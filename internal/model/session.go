package model

import "time"

// Session is the authenticated user's display name and bearer token.
// The persisted copy is a durability cache only; the in-memory value is
// authoritative while the process is live.
type Session struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Valid reports whether the record looks usable. The token is not
// revalidated against the server before first use.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// DisplayName prefers the full name with the username as fallback.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	if s.Name != "" {
		return s.Name
	}
	return s.Username
}

// Notification is an ephemeral, auto-expiring user-facing status message.
// Each new notification resets the expiry window.
type Notification struct {
	Text   string
	Expiry time.Time
}

func (n Notification) Active(now time.Time) bool {
	return n.Text != "" && now.Before(n.Expiry)
}
