package domain

import "time"

// Session represents an authenticated client holding a refresh token.
// The refresh token itself is never stored, only its hash.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"` // Never serialized
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
	LastSeenAt       time.Time `json:"last_seen_at"`
	IPAddress        string    `json:"ip_address,omitempty"`
	ClientName       string    `json:"client_name,omitempty"`
	Platform         string    `json:"platform,omitempty"`
}

// Touch updates the LastSeenAt timestamp to the current time.
func (s *Session) Touch() {
	s.LastSeenAt = time.Now()
}

// IsExpired returns true if the session's refresh token has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
