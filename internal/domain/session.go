package domain

import "time"

// Session is one issued bearer credential. The plaintext token is returned to
// the client exactly once at login; only its SHA-256 digest is persisted, so
// sessions can be resolved by digest but never reconstructed from storage.
type Session struct {
	ID        string
	UserID    string
	Digest    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given instant.
// Expiry is evaluated lazily at resolution; a row may outlive its validity.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
