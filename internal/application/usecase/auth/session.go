// Package auth contains authentication-related use cases.
package auth

import "time"

// Session is the per-process authentication state machine:
// Anonymous -> Authenticated -> Anonymous. It is never persisted.
type Session struct {
	username     string
	idleTimeout  time.Duration
	lastActivity time.Time

	now func() time.Time
}

// NewSession creates an anonymous session. A non-positive idle timeout
// disables expiry.
func NewSession(idleTimeout time.Duration) *Session {
	return &Session{
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// SignIn transitions the session to Authenticated for the given username.
func (s *Session) SignIn(username string) {
	s.username = username
	s.lastActivity = s.now()
}

// SignOut returns the session to Anonymous. Signing out an anonymous session
// is a no-op.
func (s *Session) SignOut() {
	s.username = ""
	s.lastActivity = time.Time{}
}

// Authenticated reports whether a user is currently signed in.
func (s *Session) Authenticated() bool {
	return s.username != ""
}

// Username returns the signed-in username, or the empty string when anonymous.
func (s *Session) Username() string {
	return s.username
}

// Touch refreshes the session's activity timestamp.
func (s *Session) Touch() {
	if s.Authenticated() {
		s.lastActivity = s.now()
	}
}

// Expired reports whether the session has been idle longer than the timeout.
func (s *Session) Expired() bool {
	if !s.Authenticated() || s.idleTimeout <= 0 {
		return false
	}
	return s.now().Sub(s.lastActivity) > s.idleTimeout
}
