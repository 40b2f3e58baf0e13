// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// Outcome labels the result of an audited operation.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// AuditSink receives discrete security events. Implementations decide how and
// where events are recorded; callers never depend on the outcome of a
// notification. Passwords must never be passed to a sink.
type AuditSink interface {
	// RegistrationAttempted records a registration attempt and its outcome.
	RegistrationAttempted(username string, outcome Outcome, reason string)

	// LoginAttempted records a login attempt and its outcome.
	LoginAttempted(username string, outcome Outcome, reason string)

	// PasswordChanged records a successful password change.
	PasswordChanged(username string)

	// LoggedOut records a user signing out.
	LoggedOut(username string)
}
