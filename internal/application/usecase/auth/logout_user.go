// Package auth contains authentication-related use cases.
package auth

import (
	"context"

	"github.com/secure-login/system/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	Session *Session
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	audit adapter.AuditSink
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(audit adapter.AuditSink) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		audit: audit,
	}
}

// Execute signs the session out. Logging out an anonymous session is a no-op,
// not an error.
func (uc *LogoutUserUseCase) Execute(_ context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	if input.Session == nil || !input.Session.Authenticated() {
		return &LogoutUserOutput{Message: "No user signed in"}, nil
	}

	username := input.Session.Username()
	input.Session.SignOut()
	uc.audit.LoggedOut(username)

	return &LogoutUserOutput{Message: "Successfully logged out"}, nil
}
