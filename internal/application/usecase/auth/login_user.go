// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/secure-login/system/internal/application/adapter"
	domainerror "github.com/secure-login/system/internal/domain/error"
)

// LoginUserInput represents the input for user login. Attempts is the
// caller-owned per-session counter of consecutive failures.
type LoginUserInput struct {
	Username string
	Password string
	Attempts *AttemptCounter
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	Username string
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	store adapter.CredentialStore
	audit adapter.AuditSink
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(store adapter.CredentialStore, audit adapter.AuditSink) *LoginUserUseCase {
	return &LoginUserUseCase{
		store: store,
		audit: audit,
	}
}

// Execute performs the user login. On a failed verification the attempt
// counter is incremented; once it is exhausted the caller receives
// ErrAttemptsExceeded and must stop prompting for this session.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	if input.Attempts != nil && input.Attempts.Exhausted() {
		uc.audit.LoginAttempted(input.Username, adapter.OutcomeFailure, "attempts_exceeded")
		return nil, attemptsExceededError()
	}

	if err := uc.store.Verify(ctx, input.Username, input.Password); err != nil {
		if !errors.Is(err, domainerror.ErrInvalidCredentials) {
			uc.audit.LoginAttempted(input.Username, adapter.OutcomeFailure, "storage_error")
			return nil, fmt.Errorf("failed to verify credentials: %w", err)
		}

		if input.Attempts != nil {
			input.Attempts.Increment()
			if input.Attempts.Exhausted() {
				uc.audit.LoginAttempted(input.Username, adapter.OutcomeFailure, "attempts_exceeded")
				return nil, attemptsExceededError()
			}
		}

		uc.audit.LoginAttempted(input.Username, adapter.OutcomeFailure, "invalid_credentials")
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}

	if input.Attempts != nil {
		input.Attempts.Reset()
	}

	uc.audit.LoginAttempted(input.Username, adapter.OutcomeSuccess, "")

	return &LoginUserOutput{Username: input.Username}, nil
}

func attemptsExceededError() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeAttemptsExceeded,
		"maximum login attempts exceeded",
		domainerror.ErrAttemptsExceeded,
	)
}
