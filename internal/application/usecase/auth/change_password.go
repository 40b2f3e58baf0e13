// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/secure-login/system/internal/application/adapter"
	domainerror "github.com/secure-login/system/internal/domain/error"
	"github.com/secure-login/system/internal/domain/policy"
)

// ChangePasswordInput represents the input for a password change.
type ChangePasswordInput struct {
	Username        string
	CurrentPassword string
	NewPassword     string
}

// ChangePasswordOutput represents the output of a password change.
type ChangePasswordOutput struct {
	Message string
}

// ChangePasswordUseCase handles password change logic.
type ChangePasswordUseCase struct {
	store     adapter.CredentialStore
	policyCfg policy.Config
	audit     adapter.AuditSink
}

// NewChangePasswordUseCase creates a new ChangePasswordUseCase instance.
func NewChangePasswordUseCase(
	store adapter.CredentialStore,
	policyCfg policy.Config,
	audit adapter.AuditSink,
) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		store:     store,
		policyCfg: policyCfg,
		audit:     audit,
	}
}

// Execute changes the user's password. The new password is policy-checked
// before storage is touched; the store then re-verifies the current password
// and swaps the hash in a single transaction.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) (*ChangePasswordOutput, error) {
	if result := policy.Evaluate(input.NewPassword, uc.policyCfg); !result.Passed {
		return nil, domainerror.NewWeakPasswordError(result.Failed)
	}

	if input.NewPassword == input.CurrentPassword {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodePasswordReused,
			"new password must differ from the current password",
			domainerror.ErrPasswordReused,
		)
	}

	if err := uc.store.UpdatePassword(ctx, input.Username, input.CurrentPassword, input.NewPassword); err != nil {
		if errors.Is(err, domainerror.ErrInvalidCredentials) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidCredentials,
				"invalid username or password",
				domainerror.ErrInvalidCredentials,
			)
		}
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	uc.audit.PasswordChanged(input.Username)

	return &ChangePasswordOutput{Message: "Password changed successfully"}, nil
}
