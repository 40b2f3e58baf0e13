// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/secure-login/system/internal/application/adapter"
	domainerror "github.com/secure-login/system/internal/domain/error"
	"github.com/secure-login/system/internal/domain/policy"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Username        string `validate:"required,max=64,printascii,excludesall= "`
	Password        string
	ConfirmPassword string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	Username string
}

// RegisterUserUseCase handles user registration logic. Registration never
// signs the user in; a successful registration is followed by a normal login.
type RegisterUserUseCase struct {
	store     adapter.CredentialStore
	policyCfg policy.Config
	audit     adapter.AuditSink
	validate  *validator.Validate
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	store adapter.CredentialStore,
	policyCfg policy.Config,
	audit adapter.AuditSink,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		store:     store,
		policyCfg: policyCfg,
		audit:     audit,
		validate:  validator.New(),
	}
}

// Execute performs the user registration. Confirmation mismatch and password
// weakness are checked before touching storage so the caller gets the most
// specific feedback without unnecessary store calls.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	// Validate username shape
	if err := uc.validate.Struct(input); err != nil {
		uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "invalid_username")
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"username must be non-empty printable text without spaces",
			domainerror.ErrInvalidUsername,
		)
	}

	// Confirmation must match before anything else
	if input.Password != input.ConfirmPassword {
		uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "password_mismatch")
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodePasswordMismatch,
			"passwords do not match",
			domainerror.ErrPasswordMismatch,
		)
	}

	// Validate password strength
	if result := policy.Evaluate(input.Password, uc.policyCfg); !result.Passed {
		uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "weak_password")
		return nil, domainerror.NewWeakPasswordError(result.Failed)
	}

	// Friendly early check; the unique index in the store remains authoritative
	exists, err := uc.store.Exists(ctx, input.Username)
	if err != nil {
		uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "storage_error")
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "username_taken")
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameTaken,
			"username already exists",
			domainerror.ErrUsernameTaken,
		)
	}

	// Create the credential record
	if err := uc.store.Create(ctx, input.Username, input.Password); err != nil {
		if errors.Is(err, domainerror.ErrUsernameTaken) {
			uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "username_taken")
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUsernameTaken,
				"username already exists",
				domainerror.ErrUsernameTaken,
			)
		}
		uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeFailure, "storage_error")
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	uc.audit.RegistrationAttempted(input.Username, adapter.OutcomeSuccess, "")

	return &RegisterUserOutput{Username: input.Username}, nil
}
