// Package error defines domain-specific errors for the Secure Login System.
package error

import (
	"errors"

	"github.com/secure-login/system/internal/domain/policy"
)

// Authentication domain errors.
var (
	// ErrWeakPassword is returned when a password does not meet the policy.
	ErrWeakPassword = errors.New("password does not meet security requirements")

	// ErrPasswordMismatch is returned when the confirmation password differs.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrUsernameTaken is returned when attempting to register an existing username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidUsername is returned when the username fails input validation.
	ErrInvalidUsername = errors.New("invalid username")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	// Unknown usernames and wrong passwords are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrAttemptsExceeded is returned when the login attempt budget is exhausted.
	ErrAttemptsExceeded = errors.New("maximum login attempts exceeded")

	// ErrPasswordReused is returned when a password change supplies a new
	// password equal to the current one.
	ErrPasswordReused = errors.New("new password must differ from the current password")

	// ErrCredentialNotFound is returned when a credential record is not found.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrStorageUnavailable is returned when the credential store cannot be reached.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010001"
	ErrCodePasswordMismatch AuthErrorCode = "AUTH-010002"
	ErrCodeUsernameTaken    AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidUsername  AuthErrorCode = "AUTH-010004"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeAttemptsExceeded   AuthErrorCode = "AUTH-020002"

	// Password change errors (03XXXX)
	ErrCodePasswordReused AuthErrorCode = "AUTH-030001"

	// Storage errors (09XXXX)
	ErrCodeStorageUnavailable AuthErrorCode = "AUTH-090001"
	ErrCodeCredentialNotFound AuthErrorCode = "AUTH-090002"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WeakPasswordError carries the list of unmet policy requirements so the
// presentation layer can render them. It wraps ErrWeakPassword.
type WeakPasswordError struct {
	Failed []policy.Requirement
}

// Error implements the error interface.
func (e *WeakPasswordError) Error() string {
	return ErrWeakPassword.Error()
}

// Unwrap returns ErrWeakPassword so errors.Is matching works.
func (e *WeakPasswordError) Unwrap() error {
	return ErrWeakPassword
}

// NewWeakPasswordError creates a WeakPasswordError from a policy result.
func NewWeakPasswordError(failed []policy.Requirement) *WeakPasswordError {
	return &WeakPasswordError{Failed: failed}
}
