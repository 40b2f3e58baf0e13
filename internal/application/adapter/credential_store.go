// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/secure-login/system/internal/domain/entity"
)

// CredentialStore defines the interface for credential persistence operations.
// The store owns hashing on write and hash comparison on read; callers never
// see or supply password hashes directly.
type CredentialStore interface {
	// Create hashes the plaintext and inserts a new credential record.
	// Returns ErrUsernameTaken if the username is already registered; the
	// uniqueness check and the insert are atomic.
	Create(ctx context.Context, username, plaintext string) error

	// Verify looks up the username and compares the plaintext against the
	// stored hash, updating the last-login timestamp in the same transaction.
	// Unknown usernames and wrong passwords both return ErrInvalidCredentials.
	Verify(ctx context.Context, username, plaintext string) error

	// Exists reports whether a credential record exists for the username.
	// Best-effort probe for early feedback; the authoritative uniqueness
	// check is the atomic insert in Create.
	Exists(ctx context.Context, username string) (bool, error)

	// UpdatePassword re-verifies the current password and replaces the stored
	// hash with a hash of the new password, atomically.
	UpdatePassword(ctx context.Context, username, current, newPassword string) error

	// FindByUsername retrieves a credential record by username.
	FindByUsername(ctx context.Context, username string) (*entity.Credential, error)
}
