// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential represents a persisted credential record for a single username.
// PasswordHash holds the one-way digest of the password; the plaintext is
// never stored. CreatedAt is set once at registration. LastLoginAt stays nil
// until the first successful login and only moves forward afterwards.
type Credential struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// NewCredential creates a new Credential for a freshly registered username.
func NewCredential(username, passwordHash string) *Credential {
	return &Credential{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		LastLoginAt:  nil,
	}
}
