// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/secure-login/system/internal/application/adapter"
	domainerror "github.com/secure-login/system/internal/domain/error"
)

const (
	// SchemeSHA256 is the legacy unsalted single-round digest scheme.
	SchemeSHA256 = "sha256"
	// SchemeBcrypt is the salted adaptive scheme.
	SchemeBcrypt = "bcrypt"

	// bcryptCost is the cost factor for bcrypt hashing.
	bcryptCost = 12
)

// NewPasswordHasher creates a hasher for the configured scheme.
func NewPasswordHasher(scheme string) (adapter.PasswordHasher, error) {
	switch scheme {
	case SchemeSHA256:
		return &sha256Hasher{}, nil
	case SchemeBcrypt:
		return &bcryptHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hash scheme %q", scheme)
	}
}

// sha256Hasher implements adapter.PasswordHasher with an unsalted hex SHA-256
// digest. This matches the historical credential format, so existing records
// remain verifiable, but it is weak against offline attacks: prefer
// SchemeBcrypt for new installations.
type sha256Hasher struct{}

// Hash computes the hex-encoded SHA-256 digest of the plaintext.
func (h *sha256Hasher) Hash(plaintext string) (string, error) {
	digest := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(digest[:]), nil
}

// Compare checks the plaintext against a stored digest in constant time.
func (h *sha256Hasher) Compare(hash, plaintext string) error {
	computed := sha256.Sum256([]byte(plaintext))
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return domainerror.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare(computed[:], expected) != 1 {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

// bcryptHasher implements adapter.PasswordHasher using bcrypt with cost 12.
type bcryptHasher struct{}

// Hash hashes the plaintext with a per-record salt.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Compare checks the plaintext against a stored bcrypt hash.
func (h *bcryptHasher) Compare(hash, plaintext string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)); err != nil {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}
