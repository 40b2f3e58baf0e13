// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordHasher defines the interface for password hashing and comparison.
type PasswordHasher interface {
	// Hash computes a one-way digest of the plaintext password.
	Hash(plaintext string) (string, error)

	// Compare checks a plaintext password against a stored digest.
	Compare(hash, plaintext string) error
}
