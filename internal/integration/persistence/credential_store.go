// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/secure-login/system/internal/application/adapter"
	"github.com/secure-login/system/internal/domain/entity"
	domainerror "github.com/secure-login/system/internal/domain/error"
	"github.com/secure-login/system/internal/integration/persistence/model"
)

// credentialStore implements the adapter.CredentialStore interface on gorm.
// It is the only component that writes credential rows; hashing happens here
// so plaintext never crosses the storage boundary.
type credentialStore struct {
	db     *gorm.DB
	hasher adapter.PasswordHasher
}

// NewCredentialStore creates a new credential store instance.
func NewCredentialStore(db *gorm.DB, hasher adapter.PasswordHasher) adapter.CredentialStore {
	return &credentialStore{
		db:     db,
		hasher: hasher,
	}
}

// Create hashes the plaintext and inserts a new credential record. The unique
// index on username makes the existence check and the insert atomic: of two
// concurrent creates for the same username, exactly one succeeds.
func (s *credentialStore) Create(ctx context.Context, username, plaintext string) error {
	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return storageError(err)
	}

	credential := entity.NewCredential(username, hash)
	result := s.db.WithContext(ctx).Create(model.FromEntity(credential))
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.NewAuthError(
				domainerror.ErrCodeUsernameTaken,
				"username already exists",
				domainerror.ErrUsernameTaken,
			)
		}
		return storageError(result.Error)
	}
	return nil
}

// Verify looks up the username, compares the plaintext against the stored
// hash and updates the last-login timestamp, all in one transaction. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *credentialStore) Verify(ctx context.Context, username, plaintext string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var credentialModel model.CredentialModel
		if err := tx.Where("username = ?", username).First(&credentialModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvalidCredentials
			}
			return storageError(err)
		}

		if err := s.hasher.Compare(credentialModel.PasswordHash, plaintext); err != nil {
			return domainerror.ErrInvalidCredentials
		}

		now := time.Now().UTC()
		if err := tx.Model(&model.CredentialModel{}).
			Where("username = ?", username).
			Update("last_login_at", now).Error; err != nil {
			return storageError(err)
		}
		return nil
	})
	if errors.Is(err, domainerror.ErrInvalidCredentials) {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}
	return err
}

// Exists checks if a credential record exists for the given username.
func (s *credentialStore) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	result := s.db.WithContext(ctx).Model(&model.CredentialModel{}).
		Where("username = ?", username).
		Count(&count)
	if result.Error != nil {
		return false, storageError(result.Error)
	}
	return count > 0, nil
}

// UpdatePassword re-verifies the current password and replaces the stored
// hash inside one transaction.
func (s *credentialStore) UpdatePassword(ctx context.Context, username, current, newPassword string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var credentialModel model.CredentialModel
		if err := tx.Where("username = ?", username).First(&credentialModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerror.ErrInvalidCredentials
			}
			return storageError(err)
		}

		if err := s.hasher.Compare(credentialModel.PasswordHash, current); err != nil {
			return domainerror.ErrInvalidCredentials
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return storageError(err)
		}

		if err := tx.Model(&model.CredentialModel{}).
			Where("username = ?", username).
			Update("password_hash", hash).Error; err != nil {
			return storageError(err)
		}
		return nil
	})
	if errors.Is(err, domainerror.ErrInvalidCredentials) {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid username or password",
			domainerror.ErrInvalidCredentials,
		)
	}
	return err
}

// FindByUsername retrieves a credential record by username.
func (s *credentialStore) FindByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	var credentialModel model.CredentialModel
	result := s.db.WithContext(ctx).Where("username = ?", username).First(&credentialModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeCredentialNotFound,
				"credential not found",
				domainerror.ErrCredentialNotFound,
			)
		}
		return nil, storageError(result.Error)
	}
	return credentialModel.ToEntity(), nil
}

// isDuplicateKey reports whether the error is a unique constraint violation.
// gorm translates these for dialects with error translation support; the
// message checks cover sqlite and postgres drivers that do not.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

func storageError(err error) error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeStorageUnavailable,
		"storage unavailable",
		errors.Join(domainerror.ErrStorageUnavailable, err),
	)
}
