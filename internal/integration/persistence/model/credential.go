// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/secure-login/system/internal/domain/entity"
)

// CredentialModel represents the credentials table in the database.
type CredentialModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username     string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	PasswordHash string     `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time  `gorm:"not null"`
	LastLoginAt  *time.Time `gorm:""`
}

// TableName returns the table name for the CredentialModel.
func (CredentialModel) TableName() string {
	return "credentials"
}

// ToEntity converts a CredentialModel to a domain Credential entity.
func (m *CredentialModel) ToEntity() *entity.Credential {
	return &entity.Credential{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		LastLoginAt:  m.LastLoginAt,
	}
}

// FromEntity creates a CredentialModel from a domain Credential entity.
func FromEntity(credential *entity.Credential) *CredentialModel {
	return &CredentialModel{
		ID:           credential.ID,
		Username:     credential.Username,
		PasswordHash: credential.PasswordHash,
		CreatedAt:    credential.CreatedAt,
		LastLoginAt:  credential.LastLoginAt,
	}
}
