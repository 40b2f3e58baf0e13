// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/secure-login/system/internal/application/adapter"
)

// GetAccountInfoInput represents the input for an account info lookup.
type GetAccountInfoInput struct {
	Username string
}

// GetAccountInfoOutput represents the output of an account info lookup.
type GetAccountInfoOutput struct {
	Username    string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

// GetAccountInfoUseCase retrieves account details for the dashboard view.
type GetAccountInfoUseCase struct {
	store adapter.CredentialStore
}

// NewGetAccountInfoUseCase creates a new GetAccountInfoUseCase instance.
func NewGetAccountInfoUseCase(store adapter.CredentialStore) *GetAccountInfoUseCase {
	return &GetAccountInfoUseCase{
		store: store,
	}
}

// Execute looks up the credential record for the given username.
func (uc *GetAccountInfoUseCase) Execute(ctx context.Context, input GetAccountInfoInput) (*GetAccountInfoOutput, error) {
	credential, err := uc.store.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load account info: %w", err)
	}

	return &GetAccountInfoOutput{
		Username:    credential.Username,
		CreatedAt:   credential.CreatedAt,
		LastLoginAt: credential.LastLoginAt,
	}, nil
}
