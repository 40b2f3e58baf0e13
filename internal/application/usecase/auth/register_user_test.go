package auth

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/secure-login/system/internal/application/adapter"
	domainerror "github.com/secure-login/system/internal/domain/error"
	"github.com/secure-login/system/internal/domain/policy"
)

func TestRegisterUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration creates record without login", func(t *testing.T) {
		store := newFakeStore()
		audit := &recordingAudit{}
		uc := NewRegisterUserUseCase(store, policy.DefaultConfig(), audit)

		output, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "alice",
			Password:        "Str0ng!Pass",
			ConfirmPassword: "Str0ng!Pass",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if output.Username != "alice" {
			t.Errorf("expected username alice, got %s", output.Username)
		}

		record, err := store.FindByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("expected record to exist, got %v", err)
		}
		if record.LastLoginAt != nil {
			t.Error("expected last login to be nil after registration")
		}
		if record.PasswordHash == "Str0ng!Pass" {
			t.Error("expected stored hash to differ from plaintext")
		}

		event, ok := audit.last()
		if !ok || event.name != "registration_attempted" || event.outcome != adapter.OutcomeSuccess {
			t.Errorf("expected success audit event, got %+v", event)
		}
	})

	t.Run("password mismatch is reported before policy", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRegisterUserUseCase(store, policy.DefaultConfig(), &recordingAudit{})

		// Both passwords are weak; the mismatch must win.
		_, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "alice",
			Password:        "weak",
			ConfirmPassword: "weaker",
		})
		if !errors.Is(err, domainerror.ErrPasswordMismatch) {
			t.Errorf("expected ErrPasswordMismatch, got %v", err)
		}
		if store.createCalls != 0 {
			t.Error("expected store to be untouched on mismatch")
		}
	})

	t.Run("weak password reports failed requirements and skips storage", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRegisterUserUseCase(store, policy.DefaultConfig(), &recordingAudit{})

		_, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "alice",
			Password:        "Weak1",
			ConfirmPassword: "Weak1",
		})
		if !errors.Is(err, domainerror.ErrWeakPassword) {
			t.Fatalf("expected ErrWeakPassword, got %v", err)
		}

		var weakErr *domainerror.WeakPasswordError
		if !errors.As(err, &weakErr) {
			t.Fatalf("expected WeakPasswordError, got %T", err)
		}
		want := []policy.Requirement{policy.RequirementLength, policy.RequirementSpecial}
		if !reflect.DeepEqual(weakErr.Failed, want) {
			t.Errorf("expected failed requirements %v, got %v", want, weakErr.Failed)
		}
		if store.createCalls != 0 {
			t.Error("expected no record to be created for weak password")
		}
	})

	t.Run("taken username is rejected", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRegisterUserUseCase(store, policy.DefaultConfig(), &recordingAudit{})

		if _, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "alice",
			Password:        "Str0ng!Pass",
			ConfirmPassword: "Str0ng!Pass",
		}); err != nil {
			t.Fatalf("first registration failed: %v", err)
		}

		_, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "alice",
			Password:        "An0ther!Pass",
			ConfirmPassword: "An0ther!Pass",
		})
		if !errors.Is(err, domainerror.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}

		// The original password must still be the stored one.
		record, findErr := store.FindByUsername(ctx, "alice")
		if findErr != nil {
			t.Fatalf("expected record to exist, got %v", findErr)
		}
		if record.PasswordHash != fakeHash("Str0ng!Pass") {
			t.Error("expected stored hash to remain the first password's hash")
		}
	})

	t.Run("duplicate create under race maps to username taken", func(t *testing.T) {
		store := newFakeStore()
		// Simulate another caller winning the insert between the friendly
		// Exists probe and Create.
		store.existsAnswer = boolPtr(false)
		if err := store.Create(ctx, "bob", "Other!Pass1"); err != nil {
			t.Fatalf("setup create failed: %v", err)
		}
		uc := NewRegisterUserUseCase(store, policy.DefaultConfig(), &recordingAudit{})

		_, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "bob",
			Password:        "Str0ng!Pass",
			ConfirmPassword: "Str0ng!Pass",
		})
		if !errors.Is(err, domainerror.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("empty username is rejected", func(t *testing.T) {
		store := newFakeStore()
		uc := NewRegisterUserUseCase(store, policy.DefaultConfig(), &recordingAudit{})

		_, err := uc.Execute(ctx, RegisterUserInput{
			Username:        "",
			Password:        "Str0ng!Pass",
			ConfirmPassword: "Str0ng!Pass",
		})
		if !errors.Is(err, domainerror.ErrInvalidUsername) {
			t.Errorf("expected ErrInvalidUsername, got %v", err)
		}
	})
}
