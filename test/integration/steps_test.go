//go:build integration

// Package integration provides BDD integration tests using Godog/Cucumber.
package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cucumber/godog"

	"github.com/secure-login/system/internal/application/adapter"
	"github.com/secure-login/system/internal/application/usecase/auth"
	domainerror "github.com/secure-login/system/internal/domain/error"
	"github.com/secure-login/system/internal/domain/policy"
	"github.com/secure-login/system/internal/infra/db"
	"github.com/secure-login/system/internal/integration/adapters"
	"github.com/secure-login/system/internal/integration/persistence"
	"github.com/secure-login/system/internal/integration/persistence/model"
)

// testContext holds the per-scenario wiring and the outcome of the last
// executed operation.
type testContext struct {
	database *db.Database
	store    adapter.CredentialStore

	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	changePasswordUseCase *auth.ChangePasswordUseCase

	counter *auth.AttemptCounter
	lastErr error
	tmpDir  string
}

// errorNames maps feature file failure labels to domain sentinels.
var errorNames = map[string]error{
	"weak password":       domainerror.ErrWeakPassword,
	"password mismatch":   domainerror.ErrPasswordMismatch,
	"username taken":      domainerror.ErrUsernameTaken,
	"invalid credentials": domainerror.ErrInvalidCredentials,
	"attempts exceeded":   domainerror.ErrAttemptsExceeded,
	"password reused":     domainerror.ErrPasswordReused,
}

// InitializeScenario wires a fresh database and use cases for every scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	t := &testContext{}

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		return c, t.before(sc)
	})
	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if t.database != nil {
			_ = t.database.Close()
		}
		if t.tmpDir != "" {
			_ = os.RemoveAll(t.tmpDir)
		}
		return c, nil
	})

	ctx.Step(`^a user exists with username "([^"]*)" and password "([^"]*)"$`, t.aUserExists)
	ctx.Step(`^I register with username "([^"]*)", password "([^"]*)" and confirmation "([^"]*)"$`, t.iRegister)
	ctx.Step(`^the registration succeeds$`, t.theOperationSucceeds)
	ctx.Step(`^the registration fails with "([^"]*)"$`, t.theOperationFailsWith)
	ctx.Step(`^the failed requirements are "([^"]*)"$`, t.theFailedRequirementsAre)
	ctx.Step(`^I login with username "([^"]*)" and password "([^"]*)"$`, t.iLogin)
	ctx.Step(`^I login (\d+) times with username "([^"]*)" and password "([^"]*)"$`, t.iLoginRepeatedly)
	ctx.Step(`^the login succeeds$`, t.theOperationSucceeds)
	ctx.Step(`^the login fails with "([^"]*)"$`, t.theOperationFailsWith)
	ctx.Step(`^I change the password for "([^"]*)" from "([^"]*)" to "([^"]*)"$`, t.iChangePassword)
	ctx.Step(`^the password change succeeds$`, t.theOperationSucceeds)
	ctx.Step(`^the password change fails with "([^"]*)"$`, t.theOperationFailsWith)
	ctx.Step(`^an account exists for "([^"]*)"$`, t.anAccountExists)
	ctx.Step(`^no account exists for "([^"]*)"$`, t.noAccountExists)
	ctx.Step(`^the account "([^"]*)" has a recorded login$`, t.accountHasRecordedLogin)
	ctx.Step(`^the account "([^"]*)" has no recorded login$`, t.accountHasNoRecordedLogin)
}

func policyConfig() policy.Config {
	return policy.DefaultConfig()
}

func (t *testContext) before(_ *godog.Scenario) error {
	tmpDir, err := os.MkdirTemp("", "secure-login-godog")
	if err != nil {
		return err
	}
	t.tmpDir = tmpDir

	database, err := db.NewSQLite(filepath.Join(tmpDir, "credentials.db"))
	if err != nil {
		return fmt.Errorf("failed to open scenario database: %w", err)
	}
	if err := database.AutoMigrate(&model.CredentialModel{}); err != nil {
		return fmt.Errorf("failed to migrate scenario database: %w", err)
	}

	hasher, err := adapters.NewPasswordHasher(adapters.SchemeSHA256)
	if err != nil {
		return err
	}

	audit := adapters.NewNopAuditSink()
	store := persistence.NewCredentialStore(database.DB(), hasher)

	t.database = database
	t.store = store
	t.registerUseCase = auth.NewRegisterUserUseCase(store, policyConfig(), audit)
	t.loginUseCase = auth.NewLoginUserUseCase(store, audit)
	t.changePasswordUseCase = auth.NewChangePasswordUseCase(store, policyConfig(), audit)
	t.counter = auth.NewAttemptCounter(3)
	t.lastErr = nil

	return nil
}

func (t *testContext) aUserExists(username, password string) error {
	return t.store.Create(context.Background(), username, password)
}

func (t *testContext) iRegister(username, password, confirmation string) error {
	_, t.lastErr = t.registerUseCase.Execute(context.Background(), auth.RegisterUserInput{
		Username:        username,
		Password:        password,
		ConfirmPassword: confirmation,
	})
	return nil
}

func (t *testContext) iLogin(username, password string) error {
	_, t.lastErr = t.loginUseCase.Execute(context.Background(), auth.LoginUserInput{
		Username: username,
		Password: password,
		Attempts: t.counter,
	})
	return nil
}

func (t *testContext) iLoginRepeatedly(times int, username, password string) error {
	for i := 0; i < times; i++ {
		if err := t.iLogin(username, password); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) iChangePassword(username, current, newPassword string) error {
	_, t.lastErr = t.changePasswordUseCase.Execute(context.Background(), auth.ChangePasswordInput{
		Username:        username,
		CurrentPassword: current,
		NewPassword:     newPassword,
	})
	return nil
}

func (t *testContext) theOperationSucceeds() error {
	if t.lastErr != nil {
		return fmt.Errorf("expected success, got %w", t.lastErr)
	}
	return nil
}

func (t *testContext) theOperationFailsWith(name string) error {
	sentinel, ok := errorNames[name]
	if !ok {
		return fmt.Errorf("unknown error label %q", name)
	}
	if t.lastErr == nil {
		return fmt.Errorf("expected failure %q, got success", name)
	}
	if !errors.Is(t.lastErr, sentinel) {
		return fmt.Errorf("expected failure %q, got %w", name, t.lastErr)
	}
	return nil
}

func (t *testContext) theFailedRequirementsAre(list string) error {
	var weakErr *domainerror.WeakPasswordError
	if !errors.As(t.lastErr, &weakErr) {
		return fmt.Errorf("expected a weak password failure, got %v", t.lastErr)
	}

	var got []string
	for _, requirement := range weakErr.Failed {
		got = append(got, string(requirement))
	}
	want := strings.Split(list, ", ")
	if strings.Join(got, ", ") != strings.Join(want, ", ") {
		return fmt.Errorf("expected failed requirements %v, got %v", want, got)
	}
	return nil
}

func (t *testContext) anAccountExists(username string) error {
	exists, err := t.store.Exists(context.Background(), username)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("expected account %q to exist", username)
	}
	return nil
}

func (t *testContext) noAccountExists(username string) error {
	exists, err := t.store.Exists(context.Background(), username)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("expected no account for %q", username)
	}
	return nil
}

func (t *testContext) accountHasRecordedLogin(username string) error {
	record, err := t.store.FindByUsername(context.Background(), username)
	if err != nil {
		return err
	}
	if record.LastLoginAt == nil {
		return fmt.Errorf("expected account %q to have a recorded login", username)
	}
	return nil
}

func (t *testContext) accountHasNoRecordedLogin(username string) error {
	record, err := t.store.FindByUsername(context.Background(), username)
	if err != nil {
		return err
	}
	if record.LastLoginAt != nil {
		return fmt.Errorf("expected account %q to have no recorded login", username)
	}
	return nil
}
