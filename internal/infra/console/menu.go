// Package console implements the interactive text menu front end.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/secure-login/system/internal/application/usecase/auth"
	domainerror "github.com/secure-login/system/internal/domain/error"
	"github.com/secure-login/system/internal/domain/policy"
)

const headerWidth = 50

// Menu drives the interactive login system. All business logic lives in the
// use cases; the menu only prompts, renders results and tracks the session.
type Menu struct {
	registerUseCase       *auth.RegisterUserUseCase
	loginUseCase          *auth.LoginUserUseCase
	logoutUseCase         *auth.LogoutUserUseCase
	changePasswordUseCase *auth.ChangePasswordUseCase
	accountInfoUseCase    *auth.GetAccountInfoUseCase

	maxAttempts int
	idleTimeout time.Duration

	in  *bufio.Reader
	out io.Writer
}

// New creates a menu wired to the given use cases.
func New(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
	changePasswordUseCase *auth.ChangePasswordUseCase,
	accountInfoUseCase *auth.GetAccountInfoUseCase,
	maxAttempts int,
	idleTimeout time.Duration,
	in io.Reader,
	out io.Writer,
) *Menu {
	return &Menu{
		registerUseCase:       registerUseCase,
		loginUseCase:          loginUseCase,
		logoutUseCase:         logoutUseCase,
		changePasswordUseCase: changePasswordUseCase,
		accountInfoUseCase:    accountInfoUseCase,
		maxAttempts:           maxAttempts,
		idleTimeout:           idleTimeout,
		in:                    bufio.NewReader(in),
		out:                   out,
	}
}

// Run executes the main menu loop until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.clearScreen()
		m.header("SECURE LOGIN SYSTEM")
		fmt.Fprintln(m.out, "1. Register")
		fmt.Fprintln(m.out, "2. Login")
		fmt.Fprintln(m.out, "3. Exit")

		choice, err := promptLine(m.in, m.out, "\nSelect option (1-3): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			if err := m.runRegistration(ctx); err != nil {
				return err
			}
		case "2":
			if err := m.runLogin(ctx); err != nil {
				return err
			}
		case "3":
			fmt.Fprintln(m.out, "Thank you for using our system. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option! Please try again.")
			m.pause()
		}
	}
}

// runRegistration handles the registration flow. An empty username cancels.
func (m *Menu) runRegistration(ctx context.Context) error {
	m.clearScreen()
	m.header("USER REGISTRATION")

	for {
		username, err := promptLine(m.in, m.out, "Enter username (blank to cancel): ")
		if err != nil {
			return err
		}
		if username == "" {
			fmt.Fprintln(m.out, "Registration cancelled.")
			m.pause()
			return nil
		}

		password, err := promptPassword(m.in, m.out, "Enter password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword(m.in, m.out, "Confirm password: ")
		if err != nil {
			return err
		}

		_, execErr := m.registerUseCase.Execute(ctx, auth.RegisterUserInput{
			Username:        username,
			Password:        password,
			ConfirmPassword: confirm,
		})
		if execErr != nil {
			m.renderAuthError(execErr)
			fmt.Fprintln(m.out)
			continue
		}

		fmt.Fprintln(m.out, "\nRegistration successful! You can now login.")
		m.pause()
		return nil
	}
}

// runLogin handles the login flow with a per-session attempt budget.
func (m *Menu) runLogin(ctx context.Context) error {
	m.clearScreen()
	m.header("USER LOGIN")

	counter := auth.NewAttemptCounter(m.maxAttempts)

	for {
		username, err := promptLine(m.in, m.out, "Username: ")
		if err != nil {
			return err
		}
		password, err := promptPassword(m.in, m.out, "Password: ")
		if err != nil {
			return err
		}

		output, execErr := m.loginUseCase.Execute(ctx, auth.LoginUserInput{
			Username: username,
			Password: password,
			Attempts: counter,
		})
		if execErr != nil {
			if errors.Is(execErr, domainerror.ErrAttemptsExceeded) {
				fmt.Fprintln(m.out, "\nMaximum login attempts exceeded. Access denied.")
				m.pause()
				return nil
			}
			fmt.Fprintf(m.out, "\nLogin failed. %d attempt(s) remaining.\n\n", counter.Remaining())
			continue
		}

		fmt.Fprintf(m.out, "\nLogin successful! Welcome back, %s!\n", output.Username)
		m.pause()

		session := auth.NewSession(m.idleTimeout)
		session.SignIn(output.Username)
		return m.runDashboard(ctx, session)
	}
}

// runDashboard shows the post-login menu until logout or session expiry.
func (m *Menu) runDashboard(ctx context.Context, session *auth.Session) error {
	for session.Authenticated() {
		if session.Expired() {
			fmt.Fprintln(m.out, "Your session has expired. Please login again.")
			session.SignOut()
			m.pause()
			return nil
		}

		m.clearScreen()
		m.header("WELCOME " + session.Username())
		m.printAccountInfo(ctx, session.Username())

		fmt.Fprintln(m.out, "\nOptions:")
		fmt.Fprintln(m.out, "1. Change Password")
		fmt.Fprintln(m.out, "2. View Account Info")
		fmt.Fprintln(m.out, "3. Logout")

		choice, err := promptLine(m.in, m.out, "\nSelect option (1-3): ")
		if err != nil {
			return err
		}
		session.Touch()

		switch choice {
		case "1":
			if err := m.runChangePassword(ctx, session.Username()); err != nil {
				return err
			}
		case "2":
			m.clearScreen()
			m.header("ACCOUNT INFORMATION")
			m.printAccountInfo(ctx, session.Username())
			m.pause()
		case "3":
			output, err := m.logoutUseCase.Execute(ctx, auth.LogoutUserInput{Session: session})
			if err != nil {
				return err
			}
			fmt.Fprintln(m.out, output.Message)
			m.pause()
		default:
			fmt.Fprintln(m.out, "Invalid option! Please try again.")
			m.pause()
		}
	}
	return nil
}

// runChangePassword handles the password change flow.
func (m *Menu) runChangePassword(ctx context.Context, username string) error {
	m.clearScreen()
	m.header("CHANGE PASSWORD")

	current, err := promptPassword(m.in, m.out, "Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := promptPassword(m.in, m.out, "New password: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword(m.in, m.out, "Confirm new password: ")
	if err != nil {
		return err
	}

	if newPassword != confirm {
		fmt.Fprintln(m.out, "Passwords do not match. Please try again.")
		m.pause()
		return nil
	}

	output, execErr := m.changePasswordUseCase.Execute(ctx, auth.ChangePasswordInput{
		Username:        username,
		CurrentPassword: current,
		NewPassword:     newPassword,
	})
	if execErr != nil {
		m.renderAuthError(execErr)
		m.pause()
		return nil
	}

	fmt.Fprintln(m.out, output.Message)
	m.pause()
	return nil
}

// printAccountInfo renders creation and last-login timestamps.
func (m *Menu) printAccountInfo(ctx context.Context, username string) {
	info, err := m.accountInfoUseCase.Execute(ctx, auth.GetAccountInfoInput{Username: username})
	if err != nil {
		return
	}
	fmt.Fprintf(m.out, "Account created: %s\n", info.CreatedAt.Format(time.DateTime))
	if info.LastLoginAt != nil {
		fmt.Fprintf(m.out, "Last login: %s\n", info.LastLoginAt.Format(time.DateTime))
	} else {
		fmt.Fprintln(m.out, "Last login: First time login")
	}
}

// renderAuthError prints a user-facing message for a failed operation. For
// weak passwords the strength label, missing requirements and a suggestion
// are shown.
func (m *Menu) renderAuthError(err error) {
	var weakErr *domainerror.WeakPasswordError
	if errors.As(err, &weakErr) {
		result := policy.Result{Failed: weakErr.Failed}
		fmt.Fprintf(m.out, "\nPassword strength: %s\n", result.Strength())
		fmt.Fprintln(m.out, "Missing requirements:")
		for _, requirement := range weakErr.Failed {
			fmt.Fprintf(m.out, "  - %s\n", requirement.Description())
		}
		fmt.Fprintf(m.out, "Suggestion: %s\n", policy.Suggest())
		return
	}

	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		fmt.Fprintf(m.out, "\n%s\n", authErr.Message)
		return
	}

	fmt.Fprintf(m.out, "\nAn error occurred: %s\n", err)
}

func (m *Menu) clearScreen() {
	fmt.Fprint(m.out, "\033[2J\033[H")
}

func (m *Menu) header(title string) {
	bar := strings.Repeat("=", headerWidth)
	fmt.Fprintln(m.out, bar)
	fmt.Fprintf(m.out, "%*s\n", (headerWidth+len(title))/2, title)
	fmt.Fprintln(m.out, bar)
}

func (m *Menu) pause() {
	_, _ = promptLine(m.in, m.out, "\nPress Enter to continue...")
}
