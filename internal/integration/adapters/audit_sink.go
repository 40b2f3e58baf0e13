// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/secure-login/system/config"
	"github.com/secure-login/system/internal/application/adapter"
)

// slogAuditSink writes audit events as JSON lines to a rotating log file.
// Plaintext passwords never reach the sink.
type slogAuditSink struct {
	logger *slog.Logger
}

// NewAuditSink creates an audit sink per the audit configuration. When
// auditing is disabled a no-op sink is returned.
func NewAuditSink(cfg config.AuditConfig) (adapter.AuditSink, error) {
	if !cfg.Enabled {
		return NewNopAuditSink(), nil
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogDir, cfg.LogFile),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	if cfg.AlsoStdout {
		w = io.MultiWriter(os.Stdout, w)
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &slogAuditSink{logger: logger}, nil
}

// RegistrationAttempted records a registration attempt and its outcome.
func (s *slogAuditSink) RegistrationAttempted(username string, outcome adapter.Outcome, reason string) {
	s.event("registration_attempted", username, outcome, reason)
}

// LoginAttempted records a login attempt and its outcome.
func (s *slogAuditSink) LoginAttempted(username string, outcome adapter.Outcome, reason string) {
	s.event("login_attempted", username, outcome, reason)
}

// PasswordChanged records a successful password change.
func (s *slogAuditSink) PasswordChanged(username string) {
	s.logger.Info("password_changed", "username", username)
}

// LoggedOut records a user signing out.
func (s *slogAuditSink) LoggedOut(username string) {
	s.logger.Info("logout", "username", username)
}

func (s *slogAuditSink) event(name, username string, outcome adapter.Outcome, reason string) {
	attrs := []any{"username", username, "outcome", string(outcome)}
	if reason != "" {
		attrs = append(attrs, "reason", reason)
	}
	if outcome == adapter.OutcomeSuccess {
		s.logger.Info(name, attrs...)
	} else {
		s.logger.Warn(name, attrs...)
	}
}

// nopAuditSink discards all events. Used in tests and when auditing is disabled.
type nopAuditSink struct{}

// NewNopAuditSink creates an audit sink that discards every event.
func NewNopAuditSink() adapter.AuditSink {
	return nopAuditSink{}
}

func (nopAuditSink) RegistrationAttempted(string, adapter.Outcome, string) {}
func (nopAuditSink) LoginAttempted(string, adapter.Outcome, string)        {}
func (nopAuditSink) PasswordChanged(string)                                {}
func (nopAuditSink) LoggedOut(string)                                      {}
