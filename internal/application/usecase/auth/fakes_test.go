package auth

import (
	"context"
	"sync"
	"time"

	"github.com/secure-login/system/internal/application/adapter"
	"github.com/secure-login/system/internal/domain/entity"
	domainerror "github.com/secure-login/system/internal/domain/error"
)

// fakeStore is an in-memory adapter.CredentialStore for use case tests.
// "Hashing" is a reversible prefix so tests can assert on stored values.
type fakeStore struct {
	mu           sync.Mutex
	records      map[string]*entity.Credential
	createCalls  int
	verifyCalls  int
	failWith     error
	existsAnswer *bool
}

func boolPtr(b bool) *bool { return &b }

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*entity.Credential)}
}

func fakeHash(plaintext string) string {
	return "hashed:" + plaintext
}

func (s *fakeStore) Create(_ context.Context, username, plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls++
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.records[username]; ok {
		return domainerror.ErrUsernameTaken
	}
	s.records[username] = entity.NewCredential(username, fakeHash(plaintext))
	return nil
}

func (s *fakeStore) Verify(_ context.Context, username, plaintext string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verifyCalls++
	if s.failWith != nil {
		return s.failWith
	}
	record, ok := s.records[username]
	if !ok || record.PasswordHash != fakeHash(plaintext) {
		return domainerror.ErrInvalidCredentials
	}
	now := time.Now().UTC()
	record.LastLoginAt = &now
	return nil
}

func (s *fakeStore) Exists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return false, s.failWith
	}
	if s.existsAnswer != nil {
		return *s.existsAnswer, nil
	}
	_, ok := s.records[username]
	return ok, nil
}

func (s *fakeStore) UpdatePassword(_ context.Context, username, current, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	record, ok := s.records[username]
	if !ok || record.PasswordHash != fakeHash(current) {
		return domainerror.ErrInvalidCredentials
	}
	record.PasswordHash = fakeHash(newPassword)
	return nil
}

func (s *fakeStore) FindByUsername(_ context.Context, username string) (*entity.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[username]
	if !ok {
		return nil, domainerror.ErrCredentialNotFound
	}
	return record, nil
}

// auditEvent records one sink invocation for assertions.
type auditEvent struct {
	name     string
	username string
	outcome  adapter.Outcome
	reason   string
}

// recordingAudit is an adapter.AuditSink that captures events in memory.
type recordingAudit struct {
	mu     sync.Mutex
	events []auditEvent
}

func (a *recordingAudit) RegistrationAttempted(username string, outcome adapter.Outcome, reason string) {
	a.record(auditEvent{"registration_attempted", username, outcome, reason})
}

func (a *recordingAudit) LoginAttempted(username string, outcome adapter.Outcome, reason string) {
	a.record(auditEvent{"login_attempted", username, outcome, reason})
}

func (a *recordingAudit) PasswordChanged(username string) {
	a.record(auditEvent{name: "password_changed", username: username})
}

func (a *recordingAudit) LoggedOut(username string) {
	a.record(auditEvent{name: "logout", username: username})
}

func (a *recordingAudit) record(e auditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *recordingAudit) last() (auditEvent, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.events) == 0 {
		return auditEvent{}, false
	}
	return a.events[len(a.events)-1], true
}
