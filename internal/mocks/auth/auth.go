// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"sync"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityVerifier = (*MockIdentityVerifier)(nil)
	_ ports.TokenCodec       = (*MockTokenCodec)(nil)
	_ ports.RoleReader       = (*MemoryRoleStore)(nil)
)

// MockIdentityVerifier simulates the identity provider. When VerifyFunc is
// unset it accepts any token and returns DefaultIdentity.
type MockIdentityVerifier struct {
	VerifyFunc      func(ctx context.Context, providerToken string) (domainauth.Identity, error)
	DefaultIdentity domainauth.Identity

	mu    sync.Mutex
	calls int
}

// NewMockIdentityVerifier creates a verifier returning a sensible default identity.
func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{
		DefaultIdentity: domainauth.Identity{
			SubjectID: "mock-uid",
			Name:      "Mock User",
			Email:     "mock@example.com",
		},
	}
}

// Verify returns the configured identity or delegates to VerifyFunc.
func (m *MockIdentityVerifier) Verify(ctx context.Context, providerToken string) (domainauth.Identity, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, providerToken)
	}
	if providerToken == "" {
		return domainauth.Identity{}, ports.ErrInvalidProviderToken
	}
	return m.DefaultIdentity, nil
}

// Calls reports how many times Verify ran.
func (m *MockIdentityVerifier) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockTokenCodec is a transparent codec for tests that do not care about
// real signing. Issue returns a fixed string; Verify returns the session
// stashed by the last Issue, or the configured Session.
type MockTokenCodec struct {
	IssueFunc  func(sess domainauth.Session) (string, error)
	VerifyFunc func(credential string) (domainauth.Session, error)
	Session    domainauth.Session
}

// Issue returns a placeholder credential or delegates to IssueFunc.
func (m *MockTokenCodec) Issue(sess domainauth.Session) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(sess)
	}
	m.Session = sess
	return "mock-credential", nil
}

// Verify returns the stashed session or delegates to VerifyFunc.
func (m *MockTokenCodec) Verify(credential string) (domainauth.Session, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(credential)
	}
	if credential == "" {
		return domainauth.Session{}, ports.ErrInvalidCredential
	}
	return m.Session, nil
}

// MemoryRoleStore is an in-memory role reader keyed by email.
type MemoryRoleStore struct {
	mu    sync.RWMutex
	roles map[string]domainauth.Role
}

// NewMemoryRoleStore creates an empty role store.
func NewMemoryRoleStore() *MemoryRoleStore {
	return &MemoryRoleStore{roles: make(map[string]domainauth.Role)}
}

// Set assigns a role to an email.
func (m *MemoryRoleStore) Set(email string, role domainauth.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[email] = role
}

// Delete removes an email, simulating a vanished user record.
func (m *MemoryRoleStore) Delete(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.roles, email)
}

// RoleByEmail returns the stored role, or the data layer's user-not-found
// sentinel when the email has no record.
func (m *MemoryRoleStore) RoleByEmail(_ context.Context, email string) (domainauth.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	role, ok := m.roles[email]
	if !ok {
		return "", data.ErrUserNotFound
	}
	return role, nil
}
