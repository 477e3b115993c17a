// Package ports defines interfaces (hexagonal ports) for auth-related
// behavior. Implementations live in internal/adapters; orchestration in
// internal/service.
package ports

import (
	"context"
	"errors"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
)

// ErrInvalidProviderToken is returned by an IdentityVerifier when the
// provider rejects the presented token (expired, malformed, wrong audience).
var ErrInvalidProviderToken = errors.New("invalid provider token")

// ErrProviderUnavailable is returned by an IdentityVerifier when the
// provider call fails for transient or network reasons.
var ErrProviderUnavailable = errors.New("identity provider unavailable")

// ErrInvalidCredential is returned by a TokenCodec when a session
// credential fails its signature or expiry check.
var ErrInvalidCredential = errors.New("invalid session credential")

// IdentityVerifier verifies an opaque provider-issued credential and
// yields the verified identity. Pure verification; no side effects.
type IdentityVerifier interface {
	Verify(ctx context.Context, providerToken string) (domainauth.Identity, error)
}

// TokenCodec issues and verifies locally signed, stateless session
// credentials. Validity is purely cryptographic plus expiry; revocation
// before expiry is not possible without a denylist, which this system
// does not keep.
type TokenCodec interface {
	// Issue signs the session claims into a serialized credential.
	Issue(sess domainauth.Session) (string, error)

	// Verify checks signature and expiry and returns the embedded session.
	Verify(credential string) (domainauth.Session, error)
}

// RoleReader reads the authoritative role for an email from the user
// collection. Both the session issuer and the role gate depend on it.
type RoleReader interface {
	RoleByEmail(ctx context.Context, email string) (domainauth.Role, error)
}
