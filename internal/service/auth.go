package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// AuthUserStore is the view of the user collection the auth pipeline needs.
// data.UserRepo satisfies it.
type AuthUserStore interface {
	ports.RoleReader
	IncrementLoginCount(ctx context.Context, email string) error
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Verifier ports.IdentityVerifier
	Codec    ports.TokenCodec
	Users    AuthUserStore
	Logger   *slog.Logger
}

// AuthService runs the identity-bridging pipeline: it exchanges a verified
// provider token for a locally signed session credential, verifies session
// credentials on protected requests, and answers role-gate checks with a
// fresh read against the user collection.
//
// Session credentials are stateless; once issued they stay valid until
// expiry. Revocation before expiry would need a denylist, which this
// system deliberately does not keep.
type AuthService struct {
	verifier ports.IdentityVerifier
	codec    ports.TokenCodec
	users    AuthUserStore
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		verifier: opts.Verifier,
		codec:    opts.Codec,
		users:    opts.Users,
		logger:   logger,
	}
}

// ExchangeToken verifies a provider-issued ID token and mints a session
// credential embedding the user's current role. The email must already be
// registered; an unknown email fails explicitly instead of crashing on a
// missing role.
func (s *AuthService) ExchangeToken(ctx context.Context, providerToken string) (string, error) {
	if providerToken == "" {
		return "", apperrors.Validation("idToken is required")
	}

	identity, err := s.verifier.Verify(ctx, providerToken)
	if err != nil {
		return "", mapVerifierError(err)
	}

	role, err := s.users.RoleByEmail(ctx, identity.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return "", apperrors.
				Unauthorized("no account registered for this identity").
				WithReason("user_not_registered")
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "role lookup failed")
	}

	credential, err := s.codec.Issue(domainauth.Session{
		SubjectID: identity.SubjectID,
		Name:      identity.Name,
		Email:     identity.Email,
		Role:      role,
	})
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrCodeInternal, "issue session credential")
	}

	// Login metrics are best-effort; a failed counter bump must not block
	// a successful exchange.
	if err := s.users.IncrementLoginCount(ctx, identity.Email); err != nil {
		s.logger.WarnContext(ctx, "increment login count failed",
			"email", identity.Email, "error", err)
	}

	return credential, nil
}

// VerifySession validates a session credential and derives the per-request
// authorization context from its claims.
func (s *AuthService) VerifySession(credential string) (domainauth.Context, error) {
	sess, err := s.codec.Verify(credential)
	if err != nil {
		return domainauth.Context{}, apperrors.
			Forbidden("invalid or expired session credential").
			WithReason("invalid_credential")
	}
	return domainauth.Context{
		SubjectID: sess.SubjectID,
		Email:     sess.Email,
		Role:      sess.Role,
	}, nil
}

// AuthorizeRole re-reads the caller's authoritative role from the user
// collection and checks it against the allow-set. The role claim embedded
// in the credential is never trusted here: one extra read per gated
// request closes the stale-privilege window that the 7-day credential TTL
// would otherwise leave open.
func (s *AuthService) AuthorizeRole(
	ctx context.Context,
	email string,
	allowed ...domainauth.Role,
) (domainauth.Role, error) {
	role, err := s.users.RoleByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return "", apperrors.
				Forbidden("account no longer exists").
				WithReason("user_not_found")
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "role lookup failed")
	}

	for _, want := range allowed {
		if role == want {
			return role, nil
		}
	}
	return "", apperrors.Forbidden("insufficient permissions")
}

// mapVerifierError translates identity-provider failures into the
// application taxonomy without leaking provider internals.
func mapVerifierError(err error) error {
	switch {
	case errors.Is(err, ports.ErrInvalidProviderToken):
		return apperrors.
			Unauthorized("invalid provider token").
			WithReason("invalid_provider_token")
	case errors.Is(err, ports.ErrProviderUnavailable):
		return apperrors.
			Unavailable("identity provider unavailable").
			WithReason("upstream_unavailable")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "verify provider token")
	}
}
