// Package firebaseauth verifies Firebase-issued ID tokens. Firebase tokens
// are standard OIDC JWTs signed by the securetoken issuer, so verification
// runs through a go-oidc IDTokenVerifier keyed on the project ID.
package firebaseauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

const issuerPrefix = "https://securetoken.google.com/"

// defaultVerifyTimeout bounds the provider call; it is the one external
// network dependency on the hot authorization path.
const defaultVerifyTimeout = 5 * time.Second

// Provider implements ports.IdentityVerifier against Firebase.
type Provider struct {
	verifier      *gooidc.IDTokenVerifier
	httpClient    *http.Client
	verifyTimeout time.Duration
}

var _ ports.IdentityVerifier = (*Provider)(nil)

// ProviderConfig holds configuration for the Firebase verifier.
type ProviderConfig struct {
	ProjectID     string
	HTTPClient    *http.Client  // optional; defaults to a 30s-timeout client
	VerifyTimeout time.Duration // optional; defaults to 5s
}

// NewProvider builds a Provider. Discovery against the securetoken issuer
// happens once here; key rotation is handled by the remote key set.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase project ID is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	verifyTimeout := cfg.VerifyTimeout
	if verifyTimeout <= 0 {
		verifyTimeout = defaultVerifyTimeout
	}

	issuer := issuerPrefix + cfg.ProjectID
	op, err := gooidc.NewProvider(gooidc.ClientContext(ctx, httpClient), issuer)
	if err != nil {
		return nil, fmt.Errorf("firebase discovery: %w", err)
	}

	return &Provider{
		verifier:      op.Verifier(&gooidc.Config{ClientID: cfg.ProjectID}),
		httpClient:    httpClient,
		verifyTimeout: verifyTimeout,
	}, nil
}

// Verify checks the provider token and returns the verified identity.
// Provider rejection surfaces as ErrInvalidProviderToken; transient network
// failures as ErrProviderUnavailable. Fails closed.
func (p *Provider) Verify(ctx context.Context, providerToken string) (domainauth.Identity, error) {
	if strings.TrimSpace(providerToken) == "" {
		return domainauth.Identity{}, ports.ErrInvalidProviderToken
	}

	ctx, cancel := context.WithTimeout(gooidc.ClientContext(ctx, p.httpClient), p.verifyTimeout)
	defer cancel()

	idToken, err := p.verifier.Verify(ctx, providerToken)
	if err != nil {
		return domainauth.Identity{}, classifyVerifyError(err)
	}

	var claims struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return domainauth.Identity{}, ports.ErrInvalidProviderToken
	}
	if claims.Email == "" {
		return domainauth.Identity{}, ports.ErrInvalidProviderToken
	}

	return domainauth.Identity{
		SubjectID: idToken.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
	}, nil
}

// classifyVerifyError separates token rejection from infrastructure
// failure. Key-set fetches ride inside Verify, so network errors surface
// here as url.Error or context deadline.
func classifyVerifyError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", ports.ErrProviderUnavailable, err)
	}
	return ports.ErrInvalidProviderToken
}
