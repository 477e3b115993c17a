// Package devauth provides a config-driven IdentityVerifier for local
// development. It accepts any non-empty provider token and returns the
// configured identity, so the whole pipeline can run without Firebase.
package devauth

import (
	"context"
	"errors"
	"strings"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// Config controls the dev verifier identity.
type Config struct {
	SubjectID string
	Name      string
	Email     string
}

// Provider implements ports.IdentityVerifier for local development.
type Provider struct {
	identity domainauth.Identity
}

var _ ports.IdentityVerifier = (*Provider)(nil)

// NewProvider constructs a dev verifier from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.SubjectID == "" {
		return nil, errors.New("dev auth: SubjectID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	return &Provider{
		identity: domainauth.Identity{
			SubjectID: cfg.SubjectID,
			Name:      cfg.Name,
			Email:     cfg.Email,
		},
	}, nil
}

// Verify accepts any non-empty token and returns the configured identity.
// Empty tokens still fail closed so the handler paths stay honest.
func (p *Provider) Verify(_ context.Context, providerToken string) (domainauth.Identity, error) {
	if strings.TrimSpace(providerToken) == "" {
		return domainauth.Identity{}, ports.ErrInvalidProviderToken
	}
	return p.identity, nil
}
