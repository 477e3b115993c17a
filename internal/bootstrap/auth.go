package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tourdesh/tourdesh-api/config"
	"github.com/tourdesh/tourdesh-api/internal/adapters/devauth"
	"github.com/tourdesh/tourdesh-api/internal/adapters/firebaseauth"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// BuildIdentityVerifier constructs the identity verifier selected by
// AUTH_MODE. Mock mode is refused outside development so a misconfigured
// production deploy cannot silently accept any token.
func BuildIdentityVerifier(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (ports.IdentityVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		if !cfg.IsDev {
			return nil, fmt.Errorf("AUTH_MODE=mock requires DEV=true")
		}
		logger.Warn("using mock identity verifier", "email", cfg.Auth.DevAuth.Email)
		return devauth.NewProvider(devauth.Config{
			SubjectID: cfg.Auth.DevAuth.UserID,
			Name:      cfg.Auth.DevAuth.Name,
			Email:     cfg.Auth.DevAuth.Email,
		})
	case config.AuthModeFirebase:
		verifier, err := firebaseauth.NewProvider(ctx, firebaseauth.ProviderConfig{
			ProjectID:     cfg.Auth.Firebase.ProjectID,
			VerifyTimeout: cfg.Auth.Firebase.VerifyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("init firebase verifier: %w", err)
		}
		return verifier, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
