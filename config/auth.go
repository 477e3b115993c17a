package config

import (
	"fmt"
	"strings"
	"time"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
)

// AuthMode represents the identity provider mode for the application.
type AuthMode string

const (
	// AuthModeFirebase verifies Firebase-issued ID tokens.
	AuthModeFirebase AuthMode = "firebase"
	// AuthModeMock uses a config-driven identity (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "firebase", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: firebase, mock)", v)
	}
}

// FirebaseConfig contains the Firebase token verification configuration.
type FirebaseConfig struct {
	// ProjectID selects the securetoken issuer and expected audience.
	ProjectID string `env:"PROJECT_ID"`

	// VerifyTimeout bounds a single upstream verification call.
	VerifyTimeout time.Duration `env:"VERIFY_TIMEOUT" envDefault:"5s"`
}

// DevAuthConfig controls the mock identity. Used when AUTH_MODE=mock for
// development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Name   string `env:"NAME"    envDefault:"Dev User"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity verifier to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"firebase"`

	// SessionSecret signs session credentials. Required.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// SessionTTL is the session credential lifetime.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"168h"`

	// Firebase configuration (used when Mode=firebase).
	Firebase FirebaseConfig `envPrefix:"FIREBASE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = domainauth.DefaultSessionTTL
	}
	if a.Firebase.VerifyTimeout <= 0 {
		a.Firebase.VerifyTimeout = 5 * time.Second
	}
}
