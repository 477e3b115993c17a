package config

import (
	"os"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{input: "firebase", expected: AuthModeFirebase},
		{input: "FIREBASE", expected: AuthModeFirebase},
		{input: "mock", expected: AuthModeMock},
		{input: "Mock", expected: AuthModeMock},
		{input: "oauth", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeFirebase, cfg.Auth.Mode)
	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.Auth.Firebase.VerifyTimeout)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "tourdesh", cfg.Mongo.Database)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "usd", cfg.Payments.Currency)
	assert.False(t, cfg.Payments.Enabled())
	assert.False(t, cfg.IsDev)
}

func TestAppConfig_SessionSecretRequired(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	os.Unsetenv("SESSION_SECRET")

	var cfg AppConfig
	err := env.Parse(&cfg)
	assert.Error(t, err)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("DEV_AUTH_EMAIL", "me@dev.local")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("MONGODB_DATABASE", "tourdesh_test")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, "me@dev.local", cfg.Auth.DevAuth.Email)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, "tourdesh_test", cfg.Mongo.Database)
	assert.True(t, cfg.Payments.Enabled())
}

func TestSanitize_Guardrails(t *testing.T) {
	cfg := AppConfig{}
	cfg.Auth.SessionTTL = -time.Hour
	cfg.Payments.RetryLimit = -3
	cfg.HTTP.ReadTimeout = 0
	cfg.Sanitize()

	assert.Equal(t, 168*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 0, cfg.Payments.RetryLimit)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
}

func TestDetectDevMode_NodeEnvFallback(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
