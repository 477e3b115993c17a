package devauth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourdesh/tourdesh-api/internal/ports"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	assert.Error(t, err)

	_, err = NewProvider(Config{SubjectID: "dev-uid"})
	assert.Error(t, err)
}

func TestVerify_ReturnsConfiguredIdentity(t *testing.T) {
	p, err := NewProvider(Config{SubjectID: "dev-uid", Name: "Dev", Email: "dev@example.com"})
	require.NoError(t, err)

	identity, err := p.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "dev-uid", identity.SubjectID)
	assert.Equal(t, "dev@example.com", identity.Email)
}

func TestVerify_EmptyTokenFailsClosed(t *testing.T) {
	p, err := NewProvider(Config{SubjectID: "dev-uid", Email: "dev@example.com"})
	require.NoError(t, err)

	_, err = p.Verify(context.Background(), "  ")
	assert.ErrorIs(t, err, ports.ErrInvalidProviderToken)
}
