package sessiontoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

const testSecret = "unit-test-secret"

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec(testSecret, time.Hour)
	require.NoError(t, err)
	return codec
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec("", time.Hour)
	assert.Error(t, err)
}

func TestNewCodec_DefaultTTL(t *testing.T) {
	codec, err := NewCodec(testSecret, 0)
	require.NoError(t, err)
	assert.Equal(t, domainauth.DefaultSessionTTL, codec.ttl)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Issue(domainauth.Session{
		SubjectID: "uid-123",
		Name:      "Ada",
		Email:     "ada@example.com",
		Role:      domainauth.RoleAdmin,
	})
	require.NoError(t, err)

	sess, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "uid-123", sess.SubjectID)
	assert.Equal(t, "Ada", sess.Name)
	assert.Equal(t, "ada@example.com", sess.Email)
	assert.Equal(t, domainauth.RoleAdmin, sess.Role)
	assert.False(t, sess.ExpiresAt.IsZero())
	assert.True(t, sess.ExpiresAt.After(sess.IssuedAt))
}

func TestIssue_RequiresEmail(t *testing.T) {
	codec := newTestCodec(t)
	_, err := codec.Issue(domainauth.Session{SubjectID: "uid"})
	assert.Error(t, err)
}

func TestIssue_TwoCredentialsAreIndependent(t *testing.T) {
	codec := newTestCodec(t)
	sess := domainauth.Session{SubjectID: "uid", Email: "a@example.com", Role: domainauth.RoleTourist}

	first, err := codec.Issue(sess)
	require.NoError(t, err)
	second, err := codec.Issue(sess)
	require.NoError(t, err)

	// Distinct jti claims keep the credentials independently verifiable.
	assert.NotEqual(t, first, second)

	_, err = codec.Verify(first)
	assert.NoError(t, err)
	_, err = codec.Verify(second)
	assert.NoError(t, err)
}

func TestVerify_ExpiredCredential(t *testing.T) {
	codec := newTestCodec(t)

	signed, err := codec.Issue(domainauth.Session{
		SubjectID: "uid",
		Email:     "a@example.com",
		Role:      domainauth.RoleAdmin,
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ports.ErrInvalidCredential)
}

func TestVerify_WrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other, err := NewCodec("a-different-secret", time.Hour)
	require.NoError(t, err)

	signed, err := other.Issue(domainauth.Session{Email: "a@example.com"})
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ports.ErrInvalidCredential)
}

func TestVerify_RejectsUnsignedAlgorithm(t *testing.T) {
	codec := newTestCodec(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Email: "a@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = codec.Verify(raw)
	assert.ErrorIs(t, err, ports.ErrInvalidCredential)
}

func TestVerify_Garbage(t *testing.T) {
	codec := newTestCodec(t)
	_, err := codec.Verify("not-a-token")
	assert.ErrorIs(t, err, ports.ErrInvalidCredential)
}
