// Package sessiontoken signs and verifies the stateless session credential.
// The credential is an HS256 JWT carrying identity and a role snapshot.
package sessiontoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// Claims is the JWT payload for a session credential.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session credentials with a shared HMAC secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenCodec = (*Codec)(nil)

// NewCodec builds a Codec. TTL values <= 0 fall back to the default 7 days.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session signing secret is required")
	}
	if ttl <= 0 {
		ttl = domainauth.DefaultSessionTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs the session into a serialized credential. When the session
// carries explicit IssuedAt/ExpiresAt timestamps they are honored, which
// lets tests mint already-expired credentials; otherwise the codec stamps
// now and now+TTL.
func (c *Codec) Issue(sess domainauth.Session) (string, error) {
	if sess.Email == "" {
		return "", errors.New("session email is required")
	}

	issuedAt := sess.IssuedAt
	expiresAt := sess.ExpiresAt
	if issuedAt.IsZero() {
		issuedAt = c.now()
	}
	if expiresAt.IsZero() {
		expiresAt = issuedAt.Add(c.ttl)
	}

	claims := Claims{
		Name:  sess.Name,
		Email: sess.Email,
		Role:  string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.SubjectID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session credential: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded session.
// All parse failures collapse into ErrInvalidCredential so callers cannot
// distinguish (and cannot leak) signature details.
func (c *Codec) Verify(credential string) (domainauth.Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(
		credential,
		&claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !token.Valid {
		return domainauth.Session{}, ports.ErrInvalidCredential
	}

	sess := domainauth.Session{
		SubjectID: claims.Subject,
		Name:      claims.Name,
		Email:     claims.Email,
		Role:      domainauth.Role(claims.Role),
	}
	if claims.IssuedAt != nil {
		sess.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess, nil
}
