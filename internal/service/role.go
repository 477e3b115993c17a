package service

import (
	"context"
	"errors"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// freshRole re-reads the caller's authoritative role from the user
// collection. Every owner-or-admin escalation goes through this instead
// of the role claim baked into the session credential, so a demotion
// takes effect on the next request rather than at credential expiry.
func freshRole(ctx context.Context, roles ports.RoleReader, caller domainauth.Context) (domainauth.Role, error) {
	role, err := roles.RoleByEmail(ctx, caller.Email)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return "", apperrors.
				Forbidden("account no longer exists").
				WithReason("user_not_found")
		}
		return "", apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "role lookup failed")
	}
	return role, nil
}
