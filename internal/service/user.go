package service

import (
	"context"
	"errors"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// UserStore is the view of the user collection the user service needs.
// data.UserRepo satisfies it.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	FindOrCreate(ctx context.Context, user model.User) (model.User, bool, error)
	UpdateRole(ctx context.Context, email string, role domainauth.Role) error
	UpdateProfile(ctx context.Context, email string, update data.ProfileUpdate) error
	Search(ctx context.Context, search, skipEmail string) ([]model.User, error)
	ListByRole(ctx context.Context, role domainauth.Role) ([]model.User, error)
}

// UserService manages user accounts and role assignments.
type UserService struct {
	users UserStore
}

// NewUserService constructs a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterResult reports the outcome of a registration attempt.
type RegisterResult struct {
	User    model.User
	Created bool
}

// Register creates the user if the email is unseen. Registration is
// idempotent per email: re-registering returns the existing record
// untouched, so repeated exchanges never create duplicate rows.
func (s *UserService) Register(ctx context.Context, user model.User) (RegisterResult, error) {
	if user.Email == "" {
		return RegisterResult{}, apperrors.ValidationField("email", "email is required")
	}
	if user.Role != "" && !user.Role.Valid() {
		return RegisterResult{}, apperrors.ValidationField("role", "unknown role")
	}

	stored, created, err := s.users.FindOrCreate(ctx, user)
	if err != nil {
		return RegisterResult{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "register user")
	}
	return RegisterResult{User: stored, Created: created}, nil
}

// GetByID fetches a user by object ID.
func (s *UserService) GetByID(ctx context.Context, id string) (model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, mapUserStoreError(err)
	}
	return user, nil
}

// RoleOf returns the caller's current role from the store, not from any
// token claim.
func (s *UserService) RoleOf(ctx context.Context, email string) (domainauth.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", mapUserStoreError(err)
	}
	return user.Role, nil
}

// UpdateRole sets a user's role. Admin-gated at the HTTP layer.
func (s *UserService) UpdateRole(ctx context.Context, email string, role domainauth.Role) error {
	if !role.Valid() {
		return apperrors.ValidationField("role", "unknown role")
	}
	if err := s.users.UpdateRole(ctx, email, role); err != nil {
		return mapUserStoreError(err)
	}
	return nil
}

// UpdateProfile sets a user's mutable profile fields. Callers edit their
// own profile; editing anyone else's requires the admin role, re-read
// from the store so a stale credential claim cannot grant it.
func (s *UserService) UpdateProfile(ctx context.Context, caller domainauth.Context, email string, update data.ProfileUpdate) error {
	if email != caller.Email {
		me, err := s.users.FindByEmail(ctx, caller.Email)
		if err != nil {
			if errors.Is(err, data.ErrUserNotFound) {
				return apperrors.
					Forbidden("account no longer exists").
					WithReason("user_not_found")
			}
			return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "role lookup failed")
		}
		if me.Role != domainauth.RoleAdmin {
			return apperrors.Forbidden("cannot edit another user's profile")
		}
	}
	if err := s.users.UpdateProfile(ctx, email, update); err != nil {
		return mapUserStoreError(err)
	}
	return nil
}

// Search lists users matching the term, excluding the caller.
func (s *UserService) Search(ctx context.Context, search, skipEmail string) ([]model.User, error) {
	users, err := s.users.Search(ctx, search, skipEmail)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "search users")
	}
	return users, nil
}

// TourGuides lists users holding the tour guide role.
func (s *UserService) TourGuides(ctx context.Context) ([]model.User, error) {
	guides, err := s.users.ListByRole(ctx, domainauth.RoleTourGuide)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "list tour guides")
	}
	return guides, nil
}

func mapUserStoreError(err error) error {
	switch {
	case errors.Is(err, data.ErrUserNotFound):
		return apperrors.NotFound("user not found")
	case errors.Is(err, data.ErrInvalidID):
		return apperrors.ValidationField("id", "invalid user id")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "user store")
	}
}
