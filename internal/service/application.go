package service

import (
	"context"
	"errors"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// ApplicationStore is the view of the application collection the
// application service needs. data.ApplicationRepo satisfies it.
type ApplicationStore interface {
	ListWithRoles(ctx context.Context) ([]model.ApplicationWithRole, error)
	Create(ctx context.Context, app model.Application) (model.Application, error)
	Delete(ctx context.Context, id string) error
}

// RoleUpdater promotes a user to a new role.
type RoleUpdater interface {
	UpdateRole(ctx context.Context, email string, role domainauth.Role) error
}

// ApplicationService manages tour guide applications and their admin
// review.
type ApplicationService struct {
	apps  ApplicationStore
	users RoleUpdater
}

// NewApplicationService constructs a new ApplicationService.
func NewApplicationService(apps ApplicationStore, users RoleUpdater) *ApplicationService {
	return &ApplicationService{apps: apps, users: users}
}

// List returns all pending applications joined with each applicant's
// current role. Admin-gated at the HTTP layer.
func (s *ApplicationService) List(ctx context.Context) ([]model.ApplicationWithRole, error) {
	apps, err := s.apps.ListWithRoles(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "list applications")
	}
	return apps, nil
}

// Apply files a tour guide application for the caller. Applicant
// identity comes from the verified session, never from the request
// body.
func (s *ApplicationService) Apply(ctx context.Context, caller domainauth.Context, app model.Application) (model.Application, error) {
	if app.Title == "" {
		return model.Application{}, apperrors.ValidationField("title", "title is required")
	}
	if app.CVLink == "" {
		return model.Application{}, apperrors.ValidationField("cvLink", "cv link is required")
	}
	app.ApplicantEmail = caller.Email

	created, err := s.apps.Create(ctx, app)
	if err != nil {
		return model.Application{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "create application")
	}
	return created, nil
}

// Approve promotes the applicant to tour guide and removes the
// application from the queue. The promotion is the authoritative write;
// the applicant's next request through the role gate sees the new role
// immediately.
func (s *ApplicationService) Approve(ctx context.Context, id, applicantEmail string) error {
	if applicantEmail == "" {
		return apperrors.ValidationField("applicantEmail", "applicant email is required")
	}
	if err := s.users.UpdateRole(ctx, applicantEmail, domainauth.RoleTourGuide); err != nil {
		return mapUserStoreError(err)
	}
	if err := s.apps.Delete(ctx, id); err != nil {
		return mapApplicationStoreError(err)
	}
	return nil
}

// Reject removes the application without touching the applicant's role.
func (s *ApplicationService) Reject(ctx context.Context, id string) error {
	if err := s.apps.Delete(ctx, id); err != nil {
		return mapApplicationStoreError(err)
	}
	return nil
}

func mapApplicationStoreError(err error) error {
	switch {
	case errors.Is(err, data.ErrApplicationNotFound):
		return apperrors.NotFound("application not found")
	case errors.Is(err, data.ErrInvalidID):
		return apperrors.ValidationField("id", "invalid application id")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "application store")
	}
}
