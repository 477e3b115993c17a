package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// memApplicationStore is an in-memory ApplicationStore keyed by hex ID.
type memApplicationStore struct {
	apps  map[string]model.Application
	users *memUserStore
}

var _ ApplicationStore = (*memApplicationStore)(nil)

func newMemApplicationStore(users *memUserStore) *memApplicationStore {
	return &memApplicationStore{apps: map[string]model.Application{}, users: users}
}

func (s *memApplicationStore) ListWithRoles(_ context.Context) ([]model.ApplicationWithRole, error) {
	var out []model.ApplicationWithRole
	for _, app := range s.apps {
		row := model.ApplicationWithRole{Application: app}
		if user, ok := s.users.users[app.ApplicantEmail]; ok {
			row.Role = string(user.Role)
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *memApplicationStore) Create(_ context.Context, app model.Application) (model.Application, error) {
	app.ID = bson.NewObjectID()
	s.apps[app.ID.Hex()] = app
	return app, nil
}

func (s *memApplicationStore) Delete(_ context.Context, id string) error {
	if _, ok := s.apps[id]; !ok {
		return data.ErrApplicationNotFound
	}
	delete(s.apps, id)
	return nil
}

func newApplicationFixture() (*ApplicationService, *memApplicationStore, *memUserStore) {
	users := newMemUserStore()
	apps := newMemApplicationStore(users)
	return NewApplicationService(apps, users), apps, users
}

func TestApplicationApply_StampsCallerAsApplicant(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	created, err := svc.Apply(context.Background(), touristCtx, model.Application{
		Title:          "Guide application",
		CVLink:         "https://cv.example.com/me.pdf",
		ApplicantEmail: "spoofed@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, touristCtx.Email, created.ApplicantEmail)
}

func TestApplicationApply_RequiresTitleAndCV(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	_, err := svc.Apply(context.Background(), touristCtx, model.Application{CVLink: "x"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Apply(context.Background(), touristCtx, model.Application{Title: "x"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestApplicationApprove_PromotesAndDequeues(t *testing.T) {
	svc, apps, users := newApplicationFixture()
	users.users[touristCtx.Email] = model.User{Email: touristCtx.Email, Role: domainauth.RoleTourist}

	created, err := svc.Apply(context.Background(), touristCtx, model.Application{
		Title: "t", CVLink: "cv",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Approve(context.Background(), created.ID.Hex(), touristCtx.Email))
	assert.Equal(t, domainauth.RoleTourGuide, users.users[touristCtx.Email].Role)
	assert.Empty(t, apps.apps)
}

func TestApplicationApprove_UnknownApplicantIsNotFound(t *testing.T) {
	svc, _, _ := newApplicationFixture()

	err := svc.Approve(context.Background(), bson.NewObjectID().Hex(), "ghost@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestApplicationReject_LeavesRoleUntouched(t *testing.T) {
	svc, apps, users := newApplicationFixture()
	users.users[touristCtx.Email] = model.User{Email: touristCtx.Email, Role: domainauth.RoleTourist}

	created, err := svc.Apply(context.Background(), touristCtx, model.Application{Title: "t", CVLink: "cv"})
	require.NoError(t, err)

	require.NoError(t, svc.Reject(context.Background(), created.ID.Hex()))
	assert.Equal(t, domainauth.RoleTourist, users.users[touristCtx.Email].Role)
	assert.Empty(t, apps.apps)
}

func TestApplicationList_JoinsApplicantRole(t *testing.T) {
	svc, _, users := newApplicationFixture()
	users.users[touristCtx.Email] = model.User{Email: touristCtx.Email, Role: domainauth.RoleTourist}

	_, err := svc.Apply(context.Background(), touristCtx, model.Application{Title: "t", CVLink: "cv"})
	require.NoError(t, err)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, string(domainauth.RoleTourist), rows[0].Role)
}
