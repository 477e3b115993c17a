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

// memBookingStore is an in-memory BookingStore keyed by hex ID.
type memBookingStore struct {
	bookings map[string]model.Booking
}

var _ BookingStore = (*memBookingStore)(nil)

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{bookings: map[string]model.Booking{}}
}

func (s *memBookingStore) List(_ context.Context, filter data.BookingFilter) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if filter.TouristEmail != "" && b.TouristEmail != filter.TouristEmail {
			continue
		}
		if filter.GuideEmail != "" && b.GuideEmail != filter.GuideEmail {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *memBookingStore) FindByID(_ context.Context, id string) (model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, data.ErrBookingNotFound
	}
	return b, nil
}

func (s *memBookingStore) Create(_ context.Context, booking model.Booking) (model.Booking, error) {
	booking.ID = bson.NewObjectID()
	if booking.Status == "" {
		booking.Status = model.BookingStatusPending
	}
	s.bookings[booking.ID.Hex()] = booking
	return booking, nil
}

func (s *memBookingStore) UpdateStatus(_ context.Context, id string, status model.BookingStatus) error {
	b, ok := s.bookings[id]
	if !ok {
		return data.ErrBookingNotFound
	}
	b.Status = status
	s.bookings[id] = b
	return nil
}

func (s *memBookingStore) Delete(_ context.Context, id string) error {
	if _, ok := s.bookings[id]; !ok {
		return data.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *memBookingStore) seed(t *testing.T, b model.Booking) model.Booking {
	t.Helper()
	stored, err := s.Create(context.Background(), b)
	require.NoError(t, err)
	return stored
}

var (
	touristCtx = domainauth.Context{Email: "tourist@example.com", Role: domainauth.RoleTourist}
	guideCtx   = domainauth.Context{Email: "guide@example.com", Role: domainauth.RoleTourGuide}
)

func seedBookingPair(t *testing.T, store *memBookingStore) (mine, other model.Booking) {
	t.Helper()
	mine = store.seed(t, model.Booking{
		PackageID:    bson.NewObjectID(),
		TouristEmail: touristCtx.Email,
		GuideEmail:   guideCtx.Email,
		Price:        150,
	})
	other = store.seed(t, model.Booking{
		PackageID:    bson.NewObjectID(),
		TouristEmail: "someone-else@example.com",
		GuideEmail:   "another-guide@example.com",
		Price:        80,
	})
	return mine, other
}

func TestBookingCreate_StampsCallerAndPendingStatus(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())

	created, err := svc.Create(context.Background(), touristCtx, model.Booking{
		PackageID:    bson.NewObjectID(),
		GuideEmail:   guideCtx.Email,
		TouristEmail: "spoofed@example.com",
		Status:       model.BookingStatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, touristCtx.Email, created.TouristEmail)
	assert.Equal(t, model.BookingStatusPending, created.Status)
}

func TestBookingList_ScopedByRole(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	mine, _ := seedBookingPair(t, store)

	got, err := svc.ListForCaller(context.Background(), touristCtx, data.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	got, err = svc.ListForCaller(context.Background(), guideCtx, data.BookingFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	got, err = svc.ListForCaller(context.Background(), adminCtx, data.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestBookingList_CallerFilterCannotWidenScope(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	mine, other := seedBookingPair(t, store)

	// A tourist asking for someone else's bookings still only sees
	// their own.
	got, err := svc.ListForCaller(context.Background(), touristCtx, data.BookingFilter{
		TouristEmail: other.TouristEmail,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, got[0].ID)

	// An admin's filter is honored.
	got, err = svc.ListForCaller(context.Background(), adminCtx, data.BookingFilter{
		TouristEmail: other.TouristEmail,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other.ID, got[0].ID)
}

func TestBookingList_DemotedAdminLosesGlobalScope(t *testing.T) {
	store := newMemBookingStore()
	roles := sessionRoles()
	svc := NewBookingService(store, roles)
	seedBookingPair(t, store)

	// The credential still says admin, but the store no longer does.
	roles.Set(adminCtx.Email, domainauth.RoleTourist)

	got, err := svc.ListForCaller(context.Background(), adminCtx, data.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBookingUpdateStatus_DemotedAdminForbidden(t *testing.T) {
	store := newMemBookingStore()
	roles := sessionRoles()
	svc := NewBookingService(store, roles)
	mine, _ := seedBookingPair(t, store)

	roles.Set(adminCtx.Email, domainauth.RoleTourist)

	err := svc.UpdateStatus(context.Background(), adminCtx, mine.ID.Hex(), model.BookingStatusAccepted)
	assert.True(t, apperrors.IsForbidden(err))

	got, _ := store.FindByID(context.Background(), mine.ID.Hex())
	assert.Equal(t, model.BookingStatusPending, got.Status)
}

func TestBookingGet_NonPartyForbidden(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	_, other := seedBookingPair(t, store)

	_, err := svc.Get(context.Background(), touristCtx, other.ID.Hex())
	assert.True(t, apperrors.IsForbidden(err))

	got, err := svc.Get(context.Background(), adminCtx, other.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.ID)
}

func TestBookingUpdateStatus_OnlyAssignedGuide(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	mine, _ := seedBookingPair(t, store)

	err := svc.UpdateStatus(context.Background(), touristCtx, mine.ID.Hex(), model.BookingStatusAccepted)
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, svc.UpdateStatus(context.Background(), guideCtx, mine.ID.Hex(), model.BookingStatusAccepted))
	got, _ := store.FindByID(context.Background(), mine.ID.Hex())
	assert.Equal(t, model.BookingStatusAccepted, got.Status)
}

func TestBookingUpdateStatus_RejectsLifecycleBypass(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	mine, _ := seedBookingPair(t, store)

	err := svc.UpdateStatus(context.Background(), guideCtx, mine.ID.Hex(), model.BookingStatusInReview)
	assert.True(t, apperrors.IsValidation(err))
}

func TestBookingDelete_OnlyPendingAndOnlyOwner(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	mine, _ := seedBookingPair(t, store)

	err := svc.Delete(context.Background(), guideCtx, mine.ID.Hex())
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, store.UpdateStatus(context.Background(), mine.ID.Hex(), model.BookingStatusAccepted))
	err = svc.Delete(context.Background(), touristCtx, mine.ID.Hex())
	assert.True(t, apperrors.IsConflict(err))

	require.NoError(t, store.UpdateStatus(context.Background(), mine.ID.Hex(), model.BookingStatusPending))
	require.NoError(t, svc.Delete(context.Background(), touristCtx, mine.ID.Hex()))
}

func TestBookingMarkInReview_SetsStatus(t *testing.T) {
	store := newMemBookingStore()
	svc := NewBookingService(store, sessionRoles())
	mine, _ := seedBookingPair(t, store)

	require.NoError(t, svc.MarkInReview(context.Background(), mine.ID.Hex()))
	got, _ := store.FindByID(context.Background(), mine.ID.Hex())
	assert.Equal(t, model.BookingStatusInReview, got.Status)
}
