package service

import (
	"context"
	"errors"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// BookingStore is the view of the booking collection the booking
// service needs. data.BookingRepo satisfies it.
type BookingStore interface {
	List(ctx context.Context, filter data.BookingFilter) ([]model.Booking, error)
	FindByID(ctx context.Context, id string) (model.Booking, error)
	Create(ctx context.Context, booking model.Booking) (model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error
	Delete(ctx context.Context, id string) error
}

// BookingService manages bookings. Listings are always scoped to the
// caller: tourists see bookings they placed, guides see bookings
// assigned to them, and only admins see everything. Scope and the admin
// escalation are decided on the role read from the store, never on the
// role snapshot in the credential.
type BookingService struct {
	bookings BookingStore
	roles    ports.RoleReader
}

// NewBookingService constructs a new BookingService.
func NewBookingService(bookings BookingStore, roles ports.RoleReader) *BookingService {
	return &BookingService{bookings: bookings, roles: roles}
}

// ListForCaller returns the bookings visible to the caller by role.
// Admins may narrow with the requested filter; everyone else has their
// own scope forced regardless of what was asked for.
func (s *BookingService) ListForCaller(ctx context.Context, caller domainauth.Context, requested data.BookingFilter) ([]model.Booking, error) {
	role, err := freshRole(ctx, s.roles, caller)
	if err != nil {
		return nil, err
	}

	filter := requested
	switch role {
	case domainauth.RoleAdmin:
	case domainauth.RoleTourGuide:
		filter = data.BookingFilter{GuideEmail: caller.Email}
	default:
		filter = data.BookingFilter{TouristEmail: caller.Email}
	}

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "list bookings")
	}
	return bookings, nil
}

// Get fetches a booking the caller is allowed to see.
func (s *BookingService) Get(ctx context.Context, caller domainauth.Context, id string) (model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return model.Booking{}, mapBookingStoreError(err)
	}
	if booking.TouristEmail != caller.Email && booking.GuideEmail != caller.Email {
		admin, err := s.callerIsAdmin(ctx, caller)
		if err != nil {
			return model.Booking{}, err
		}
		if !admin {
			return model.Booking{}, apperrors.Forbidden("not a party to this booking")
		}
	}
	return booking, nil
}

// Create places a booking for the caller. TouristEmail comes from the
// verified session, never from the request body, and the status always
// starts pending.
func (s *BookingService) Create(ctx context.Context, caller domainauth.Context, booking model.Booking) (model.Booking, error) {
	if booking.PackageID.IsZero() {
		return model.Booking{}, apperrors.ValidationField("packageId", "package id is required")
	}
	if booking.GuideEmail == "" {
		return model.Booking{}, apperrors.ValidationField("guideEmail", "guide email is required")
	}
	booking.TouristEmail = caller.Email
	booking.Status = model.BookingStatusPending

	created, err := s.bookings.Create(ctx, booking)
	if err != nil {
		return model.Booking{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "create booking")
	}
	return created, nil
}

// UpdateStatus moves a booking through its lifecycle. Only the assigned
// guide or an admin may accept or reject; the transition to in review
// is reserved for the payment confirmation path.
func (s *BookingService) UpdateStatus(ctx context.Context, caller domainauth.Context, id string, status model.BookingStatus) error {
	switch status {
	case model.BookingStatusAccepted, model.BookingStatusRejected:
	default:
		return apperrors.ValidationField("status", "status must be accepted or rejected")
	}

	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return mapBookingStoreError(err)
	}
	if booking.GuideEmail != caller.Email {
		admin, err := s.callerIsAdmin(ctx, caller)
		if err != nil {
			return err
		}
		if !admin {
			return apperrors.Forbidden("not the assigned guide")
		}
	}

	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return mapBookingStoreError(err)
	}
	return nil
}

// MarkInReview flips a booking to in review after a successful payment.
// Called by the payment service, not exposed over HTTP directly.
func (s *BookingService) MarkInReview(ctx context.Context, id string) error {
	if err := s.bookings.UpdateStatus(ctx, id, model.BookingStatusInReview); err != nil {
		return mapBookingStoreError(err)
	}
	return nil
}

// Delete cancels a booking. Only the tourist who placed it or an admin
// may cancel, and only while it is still pending.
func (s *BookingService) Delete(ctx context.Context, caller domainauth.Context, id string) error {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return mapBookingStoreError(err)
	}
	admin := false
	if booking.TouristEmail != caller.Email || booking.Status != model.BookingStatusPending {
		admin, err = s.callerIsAdmin(ctx, caller)
		if err != nil {
			return err
		}
	}
	if booking.TouristEmail != caller.Email && !admin {
		return apperrors.Forbidden("not the booking owner")
	}
	if booking.Status != model.BookingStatusPending && !admin {
		return apperrors.Conflict("only pending bookings can be cancelled")
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return mapBookingStoreError(err)
	}
	return nil
}

func (s *BookingService) callerIsAdmin(ctx context.Context, caller domainauth.Context) (bool, error) {
	role, err := freshRole(ctx, s.roles, caller)
	if err != nil {
		return false, err
	}
	return role == domainauth.RoleAdmin, nil
}

func mapBookingStoreError(err error) error {
	switch {
	case errors.Is(err, data.ErrBookingNotFound):
		return apperrors.NotFound("booking not found")
	case errors.Is(err, data.ErrInvalidID):
		return apperrors.ValidationField("id", "invalid booking id")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "booking store")
	}
}
