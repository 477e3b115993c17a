package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/tourdesh/tourdesh-api/internal/adapters/stripeapi"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// IntentCreator opens a payment intent with the payment provider.
// stripeapi.Client satisfies it.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (stripeapi.PaymentIntent, error)
}

// PaymentRecorder persists confirmed payments. data.PaymentRepo
// satisfies it.
type PaymentRecorder interface {
	Insert(ctx context.Context, payment model.Payment) (model.Payment, error)
}

// BookingLookup is the slice of the booking service the payment flow
// needs.
type BookingLookup interface {
	Get(ctx context.Context, caller domainauth.Context, id string) (model.Booking, error)
	MarkInReview(ctx context.Context, id string) error
}

// PaymentService drives the two-step payment flow: open an intent with
// the provider, then record the confirmed payment and move the booking
// to in review.
type PaymentService struct {
	provider IntentCreator
	payments PaymentRecorder
	bookings BookingLookup
	currency string
	log      *slog.Logger
}

// NewPaymentService constructs a new PaymentService. Amounts are
// charged in the given ISO currency.
func NewPaymentService(provider IntentCreator, payments PaymentRecorder, bookings BookingLookup, currency string, log *slog.Logger) *PaymentService {
	if currency == "" {
		currency = "usd"
	}
	if log == nil {
		log = slog.Default()
	}
	return &PaymentService{
		provider: provider,
		payments: payments,
		bookings: bookings,
		currency: currency,
		log:      log,
	}
}

// priceToCents converts a display-currency price to provider minor
// units, rounding half away from zero.
func priceToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent opens a payment intent for the booking's price. The
// amount always comes from the stored booking, never from the caller.
func (s *PaymentService) CreateIntent(ctx context.Context, caller domainauth.Context, bookingID string) (stripeapi.PaymentIntent, error) {
	booking, err := s.bookings.Get(ctx, caller, bookingID)
	if err != nil {
		return stripeapi.PaymentIntent{}, err
	}
	if booking.TouristEmail != caller.Email {
		return stripeapi.PaymentIntent{}, apperrors.Forbidden("not the booking owner")
	}
	if booking.Price <= 0 {
		return stripeapi.PaymentIntent{}, apperrors.ValidationField("price", "booking has no chargeable price")
	}

	intent, err := s.provider.CreateIntent(ctx, priceToCents(booking.Price), s.currency)
	if err != nil {
		return stripeapi.PaymentIntent{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "create payment intent")
	}
	return intent, nil
}

// Confirm records a completed payment and flips the booking to in
// review. The persisted amount is the stored booking price, and
// PaymentBy is the caller from the verified session.
func (s *PaymentService) Confirm(ctx context.Context, caller domainauth.Context, bookingID, transactionID string) (model.Payment, error) {
	if transactionID == "" {
		return model.Payment{}, apperrors.ValidationField("transactionId", "transaction id is required")
	}

	booking, err := s.bookings.Get(ctx, caller, bookingID)
	if err != nil {
		return model.Payment{}, err
	}
	if booking.TouristEmail != caller.Email {
		return model.Payment{}, apperrors.Forbidden("not the booking owner")
	}

	payment := model.Payment{
		BookingID:     booking.ID,
		PackageID:     booking.PackageID,
		PaymentBy:     caller.Email,
		Amount:        booking.Price,
		TransactionID: transactionID,
	}
	stored, err := s.payments.Insert(ctx, payment)
	if err != nil {
		return model.Payment{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "record payment")
	}

	if err := s.bookings.MarkInReview(ctx, bookingID); err != nil {
		s.log.Error("payment recorded but booking status update failed",
			"booking_id", bookingID, "error", err)
		return model.Payment{}, err
	}
	return stored, nil
}
