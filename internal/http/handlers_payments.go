package httpx

import (
	"errors"
	"net/http"

	"github.com/tourdesh/tourdesh-api/internal/service"
)

// paymentsDisabled answers payment routes when no provider is
// configured.
func paymentsDisabled(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{
		Code:    http.StatusServiceUnavailable,
		ErrCode: "payments_disabled",
		Err:     errors.New("payment provider is not configured"),
	})
}

// PaymentHandlers provides HTTP handlers for the two-step payment flow.
type PaymentHandlers struct {
	Svc *service.PaymentService
}

type createIntentRequest struct {
	BookingID string `json:"bookingId"`
}

type createIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CreateIntent handles POST /payments/intent. The charged amount comes
// from the stored booking price, never from the request.
func (h *PaymentHandlers) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req createIntentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	intent, err := h.Svc.CreateIntent(r.Context(), authCtx, req.BookingID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, createIntentResponse{ClientSecret: intent.ClientSecret})
}

type confirmPaymentRequest struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
}

// Confirm handles POST /payments/confirm. Records the payment and moves
// the booking to in review.
func (h *PaymentHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	payment, err := h.Svc.Confirm(r.Context(), authCtx, req.BookingID, req.TransactionID)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, payment)
}
