package httpx

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tourdesh/tourdesh-api/internal/data"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// BookingHandlers provides HTTP handlers for bookings.
type BookingHandlers struct {
	Svc *service.BookingService
}

// List handles GET /bookings, scoped to the caller's role. The
// touristEmail and guideEmail query filters take effect for admins only.
func (h *BookingHandlers) List(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())
	filter := data.BookingFilter{
		TouristEmail: r.URL.Query().Get("touristEmail"),
		GuideEmail:   r.URL.Query().Get("guideEmail"),
	}
	bookings, err := h.Svc.ListForCaller(r.Context(), authCtx, filter)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, bookings)
}

// Get handles GET /bookings/{id}.
func (h *BookingHandlers) Get(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())
	booking, err := h.Svc.Get(r.Context(), authCtx, r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, booking)
}

type createBookingRequest struct {
	PackageID    string    `json:"packageId"`
	PackageTitle string    `json:"packageTitle"`
	GuideEmail   string    `json:"guideEmail"`
	TourDate     time.Time `json:"tourDate"`
	Price        float64   `json:"price"`
}

// Create handles POST /bookings. The tourist is always the caller.
func (h *BookingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	packageID, err := bson.ObjectIDFromHex(req.PackageID)
	if err != nil {
		RenderAppError(w, apperrors.ValidationField("packageId", "invalid package id"))
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	created, err := h.Svc.Create(r.Context(), authCtx, model.Booking{
		PackageID:    packageID,
		PackageTitle: req.PackageTitle,
		GuideEmail:   req.GuideEmail,
		TourDate:     req.TourDate,
		Price:        req.Price,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /bookings/{id}/status. Assigned guide or
// admin only; accepts only terminal review decisions.
func (h *BookingHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateBookingStatusRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	status := model.BookingStatus(req.Status)
	if err := h.Svc.UpdateStatus(r.Context(), authCtx, r.PathValue("id"), status); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /bookings/{id}. Booking owner or admin only.
func (h *BookingHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())
	if err := h.Svc.Delete(r.Context(), authCtx, r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
