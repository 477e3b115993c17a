package httpx

import (
	"net/http"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// ApplicationHandlers provides HTTP handlers for tour guide applications.
type ApplicationHandlers struct {
	Svc *service.ApplicationService
}

// List handles GET /applications. Admin only; each row carries the
// applicant's current role so the review queue shows already-promoted
// applicants.
func (h *ApplicationHandlers) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.Svc.List(r.Context())
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, apps)
}

type applyRequest struct {
	Title         string `json:"title"`
	Reason        string `json:"reason"`
	CVLink        string `json:"cvLink"`
	ApplicantName string `json:"applicantName"`
	PhotoURL      string `json:"photoURL"`
}

// Apply handles POST /applications. The applicant is always the caller.
func (h *ApplicationHandlers) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	created, err := h.Svc.Apply(r.Context(), authCtx, model.Application{
		Title:         req.Title,
		Reason:        req.Reason,
		CVLink:        req.CVLink,
		ApplicantName: req.ApplicantName,
		PhotoURL:      req.PhotoURL,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type approveRequest struct {
	ApplicantEmail string `json:"applicantEmail"`
}

// Approve handles POST /applications/{id}/approve. Admin only.
func (h *ApplicationHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.Approve(r.Context(), r.PathValue("id"), req.ApplicantEmail); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reject handles DELETE /applications/{id}. Admin only.
func (h *ApplicationHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Reject(r.Context(), r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
