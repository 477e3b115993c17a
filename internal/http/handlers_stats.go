package httpx

import (
	"net/http"

	"github.com/tourdesh/tourdesh-api/internal/service"
)

// StatsHandlers provides HTTP handlers for dashboard counters.
type StatsHandlers struct {
	Svc *service.StatsService
}

// Admin handles GET /admin-stats. Admin only.
func (h *StatsHandlers) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.AdminStats(r.Context())
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

// User handles GET /user-stats, scoped to the caller.
func (h *StatsHandlers) User(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())
	stats, err := h.Svc.UserStats(r.Context(), authCtx.Email)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}
