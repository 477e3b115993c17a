package httpx

import (
	"net/http"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// UserHandlers provides HTTP handlers for user accounts and roles.
type UserHandlers struct {
	Svc *service.UserService
}

type registerUserRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// Register handles POST /users. Registration is find-or-create per email:
// the status code tells the client which happened.
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Register(r.Context(), model.User{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}

	code := http.StatusOK
	if res.Created {
		code = http.StatusCreated
	}
	WriteJSON(w, code, res.User)
}

// Search handles GET /users?search=term. Admin only; the caller is
// excluded from the results.
func (h *UserHandlers) Search(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())

	users, err := h.Svc.Search(r.Context(), r.URL.Query().Get("search"), authCtx.Email)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, users)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole handles PATCH /users/{email}/role. Admin only. The change
// takes effect on the target's next gated request, not on token refresh.
func (h *UserHandlers) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req updateRoleRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	email := r.PathValue("email")
	if err := h.Svc.UpdateRole(r.Context(), email, domainauth.Role(req.Role)); err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"email": email, "role": req.Role})
}

// Role handles GET /users/role. It answers for the caller only, with
// the role read from the store rather than echoed from the credential.
func (h *UserHandlers) Role(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())

	role, err := h.Svc.RoleOf(r.Context(), authCtx.Email)
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"email": authCtx.Email, "role": string(role)})
}

// Get handles GET /users/{id}.
func (h *UserHandlers) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.Svc.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

// UpdateProfile handles PATCH /users/{email}. Callers edit their own
// profile; admins may edit anyone's.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	update := data.ProfileUpdate{DisplayName: req.DisplayName, PhotoURL: req.PhotoURL}
	if err := h.Svc.UpdateProfile(r.Context(), authCtx, r.PathValue("email"), update); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TourGuides handles GET /tour-guides. Public listing.
func (h *UserHandlers) TourGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.Svc.TourGuides(r.Context())
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, guides)
}
