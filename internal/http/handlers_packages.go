package httpx

import (
	"net/http"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// PackageHandlers provides HTTP handlers for the tour package catalog.
type PackageHandlers struct {
	Svc *service.PackageService
}

// List handles GET /packages.
func (h *PackageHandlers) List(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.Svc.List(r.Context())
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, pkgs)
}

// Get handles GET /packages/{id}.
func (h *PackageHandlers) Get(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, pkg)
}

type createPackageRequest struct {
	Title       string   `json:"title"`
	TourType    string   `json:"tourType"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Create handles POST /packages. Admin only.
func (h *PackageHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createPackageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	created, err := h.Svc.Create(r.Context(), model.TourPackage{
		Title:       req.Title,
		TourType:    req.TourType,
		Price:       req.Price,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}
