package httpx

import (
	"net/http"

	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	"github.com/tourdesh/tourdesh-api/internal/service"
)

// StoryHandlers provides HTTP handlers for travel stories.
type StoryHandlers struct {
	Svc *service.StoryService
}

// List handles GET /stories?addedBy=email.
func (h *StoryHandlers) List(w http.ResponseWriter, r *http.Request) {
	stories, err := h.Svc.List(r.Context(), r.URL.Query().Get("addedBy"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stories)
}

// Get handles GET /stories/{id}.
func (h *StoryHandlers) Get(w http.ResponseWriter, r *http.Request) {
	story, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, story)
}

type createStoryRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// Create handles POST /stories. The author is always the caller.
func (h *StoryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createStoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	created, err := h.Svc.Create(r.Context(), authCtx, model.Story{
		Title:   req.Title,
		Content: req.Content,
		Images:  req.Images,
	})
	if err != nil {
		RenderAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type updateStoryRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Update handles PATCH /stories/{id}. Author or admin only.
func (h *StoryHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req updateStoryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	if err := h.Svc.UpdateContent(r.Context(), authCtx, r.PathValue("id"), req.Title, req.Content); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type toggleImageRequest struct {
	ImgURL string `json:"imgUrl"`
}

// ToggleImage handles PATCH /stories/{id}/images. Adds the image if
// absent, removes it if present.
func (h *StoryHandlers) ToggleImage(w http.ResponseWriter, r *http.Request) {
	var req toggleImageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	authCtx, _ := GetAuthContext(r.Context())
	if err := h.Svc.ToggleImage(r.Context(), authCtx, r.PathValue("id"), req.ImgURL); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /stories/{id}. Author or admin only.
func (h *StoryHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	authCtx, _ := GetAuthContext(r.Context())
	if err := h.Svc.Delete(r.Context(), authCtx, r.PathValue("id")); err != nil {
		RenderAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
