package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/folioworks/folio/pkg/folio"
)

// MediaHandler handles HTTP requests for media assets
type MediaHandler struct {
	service folio.Service
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service folio.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// Routes returns the routes for media
func (h *MediaHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.UploadMedia)
	r.Get("/", h.ListMedia)
	r.Get("/{id}/url", h.GetMediaURL)
	r.Get("/{id}/download", h.DownloadMedia)
	r.Delete("/{id}", h.DeleteMedia)

	return r
}

// MediaURLResponse is the response body for a media download URL
type MediaURLResponse struct {
	URL string `json:"url"`
}

const maxMediaBytes = 32 << 20 // 32 MiB

// UploadMedia accepts a multipart file upload and stores it in the
// configured media store
func (h *MediaHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxMediaBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing 'file' field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	media, err := h.service.UploadMedia(r.Context(), file, folio.UploadMediaRequest{
		OwnerID:   ownerID,
		FileName:  header.Filename,
		MimeType:  header.Header.Get("Content-Type"),
		StoreName: r.FormValue("store"),
	})
	if err != nil {
		slog.Error("Failed to upload media", "owner_id", ownerID, "file_name", header.Filename, "error", err)
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Media uploaded", "media_id", media.ID, "object_key", media.ObjectKey)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, media)
}

// ListMedia lists the owner's media records, newest first
func (h *MediaHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	media, err := h.service.ListMedia(r.Context(), ownerID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, media)
}

// GetMediaURL returns a download URL for a media asset
func (h *MediaHandler) GetMediaURL(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid media ID", http.StatusBadRequest)
		return
	}

	url, err := h.service.GetMediaURL(r.Context(), id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MediaURLResponse{URL: url})
}

// DownloadMedia streams the media content through the server. Used for
// stores that cannot presign URLs.
func (h *MediaHandler) DownloadMedia(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid media ID", http.StatusBadRequest)
		return
	}

	reader, err := h.service.DownloadMedia(r.Context(), ownerID, id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		slog.Error("Failed to stream media", "media_id", id, "error", err)
	}
}

// DeleteMedia removes a media record and its stored content
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid media ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteMedia(r.Context(), ownerID, id); err != nil {
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Media deleted", "media_id", id)
	w.WriteHeader(http.StatusNoContent)
}
