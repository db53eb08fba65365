package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/folioworks/folio/pkg/folio"
)

// ProfileHandler handles HTTP requests for the owner's profile,
// experience and skills
type ProfileHandler struct {
	service folio.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service folio.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Routes returns the routes for the profile
func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.GetProfile)
	r.Put("/", h.UpsertProfile)
	r.Post("/avatar", h.UploadAvatar)

	r.Get("/experience", h.ListExperience)
	r.Post("/experience", h.SaveExperience)
	r.Put("/experience/{id}", h.SaveExperience)
	r.Delete("/experience/{id}", h.DeleteExperience)

	r.Get("/skills", h.ListSkills)
	r.Post("/skills", h.SaveSkill)
	r.Put("/skills/{id}", h.SaveSkill)
	r.Delete("/skills/{id}", h.DeleteSkill)

	return r
}

// ProfileRequest is the request body for creating or updating a profile
type ProfileRequest struct {
	DisplayName string            `json:"display_name"`
	Slug        string            `json:"slug,omitempty"`
	Headline    string            `json:"headline,omitempty"`
	Bio         string            `json:"bio,omitempty"`
	Links       map[string]string `json:"links,omitempty"`
	IsPublic    bool              `json:"is_public"`
}

// ExperienceRequest is the request body for saving an experience row
type ExperienceRequest struct {
	Role      string `json:"role"`
	Company   string `json:"company"`
	Location  string `json:"location,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Summary   string `json:"summary,omitempty"`
	Position  int    `json:"position"`
}

// SkillRequest is the request body for saving a skill row
type SkillRequest struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Level    int    `json:"level"`
	Position int    `json:"position"`
}

// GetProfile retrieves the authenticated owner's profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.service.GetProfile(r.Context(), ownerID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, profile)
}

// UpsertProfile creates or replaces the owner's profile
func (h *ProfileHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.DisplayName == "" {
		http.Error(w, "display_name is required", http.StatusBadRequest)
		return
	}

	profile, err := h.service.UpsertProfile(r.Context(), folio.UpsertProfileRequest{
		OwnerID:     ownerID,
		DisplayName: req.DisplayName,
		Slug:        req.Slug,
		Headline:    req.Headline,
		Bio:         req.Bio,
		Links:       req.Links,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		slog.Error("Failed to save profile", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Profile saved", "owner_id", ownerID, "slug", profile.Slug)
	render.JSON(w, r, profile)
}

const maxAvatarBytes = 5 << 20 // 5 MiB

// UploadAvatar accepts a multipart avatar image, stores it in the media
// store and links it to the profile
func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
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
		OwnerID:  ownerID,
		FileName: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		slog.Error("Failed to upload avatar", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	// Link the avatar to the profile, keeping the rest as-is
	profile, err := h.service.GetProfile(r.Context(), ownerID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}
	profile, err = h.service.UpsertProfile(r.Context(), folio.UpsertProfileRequest{
		OwnerID:     ownerID,
		DisplayName: profile.DisplayName,
		Slug:        profile.Slug,
		Headline:    profile.Headline,
		Bio:         profile.Bio,
		AvatarKey:   media.ObjectKey,
		Links:       profile.Links,
		IsPublic:    profile.IsPublic,
	})
	if err != nil {
		slog.Error("Failed to link avatar", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Avatar uploaded", "owner_id", ownerID, "media_id", media.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, profile)
}

// ListExperience lists the owner's experience rows in display order
func (h *ProfileHandler) ListExperience(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	experience, err := h.service.ListExperience(r.Context(), ownerID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, experience)
}

// SaveExperience creates or updates an experience row. A row ID in the
// URL updates that row; no ID creates a new one.
func (h *ProfileHandler) SaveExperience(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	save := folio.SaveExperienceRequest{
		OwnerID:   ownerID,
		Role:      req.Role,
		Company:   req.Company,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Summary:   req.Summary,
		Position:  req.Position,
	}

	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, "Invalid experience ID", http.StatusBadRequest)
			return
		}
		save.ID = &id
	}

	exp, err := h.service.SaveExperience(r.Context(), save)
	if err != nil {
		slog.Error("Failed to save experience", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	if save.ID == nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, exp)
}

// DeleteExperience removes one of the owner's experience rows
func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid experience ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteExperience(r.Context(), ownerID, id); err != nil {
		renderServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSkills lists the owner's skills in display order
func (h *ProfileHandler) ListSkills(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	skills, err := h.service.ListSkills(r.Context(), ownerID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, skills)
}

// SaveSkill creates or updates a skill row
func (h *ProfileHandler) SaveSkill(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	save := folio.SaveSkillRequest{
		OwnerID:  ownerID,
		Name:     req.Name,
		Category: req.Category,
		Level:    req.Level,
		Position: req.Position,
	}

	if idStr := chi.URLParam(r, "id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			http.Error(w, "Invalid skill ID", http.StatusBadRequest)
			return
		}
		save.ID = &id
	}

	skill, err := h.service.SaveSkill(r.Context(), save)
	if err != nil {
		slog.Error("Failed to save skill", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	if save.ID == nil {
		render.Status(r, http.StatusCreated)
	}
	render.JSON(w, r, skill)
}

// DeleteSkill removes one of the owner's skills
func (h *ProfileHandler) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid skill ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteSkill(r.Context(), ownerID, id); err != nil {
		renderServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
