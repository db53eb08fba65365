package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/folioworks/folio/pkg/folio"
)

// SectionHandler handles HTTP requests for dashboard sections
type SectionHandler struct {
	service folio.Service
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(service folio.Service) *SectionHandler {
	return &SectionHandler{service: service}
}

// Routes returns the routes for sections. All routes assume the request
// already carries a verified owner token.
func (h *SectionHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/templates", h.ListTemplates)

	r.Post("/", h.CreateSection)
	r.Get("/", h.ListSections)
	r.Put("/reorder", h.ReorderSections)
	r.Get("/{id}", h.GetSection)
	r.Patch("/{id}", h.UpdateSection)
	r.Delete("/{id}", h.DeleteSection)

	r.Post("/{id}/entries", h.AddEntry)
	r.Patch("/{id}/entries/{entryID}", h.UpdateEntry)
	r.Delete("/{id}/entries/{entryID}", h.RemoveEntry)
	r.Get("/{id}/entries/{entryID}", h.GetEntry)

	return r
}

// CreateSectionRequest is the request body for creating a section
type CreateSectionRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// UpdateSectionRequest is the request body for updating section settings
type UpdateSectionRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Layout      *string `json:"layout,omitempty"`
	IsPublic    *bool   `json:"is_public,omitempty"`
}

// EntryRequest is the request body for adding or patching an entry
type EntryRequest struct {
	Fields map[string]any `json:"fields"`
}

// ReorderRequest is the request body for reordering sections
type ReorderRequest struct {
	SectionIDs []string `json:"section_ids"`
}

// ValidationErrorResponse is returned when entry fields fail template validation
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// ListTemplates returns the section templates available for this registry
func (h *SectionHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	reg := h.service.Registry()

	var templates []*folio.TemplateDescriptor
	for _, sectionType := range reg.Types() {
		if desc := reg.Get(sectionType); desc != nil {
			templates = append(templates, desc)
		}
	}

	render.JSON(w, r, templates)
}

// CreateSection creates a new section from a registered template
func (h *SectionHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	section, err := h.service.CreateSection(r.Context(), folio.CreateSectionRequest{
		OwnerID:     ownerID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("Failed to create section", "owner_id", ownerID, "type", req.Type, "error", err)
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Section created", "section_id", section.ID, "type", section.Type)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, section)
}

// ListSections lists the owner's sections in display order
func (h *SectionHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sections, err := h.service.ListSections(r.Context(), ownerID)
	if err != nil {
		slog.Error("Failed to list sections", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, sections)
}

// GetSection retrieves one of the owner's sections by ID
func (h *SectionHandler) GetSection(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}

	section, err := h.service.GetSection(r.Context(), ownerID, id)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, section)
}

// UpdateSection updates section settings (title, layout, visibility)
func (h *SectionHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}

	var req UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := folio.UpdateSectionRequest{
		OwnerID:     ownerID,
		SectionID:   id,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if req.Layout != nil {
		layout := folio.Layout(*req.Layout)
		if !layout.IsValid() {
			http.Error(w, "Invalid layout", http.StatusBadRequest)
			return
		}
		update.Layout = &layout
	}

	section, err := h.service.UpdateSection(r.Context(), update)
	if err != nil {
		slog.Error("Failed to update section", "section_id", id, "error", err)
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, section)
}

// DeleteSection removes one of the owner's sections
func (h *SectionHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteSection(r.Context(), ownerID, id); err != nil {
		slog.Error("Failed to delete section", "section_id", id, "error", err)
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Section deleted", "section_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// ReorderSections applies a new display order to the owner's sections
func (h *SectionHandler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.SectionIDs))
	for _, raw := range req.SectionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "Invalid section ID: "+raw, http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}

	if err := h.service.ReorderSections(r.Context(), ownerID, ids); err != nil {
		slog.Error("Failed to reorder sections", "owner_id", ownerID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddEntry validates the fields against the section's template and
// appends a new entry
func (h *SectionHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.validateEntryFields(w, r, ownerID, sectionID, req.Fields) {
		return
	}

	section, entry, err := h.service.AddEntry(r.Context(), folio.AddEntryRequest{
		OwnerID:   ownerID,
		SectionID: sectionID,
		Fields:    req.Fields,
	})
	if err != nil {
		slog.Error("Failed to add entry", "section_id", sectionID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	slog.Info("Entry added", "section_id", section.ID, "entry_id", entry.ID)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, entry)
}

// UpdateEntry patches an existing entry's fields
func (h *SectionHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}
	entryID := chi.URLParam(r, "entryID")

	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	section, err := h.service.UpdateEntry(r.Context(), folio.UpdateEntryRequest{
		OwnerID:   ownerID,
		SectionID: sectionID,
		EntryID:   entryID,
		Fields:    req.Fields,
	})
	if err != nil {
		slog.Error("Failed to update entry", "section_id", sectionID, "entry_id", entryID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	if entry := folio.GetEntry(section.Content, entryID); entry != nil {
		render.JSON(w, r, entry)
		return
	}
	render.JSON(w, r, section)
}

// RemoveEntry removes an entry from a section. Removing an entry that
// is already gone succeeds.
func (h *SectionHandler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}
	entryID := chi.URLParam(r, "entryID")

	if _, err := h.service.RemoveEntry(r.Context(), folio.RemoveEntryRequest{
		OwnerID:   ownerID,
		SectionID: sectionID,
		EntryID:   entryID,
	}); err != nil {
		slog.Error("Failed to remove entry", "section_id", sectionID, "entry_id", entryID, "error", err)
		renderServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetEntry retrieves a single entry from one of the owner's sections
func (h *SectionHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	sectionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid section ID", http.StatusBadRequest)
		return
	}
	entryID := chi.URLParam(r, "entryID")

	entry, err := h.service.GetEntry(r.Context(), ownerID, sectionID, entryID)
	if err != nil {
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, entry)
}

// validateEntryFields checks the fields against the section's template
// and writes a 422 response when required fields are missing. Returns
// false when the request has been answered.
func (h *SectionHandler) validateEntryFields(w http.ResponseWriter, r *http.Request, ownerID, sectionID uuid.UUID, fields map[string]any) bool {
	section, err := h.service.GetSection(r.Context(), ownerID, sectionID)
	if err != nil {
		renderServiceError(w, r, err)
		return false
	}

	desc := h.service.Registry().Get(section.Type)
	if desc == nil {
		// Custom sections have no template to validate against
		return true
	}

	result := folio.ValidateEntry(fields, desc)
	if !result.IsValid {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, ValidationErrorResponse{
			Error:  "entry fields failed validation",
			Errors: result.Errors,
		})
		return false
	}
	return true
}

// renderServiceError maps service errors onto HTTP status codes
func renderServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, folio.ErrSectionNotFound),
		errors.Is(err, folio.ErrEntryNotFound),
		errors.Is(err, folio.ErrNoEntries),
		errors.Is(err, folio.ErrProfileNotFound),
		errors.Is(err, folio.ErrExperienceNotFound),
		errors.Is(err, folio.ErrSkillNotFound),
		errors.Is(err, folio.ErrMediaNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, folio.ErrUnknownSectionType),
		errors.Is(err, folio.ErrEntryLimit):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, folio.ErrRevisionMismatch):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
