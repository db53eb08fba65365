package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/folioworks/folio/pkg/folio"
)

// PortfolioHandler serves the public, read-only portfolio view. No
// authentication: private profiles and sections are simply not there.
type PortfolioHandler struct {
	service folio.Service
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(service folio.Service) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Routes returns the public portfolio routes
func (h *PortfolioHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{slug}", h.GetPortfolio)

	return r
}

// GetPortfolio renders a public portfolio by profile slug
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		http.Error(w, "Missing slug", http.StatusBadRequest)
		return
	}

	portfolio, err := h.service.GetPortfolio(r.Context(), slug)
	if err != nil {
		// A private profile answers exactly like a missing one
		renderServiceError(w, r, err)
		return
	}

	render.JSON(w, r, portfolio)
}
