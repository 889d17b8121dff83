package expert

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/panelsim/expertpanel/internal/model/expert"
	"github.com/panelsim/expertpanel/pkg/utils"
)

// Handler serves the built-in expert catalog.
type Handler struct {
	experts expert.Store
}

// New creates an expert catalog handler.
func New(experts expert.Store) *Handler {
	return &Handler{experts: experts}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/domains", h.handleListDomains)
	r.Get("/domains/{domain}/experts", h.handleListExperts)
}

func (h *Handler) handleListDomains(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"domains": h.experts.Domains()})
}

func (h *Handler) handleListExperts(w http.ResponseWriter, r *http.Request) {
	domain := chi.URLParam(r, "domain")
	set, ok := h.experts.Set(domain)
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "domain not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, set)
}
