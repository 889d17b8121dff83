package panel

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
	"github.com/panelsim/expertpanel/pkg/utils"
)

// Handler exposes panel sessions over HTTP.
type Handler struct {
	orch *panelservice.Orchestrator
}

// New creates a panel handler.
func New(orch *panelservice.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/panels", h.handleCreatePanel)
	r.Get("/panels", h.handleListPanels)
	r.Get("/panels/{sessionID}", h.handleGetPanel)
	r.Get("/panels/{sessionID}/transcript", h.handleGetTranscript)
}

type createPanelRequest struct {
	Topic       string   `json:"topic"`
	Domain      string   `json:"domain"`
	Experts     []string `json:"experts,omitempty"`
	ExpertCount int      `json:"expertCount,omitempty"`
	Rounds      []string `json:"rounds,omitempty"`
	Document    string   `json:"document,omitempty"`
}

// handleCreatePanel starts a discussion. The run executes asynchronously;
// the response carries the session record to poll or stream against.
func (h *Handler) handleCreatePanel(w http.ResponseWriter, r *http.Request) {
	var payload createPanelRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(payload.Topic) == "" {
		utils.RespondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	spec := panelservice.Spec{
		Topic:       strings.TrimSpace(payload.Topic),
		Document:    payload.Document,
		Domain:      payload.Domain,
		ExpertKeys:  payload.Experts,
		ExpertCount: payload.ExpertCount,
		Rounds:      payload.Rounds,
	}

	run, err := h.orch.Start(r.Context(), spec)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, panelservice.ErrPanelUndefined) {
			status = http.StatusUnprocessableEntity
		}
		utils.RespondError(w, status, err.Error())
		return
	}

	session := run.Session()

	// The discussion outlives the request.
	go func() {
		if _, err := h.orch.ExecuteAndReport(context.Background(), run); err != nil {
			log.Printf("[panel] session %s failed: %v", session.ID, err)
		}
	}()

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleListPanels(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.orch.Service().ListSessions(r.Context()))
}

func (h *Handler) handleGetPanel(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	session, err := h.orch.Service().GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	turns, err := h.orch.Service().Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, turns)
}
