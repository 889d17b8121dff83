package stream

import (
	"fmt"
	"log"
	"net/http"

	"github.com/panelsim/expertpanel/internal/model/panel"
	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
	"github.com/panelsim/expertpanel/pkg/utils"
)

// Handler feeds live discussion turns to watchers over SSE and websocket.
type Handler struct {
	svc *panelservice.Service
}

// New creates a stream handler.
func New(svc *panelservice.Service) *Handler {
	return &Handler{svc: svc}
}

// TurnEvent is one frame of a live feed.
type TurnEvent struct {
	Event     string      `json:"event"`
	SessionID string      `json:"sessionId,omitempty"`
	Turn      *panel.Turn `json:"turn,omitempty"`
	Finished  bool        `json:"finished,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// HandleSSE streams turn events for a session until it finishes or the
// client disconnects.
func (h *Handler) HandleSSE(w http.ResponseWriter, r *http.Request, sessionID string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	turns, cancel, err := h.svc.Subscribe(r.Context(), sessionID)
	if err != nil {
		return err
	}
	defer cancel()

	utils.SetupSSEHeaders(w)
	utils.SendSSEChunk(w, flusher, TurnEvent{Event: "start", SessionID: sessionID})

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[stream] client left session=%s", sessionID)
			return nil
		case turn, open := <-turns:
			if !open {
				utils.SendSSEChunk(w, flusher, TurnEvent{Event: "end", SessionID: sessionID, Finished: true})
				return nil
			}
			utils.SendSSEChunk(w, flusher, TurnEvent{Event: "turn", SessionID: sessionID, Turn: &turn})
		}
	}
}
