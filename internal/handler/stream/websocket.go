package stream

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
	"github.com/panelsim/expertpanel/pkg/utils"
)

// WebSocketHandler pushes live discussion turns over a websocket.
type WebSocketHandler struct {
	svc      *panelservice.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates a websocket watch handler.
func NewWebSocketHandler(svc *panelservice.Service) *WebSocketHandler {
	return &WebSocketHandler{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the watch endpoint.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/panels/{sessionID}/watch", h.handleWatch)
}

func (h *WebSocketHandler) handleWatch(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	turns, cancel, err := h.svc.Subscribe(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[watch] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	// Drain reads so close frames from the client are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case turn, open := <-turns:
			if !open {
				deadline := time.Now().Add(time.Second)
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session finished"), deadline)
				return
			}
			if err := conn.WriteJSON(TurnEvent{Event: "turn", SessionID: sessionID, Turn: &turn}); err != nil {
				log.Printf("[watch] write failed for session=%s: %v", sessionID, err)
				return
			}
		}
	}
}
