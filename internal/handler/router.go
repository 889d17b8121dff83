package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	expertHandler "github.com/panelsim/expertpanel/internal/handler/expert"
	panelHandler "github.com/panelsim/expertpanel/internal/handler/panel"
	"github.com/panelsim/expertpanel/internal/handler/stream"
	middlewarePkg "github.com/panelsim/expertpanel/internal/middleware"
	panelservice "github.com/panelsim/expertpanel/internal/service/panel"
	"github.com/panelsim/expertpanel/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(orch *panelservice.Orchestrator) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	catalogHandler := expertHandler.New(orch.Store())
	sessionHandler := panelHandler.New(orch)
	streamHandler := stream.New(orch.Service())
	watchHandler := stream.NewWebSocketHandler(orch.Service())

	r.Route("/api", func(api chi.Router) {
		catalogHandler.RegisterRoutes(api)
		sessionHandler.RegisterRoutes(api)
		watchHandler.RegisterRoutes(api)

		api.Get("/panels/{sessionID}/stream", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			if err := streamHandler.HandleSSE(w, r, sessionID); err != nil {
				log.Printf("[stream] error handling request: %v", err)
				utils.RespondError(w, http.StatusInternalServerError, "streaming failed")
			}
		})
	})

	return r
}
