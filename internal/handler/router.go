package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/mindmate-ai/mindmate/backend/internal/handler/chat"
	dashboardHandler "github.com/mindmate-ai/mindmate/backend/internal/handler/dashboard"
	liveHandler "github.com/mindmate-ai/mindmate/backend/internal/handler/live"
	middlewarePkg "github.com/mindmate-ai/mindmate/backend/internal/middleware"
	"github.com/mindmate-ai/mindmate/backend/internal/service/engine"
)

// NewRouter wires HTTP routes to the engine and the chat log aggregates.
func NewRouter(eng *engine.Engine, aggregates dashboardHandler.Aggregates) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(eng).RegisterRoutes(api)
		dashboardHandler.New(aggregates).RegisterRoutes(api)
		liveHandler.New(eng).RegisterRoutes(api)
	})

	return r
}
