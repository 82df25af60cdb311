// Package live carries the websocket chat surface: one socket per session,
// one engine turn per inbound frame.
package live

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/mindmate-ai/mindmate/backend/internal/service/engine"
)

// Handler upgrades connections and relays turns to the engine.
type Handler struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(eng *engine.Engine) *Handler {
	return &Handler{
		engine: eng,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the live chat route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live/{sessionID}", h.handleSocket)
}

type inboundTurn struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

type outboundTurn struct {
	Reply string `json:"reply,omitempty"`
	Tip   string `json:"tip,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	log.Printf("[live] socket opened for session=%s", sessionID)

	for {
		var inbound inboundTurn
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[live] socket closed unexpectedly for session=%s: %v", sessionID, err)
			}
			return
		}

		resp, err := h.engine.HandleTurn(r.Context(), engine.TurnRequest{
			SessionID:   sessionID,
			DisplayName: inbound.Name,
			Message:     inbound.Message,
		})
		if err != nil {
			msg := "failed to process turn"
			if errors.Is(err, engine.ErrEmptyMessage) {
				msg = "message is required"
			}
			if writeErr := conn.WriteJSON(outboundTurn{Error: msg}); writeErr != nil {
				return
			}
			continue
		}

		if err := conn.WriteJSON(outboundTurn{Reply: resp.Reply, Tip: resp.Tip}); err != nil {
			log.Printf("[live] write failed for session=%s: %v", sessionID, err)
			return
		}
	}
}
