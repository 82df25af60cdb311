package chat

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate-ai/mindmate/backend/internal/service/engine"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
	"github.com/mindmate-ai/mindmate/backend/pkg/utils"
)

// Handler exposes the conversational turn endpoints.
type Handler struct {
	engine *engine.Engine
}

// New creates the chat handler.
func New(eng *engine.Engine) *Handler {
	return &Handler{engine: eng}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Post("/chat", h.handleChat)
}

// handleCreateSession mints a fresh conversation identifier.
func (h *Handler) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusCreated, map[string]string{"sessionId": session.NewSessionID()})
}

// handleChat runs one dialogue turn.
func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string `json:"sessionId"`
		Name      string `json:"name"`
		Message   string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	resp, err := h.engine.HandleTurn(r.Context(), engine.TurnRequest{
		SessionID:   payload.SessionID,
		DisplayName: payload.Name,
		Message:     payload.Message,
	})
	if err != nil {
		if errors.Is(err, engine.ErrEmptyMessage) {
			utils.RespondError(w, http.StatusBadRequest, "message is required")
			return
		}
		log.Printf("[chat] turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to process turn")
		return
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}
