package dashboard

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
	"github.com/mindmate-ai/mindmate/backend/pkg/utils"
)

// Aggregates is the read-only slice of the chat log the dashboard consumes.
type Aggregates interface {
	CountAll(ctx context.Context) (int, error)
	CountByEmotion(ctx context.Context) (map[emotion.Label]int, error)
	MostFrequent(ctx context.Context) (string, error)
}

// Handler serves the aggregate view over logged turns.
type Handler struct {
	store Aggregates
}

// New creates the dashboard handler.
func New(store Aggregates) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the dashboard route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.handleDashboard)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	total, err := h.store.CountAll(ctx)
	if err != nil {
		log.Printf("[dashboard] count query failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load dashboard data")
		return
	}

	breakdown, err := h.store.CountByEmotion(ctx)
	if err != nil {
		log.Printf("[dashboard] breakdown query failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load dashboard data")
		return
	}

	frequent, err := h.store.MostFrequent(ctx)
	if err != nil {
		log.Printf("[dashboard] most frequent query failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load dashboard data")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"totalTurns":          total,
		"emotionBreakdown":    breakdown,
		"mostFrequentEmotion": frequent,
	})
}
