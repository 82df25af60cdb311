// Package engine orchestrates a single dialogue turn: crisis screening,
// classification, session memory, composition, and logging.
package engine

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/crisis"
	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
	"github.com/mindmate-ai/mindmate/backend/internal/service/classifier"
	"github.com/mindmate-ai/mindmate/backend/internal/service/composer"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
	"github.com/mindmate-ai/mindmate/backend/internal/store/chatlog"
)

// ErrEmptyMessage flags a turn with no message text. Callers translate it to
// their own surface (HTTP 400, CLI prompt).
var ErrEmptyMessage = errors.New("message is required")

// defaultName appears in the chat log when the caller supplied no display
// name. The reply itself is only personalized with explicitly supplied names.
const defaultName = "Guest"

// TurnRequest is the engine's input boundary.
type TurnRequest struct {
	SessionID   string
	DisplayName string
	Message     string
}

// TurnResponse is what the caller renders. Crisis turns carry no tip.
type TurnResponse struct {
	Reply  string `json:"reply"`
	Tip    string `json:"tip,omitempty"`
	Crisis bool   `json:"-"`
}

// TurnLog is the slice of the chat log the engine writes to.
type TurnLog interface {
	Append(ctx context.Context, name, message string, label emotion.Label, ts time.Time) (chatlog.Entry, error)
}

// Engine wires the per-turn pipeline together.
type Engine struct {
	strategy classifier.Strategy
	sessions *session.Service
	composer *composer.Composer
	logs     TurnLog
	timeout  time.Duration
}

// New assembles an engine. The classifier strategy is fixed for the process
// lifetime.
func New(strategy classifier.Strategy, sessions *session.Service, comp *composer.Composer, logs TurnLog, classifyTimeout time.Duration) *Engine {
	if classifyTimeout <= 0 {
		classifyTimeout = 10 * time.Second
	}
	return &Engine{
		strategy: strategy,
		sessions: sessions,
		composer: comp,
		logs:     logs,
		timeout:  classifyTimeout,
	}
}

// HandleTurn processes one utterance. Crisis turns return the fixed safety
// message and touch neither the classifier, session memory, nor the chat log.
// A failed log append is reported but never blocks the reply.
func (e *Engine) HandleTurn(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return TurnResponse{}, ErrEmptyMessage
	}

	if e.crisisDetected(req.Message) {
		return TurnResponse{Reply: crisis.SafetyMessage, Crisis: true}, nil
	}

	label := e.classify(ctx, req.Message)

	state := e.sessions.Acquire(req.SessionID)
	before := state.Snapshot()
	result := e.composer.Compose(composer.Input{
		Emotion:     label,
		DisplayName: req.DisplayName,
		Before:      before,
	})
	state.Remember(message, label, result.BaseReply)
	state.Release()

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = defaultName
	}
	if _, err := e.logs.Append(ctx, name, req.Message, label, time.Now().UTC()); err != nil {
		log.Printf("[engine] chat log append failed, reply still delivered: %v", err)
	}

	return TurnResponse{Reply: result.Reply, Tip: result.Tip}, nil
}

// crisisDetected fails safe: if the guard itself panics, the turn is treated
// as a crisis rather than slipping through unscreened.
func (e *Engine) crisisDetected(text string) (matched bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[engine] crisis guard panicked, failing safe: %v", r)
			matched = true
		}
	}()
	return crisis.Detect(text)
}

// classify bounds the strategy call with the configured timeout and
// substitutes neutral on any per-turn failure.
func (e *Engine) classify(ctx context.Context, text string) emotion.Label {
	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result, err := e.strategy.Classify(cctx, text)
	if err != nil {
		log.Printf("[engine] %s classifier failed, substituting neutral: %v", e.strategy.Name(), err)
		return emotion.Neutral
	}
	log.Printf("[engine] classified emotion=%s confidence=%.2f strategy=%s", result.Label, result.Confidence, e.strategy.Name())
	return result.Label
}
