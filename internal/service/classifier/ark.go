package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
)

// Ark classifies via a hosted chat model behind an eino prompt chain. The
// chain is compiled once at construction; a compile or model failure there is
// a startup error, never a per-turn one.
type Ark struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewArk builds the external strategy on top of an already-configured chat
// model.
func NewArk(ctx context.Context, chatModel model.ChatModel) (*Ark, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("ark classifier requires a chat model")
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile classifier chain: %w", err)
	}

	return &Ark{chain: runnable}, nil
}

// Classify invokes the model and validates its JSON verdict against the
// closed label set. Callers bound ctx with the per-turn timeout.
func (a *Ark) Classify(ctx context.Context, text string) (Result, error) {
	msg, err := a.chain.Invoke(ctx, map[string]any{"utterance": strings.TrimSpace(text)})
	if err != nil {
		return Result{}, fmt.Errorf("classifier invoke failed: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return Result{}, fmt.Errorf("classifier returned empty content")
	}

	payload, err := parseVerdict(msg.Content)
	if err != nil {
		return Result{}, fmt.Errorf("classifier output parse failed: %w", err)
	}

	label, ok := emotion.ParseLabel(payload.Emotion)
	if !ok {
		return Result{}, fmt.Errorf("classifier returned unknown label %q", payload.Emotion)
	}

	confidence := payload.Confidence
	if confidence <= 0 {
		confidence = 0.6
	}
	if confidence > 1 {
		confidence = 1
	}

	return Result{Label: label, Confidence: confidence}, nil
}

// Name identifies the strategy in logs.
func (*Ark) Name() string { return "ark" }

type verdictPayload struct {
	Emotion    string  `json:"emotion"`
	Confidence float32 `json:"confidence"`
}

// parseVerdict pulls the first JSON object out of the model reply, tolerating
// stray prose around it.
func parseVerdict(content string) (*verdictPayload, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, fmt.Errorf("missing json object")
	}

	payload := &verdictPayload{}
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), payload); err != nil {
		return nil, err
	}
	return payload, nil
}

const classifierSystemPrompt = "You are an affect classifier for a supportive listening service. " +
	"Read the user's utterance and decide which single label fits best. " +
	"Valid labels: joy, joy_high, sadness, sadness_high, anger, anger_high, fear, fear_high, neutral. " +
	"Use a _high variant only when the wording shows strong intensity (e.g. \"extremely\", \"overwhelming\"). " +
	"Respond with exactly one JSON object: {\"emotion\": <label>, \"confidence\": <0..1>}. No other text."

const classifierUserPrompt = "Utterance:\n{utterance}"
