// Command chat is the interactive terminal loop: one session, one turn per
// line, same engine as the HTTP API.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mindmate-ai/mindmate/backend/internal/config"
	"github.com/mindmate-ai/mindmate/backend/internal/model/reply"
	"github.com/mindmate-ai/mindmate/backend/internal/service/classifier"
	"github.com/mindmate-ai/mindmate/backend/internal/service/composer"
	"github.com/mindmate-ai/mindmate/backend/internal/service/engine"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
	"github.com/mindmate-ai/mindmate/backend/internal/store/chatlog"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	strategy, err := buildStrategy(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s classifier: %v", cfg.Classifier.Strategy, err)
	}

	logStore, err := chatlog.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open chat log store: %v", err)
	}
	defer logStore.Close()

	eng := engine.New(
		strategy,
		session.NewService(),
		composer.New(reply.Default(), cfg.Composer.TriggerWords, nil),
		logStore,
		cfg.Classifier.Timeout,
	)

	sessionID := session.NewSessionID()
	fmt.Println("MindMate (type 'exit' to stop)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "exit") {
			fmt.Println("MindMate: Take care of yourself.")
			break
		}

		resp, err := eng.HandleTurn(ctx, engine.TurnRequest{SessionID: sessionID, Message: line})
		if err != nil {
			if errors.Is(err, engine.ErrEmptyMessage) {
				continue
			}
			log.Printf("turn failed: %v", err)
			continue
		}

		fmt.Println("MindMate:", resp.Reply)
		if resp.Tip != "" {
			fmt.Println("Tip:", resp.Tip)
		}
		fmt.Println()
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func buildStrategy(ctx context.Context, cfg *config.Config) (classifier.Strategy, error) {
	if cfg.Classifier.Strategy == config.StrategyArk {
		chatModel, err := cfg.AI.NewChatModel(ctx)
		if err != nil {
			return nil, fmt.Errorf("create chat model: %w", err)
		}
		return classifier.NewArk(ctx, chatModel)
	}
	return classifier.NewLexicon(), nil
}
