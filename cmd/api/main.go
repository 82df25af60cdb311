package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mindmate-ai/mindmate/backend/internal/config"
	"github.com/mindmate-ai/mindmate/backend/internal/handler"
	"github.com/mindmate-ai/mindmate/backend/internal/model/reply"
	"github.com/mindmate-ai/mindmate/backend/internal/service/classifier"
	"github.com/mindmate-ai/mindmate/backend/internal/service/composer"
	"github.com/mindmate-ai/mindmate/backend/internal/service/engine"
	"github.com/mindmate-ai/mindmate/backend/internal/service/session"
	"github.com/mindmate-ai/mindmate/backend/internal/store/chatlog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// The classification strategy is fixed here for the process lifetime; an
	// unavailable external strategy aborts startup rather than failing turns.
	strategy, err := buildStrategy(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s classifier: %v", cfg.Classifier.Strategy, err)
	}
	log.Printf("classifier strategy: %s", strategy.Name())

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

	router := handler.NewRouter(eng, logStore)

	startServer(ctx, cfg.Server, router)
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

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("MindMate backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
