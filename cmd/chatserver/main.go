package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hotelrev/revman/internal/chat"
	"github.com/hotelrev/revman/internal/config"
	"github.com/hotelrev/revman/internal/gemini"
)

func main() {
	cfg := config.LoadFromEnv()
	if err := cfg.ValidateChat(); err != nil {
		fatal("configuration", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fatal("creating logger", err)
	}
	defer logger.Sync()

	llm, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fatal("creating gemini client", err)
	}

	if cfg.AppsScriptURL == "" {
		logger.Warn("APPS_SCRIPT_URL not set, chat sessions will not be saved")
	}

	srv := chat.New(chat.ServerConfig{
		LLM:           llm,
		AppsScriptURL: cfg.AppsScriptURL,
		Port:          cfg.HTTPPort,
		Logger:        logger,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv, logger)
}

func waitForShutdown(srv *chat.Server, logger *zap.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func fatal(what string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
	os.Exit(1)
}
