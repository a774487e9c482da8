package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"smartspend/internal/amqp"
	"smartspend/internal/auth"
	"smartspend/internal/chat"
	"smartspend/internal/config"
	apphttp "smartspend/internal/http"
	"smartspend/internal/interpreter"
	"smartspend/internal/llm"
	applog "smartspend/internal/log"
	"smartspend/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional: without it chat works, turn archival is skipped.
	var publisher chat.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, amqpErr := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if amqpErr != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without turn archival", "error", amqpErr)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
			logger.Info("AMQP client initialized - turns will archive via smartspend-worker")
		}
	} else {
		logger.Info("AMQP disabled - conversation turns will not be archived")
	}

	gemini, err := llm.NewGemini(context.Background(), llm.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: 0.6,
		Timeout:     cfg.LLMTimeout,
		Retries:     cfg.LLMRetries,
	})
	if err != nil {
		logger.Error("Failed to initialize Gemini client", "error", err, "model", cfg.GeminiModel)
		os.Exit(1)
	}
	defer gemini.Close()

	orch := chat.NewOrchestrator(repo, gemini, interpreter.NewPattern(), publisher)
	authSvc := auth.NewService(repo)

	srv, err := apphttp.NewServer(":"+cfg.Port, orch, authSvc, repo, logger)
	if err != nil {
		logger.Error("Failed to initialize HTTP server", "error", err)
		os.Exit(1)
	}

	// The chat handler blocks on the model call, so the write timeout has
	// to outlive the LLM budget including one retry.
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = time.Duration(cfg.LLMRetries+1)*cfg.LLMTimeout + 10*time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		logger.Info("Starting smartspend server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-ctx.Done():
			return nil
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
