package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carebot-backend/internal/ai"
	"carebot-backend/internal/cache"
	"carebot-backend/internal/config"
	"carebot-backend/internal/database"
	"carebot-backend/internal/handlers"
	"carebot-backend/internal/repository"
	"carebot-backend/internal/router"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting CareBot backend", zap.String("env", cfg.Env))

	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("PostgreSQL connection failed", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("PostgreSQL connected")

	if err := database.RunMigrations(pool, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Redis connection failed", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
		logger.Info("Redis connected, message cache enabled")
	} else {
		logger.Info("REDIS_URL not set, message cache disabled")
	}

	aiClient, err := newAIClient(cfg, logger)
	if err != nil {
		logger.Fatal("AI client initialization failed", zap.Error(err))
	}
	defer aiClient.Close()
	logger.Info("AI client initialized", zap.String("provider", cfg.AIProvider), zap.String("model", providerModel(cfg)))

	chatRepo := repository.NewChatRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)
	msgCache := cache.NewMessageCache(redisClient)

	chatHandler := handlers.NewChatHandler(chatRepo, messageRepo, msgCache, logger)
	messageHandler := handlers.NewMessageHandler(chatRepo, messageRepo, aiClient, msgCache, logger)

	r := router.New(chatHandler, messageHandler, cfg.StaticDir, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Completion calls ride the response, so the write timeout must
		// outlast the AI request timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	logger.Info("server ready", zap.String("port", cfg.Port))

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newAIClient(cfg *config.Config, logger *zap.Logger) (ai.Client, error) {
	switch strings.ToLower(cfg.AIProvider) {
	case "deepseek":
		return ai.NewDeepSeekClient(cfg.DeepSeekBaseURL, cfg.DeepSeekAPIKey, cfg.DeepSeekModel, cfg.SystemPrompt, cfg.MaxTokens, cfg.Temperature, logger), nil
	case "gemini":
		return ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SystemPrompt, cfg.MaxTokens, cfg.Temperature, logger)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}
}

func providerModel(cfg *config.Config) string {
	if strings.ToLower(cfg.AIProvider) == "gemini" {
		return cfg.GeminiModel
	}
	return cfg.DeepSeekModel
}
