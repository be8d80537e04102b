package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DatabaseURL   string
	MigrationsDir string

	// Redis (optional; empty disables the message cache)
	RedisURL string

	// AI provider selection: "deepseek" or "gemini"
	AIProvider string

	// DeepSeek (OpenAI-compatible API)
	DeepSeekAPIKey  string
	DeepSeekBaseURL string
	DeepSeekModel   string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Generation settings shared by both providers
	SystemPrompt string
	MaxTokens    int
	Temperature  float64

	// Static frontend
	StaticDir string

	// Frontend
	FrontendURL string
}

const defaultSystemPrompt = "You are a helpful healthcare assistant. Provide accurate, professional medical advice. Always recommend consulting a doctor for serious concerns."

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:            getEnvOrDefault("PORT", "8080"),
		Env:             getEnvOrDefault("ENV", "development"),
		DatabaseURL:     mustGetEnv("DATABASE_URL"),
		MigrationsDir:   getEnvOrDefault("MIGRATIONS_DIR", "migrations"),
		RedisURL:        getEnvOrDefault("REDIS_URL", ""),
		AIProvider:      getEnvOrDefault("AI_PROVIDER", "deepseek"),
		DeepSeekAPIKey:  getEnvOrDefault("DEEPSEEK_API_KEY", ""),
		DeepSeekBaseURL: getEnvOrDefault("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
		DeepSeekModel:   getEnvOrDefault("DEEPSEEK_MODEL", "deepseek-chat"),
		GeminiAPIKey:    getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:     getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		SystemPrompt:    getEnvOrDefault("AI_SYSTEM_PROMPT", defaultSystemPrompt),
		MaxTokens:       getEnvAsIntOrDefault("AI_MAX_TOKENS", 500),
		Temperature:     getEnvAsFloatOrDefault("AI_TEMPERATURE", 0.7),
		StaticDir:       getEnvOrDefault("STATIC_DIR", "web"),
		FrontendURL:     getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}
