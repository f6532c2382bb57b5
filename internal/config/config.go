package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	HTTPAddr        string
	GRPCAddr        string
	SearchProvider  string
	GeminiAPIKey    string
	GeminiModel     string
	GroqAPIKey      string
	CerebrasAPIKey  string
	SerpAPIKey      string
	DatabaseURL     string
	HistoryLimit    int
	SearchTimeout   time.Duration
	SettingsRefresh time.Duration
	LogLevel        string
	AllowedOrigins  []string
}

// Load loads configuration from environment variables
func Load() Config {
	return Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		GRPCAddr:        getEnv("GRPC_ADDR", ":50051"),
		SearchProvider:  strings.ToLower(getEnv("SEARCH_PROVIDER", "gemini")),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		CerebrasAPIKey:  os.Getenv("CEREBRAS_API_KEY"),
		SerpAPIKey:      os.Getenv("SERPAPI_API_KEY"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		HistoryLimit:    getEnvInt("HISTORY_LIMIT", 10),
		SearchTimeout:   getEnvDuration("SEARCH_TIMEOUT", 90*time.Second),
		SettingsRefresh: getEnvDuration("SETTINGS_REFRESH", 5*time.Minute),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins:  getEnvList("ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
