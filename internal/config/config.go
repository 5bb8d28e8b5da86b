package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabasePath  string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string
}

// Load reads configuration from the environment, with .env as a fallback for
// local development. Only the completion API key is mandatory; everything else
// has a usable default. The JWT secret is read by the auth package directly.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          os.Getenv("PORT"),
		DatabasePath:  os.Getenv("DB_PATH"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "./wellness_planner.db"
	}
	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return cfg, nil
}
