package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port   string
	APIKey string

	// Manifest scorer gate
	ScorerBin            string
	ScorerGradeThreshold int

	// Secrets gate. When SecretsBin is empty and SecretsURL is unset,
	// the built-in Go source analyzer is used.
	SecretsBin    string
	SecretsURL    string
	SecretsAPIKey string

	// External tool execution
	ToolTimeout time.Duration

	// Resolve API sessions
	SessionTTL time.Duration
}

// Load reads configuration from the environment, applying defaults.
// A .env file in the working directory is honored; variables already
// set take precedence.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:   envOr("PORT", "8087"),
		APIKey: os.Getenv("GATESCAN_API_KEY"),

		ScorerBin:            envOr("SCORER_BIN", "kube-score"),
		ScorerGradeThreshold: envInt("SCORER_GRADE_THRESHOLD", 5),

		SecretsBin:    os.Getenv("SECRETS_BIN"),
		SecretsURL:    os.Getenv("SECRETS_URL"),
		SecretsAPIKey: os.Getenv("SECRETS_API_KEY"),

		ToolTimeout: envDuration("TOOL_TIMEOUT", 60*time.Second),
		SessionTTL:  envDuration("SESSION_TTL", 30*time.Minute),
	}

	if cfg.ScorerGradeThreshold <= 0 {
		cfg.ScorerGradeThreshold = 5
	}
	if cfg.ToolTimeout <= 0 {
		cfg.ToolTimeout = 60 * time.Second
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
