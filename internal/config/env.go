package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays cfg with values from the environment. A .env file in the
// working directory is loaded first if present; real environment variables
// win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.BaseURL = getEnv("PADIPS_BASE_URL", cfg.BaseURL)
	cfg.RealtimeURL = getEnv("PADIPS_REALTIME_URL", cfg.RealtimeURL)
	cfg.APIKey = getEnv("PADIPS_API_KEY", cfg.APIKey)
	cfg.DatabasePath = getEnv("PADIPS_DB_PATH", cfg.DatabasePath)
	cfg.SecondsPerQuestion = getEnvAsInt("PADIPS_SECONDS_PER_QUESTION", cfg.SecondsPerQuestion)
	cfg.PointsPerCorrect = getEnvAsFloat("PADIPS_POINTS_PER_CORRECT", cfg.PointsPerCorrect)

	if v, ok := os.LookupEnv("PADIPS_REQUEST_TIMEOUT_SECONDS"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeout = time.Duration(n) * time.Second
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
