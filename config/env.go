package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
)

// LoadEnv reads .env when present. Variables already set win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Default().Debug("no .env loaded", "error", err)
		return
	}
	logger.Default().Info("environment variables loaded from .env")
}

// GetEnv returns the variable or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
