// Package config resolves client configuration. The only tunable is the
// server URL, resolved as: --server flag, then DOCLIB_SERVER_URL from the
// environment (a .env file in the working directory is honored without
// overriding real environment variables), then the built-in default.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"doclib/internal/logger"
)

// ServerURLEnv is the environment variable that overrides the default server URL.
const ServerURLEnv = "DOCLIB_SERVER_URL"

// DefaultServerURL points at a locally running server.
const DefaultServerURL = "http://127.0.0.1:8095"

// ServerURL resolves the server URL from the flag value and the environment.
// flagValue is the raw --server flag; empty means not set.
func ServerURL(flagValue string) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}

	// godotenv.Load never overrides variables already set in the process
	// environment, so a real env var still beats the .env file.
	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env file")
	}

	if v := strings.TrimSpace(os.Getenv(ServerURLEnv)); v != "" {
		return v
	}
	return DefaultServerURL
}
