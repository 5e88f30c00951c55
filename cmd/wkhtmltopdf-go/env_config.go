package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	wkhtmltopdf "github.com/ajsjunior/wkhtmltopdf-1"
)

const envPrefix = "WKHTMLTOPDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring job files.
type envConfig struct {
	Dir        string        // WKHTMLTOPDF_DIR: install folder
	Executable string        // WKHTMLTOPDF_PATH: binary path
	TempDir    string        // WKHTMLTOPDF_TEMP_DIR: temp folder
	Timeout    time.Duration // WKHTMLTOPDF_TIMEOUT: run timeout
	Job        string        // WKHTMLTOPDF_JOB: default job file
}

// knownEnvVars lists valid WKHTMLTOPDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WKHTMLTOPDF_DIR":      true,
	"WKHTMLTOPDF_PATH":     true,
	"WKHTMLTOPDF_TEMP_DIR": true,
	"WKHTMLTOPDF_TIMEOUT":  true,
	"WKHTMLTOPDF_JOB":      true,
}

// loadDotEnv loads variables from a dotenv file without overriding the
// ones already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: loading %s: %v", ErrUsage, path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// Invalid timeouts are logged and ignored.
func loadEnvConfig(logger *slog.Logger) *envConfig {
	cfg := &envConfig{
		Dir:        os.Getenv("WKHTMLTOPDF_DIR"),
		Executable: os.Getenv("WKHTMLTOPDF_PATH"),
		TempDir:    os.Getenv("WKHTMLTOPDF_TEMP_DIR"),
		Job:        os.Getenv("WKHTMLTOPDF_JOB"),
	}

	if timeout := os.Getenv("WKHTMLTOPDF_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			logger.Warn("ignoring invalid WKHTMLTOPDF_TIMEOUT", "value", timeout)
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized WKHTMLTOPDF_* variables.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig layers set environment values over e.
// This ensures: CLI flags > env vars > job file > defaults
// (CLI flags are applied afterwards).
func applyEnvConfig(cfg *envConfig, e *wkhtmltopdf.Environment) {
	if cfg.Dir != "" {
		e.ExecutableDir = cfg.Dir
	}
	if cfg.Executable != "" {
		e.ExecutablePath = cfg.Executable
	}
	if cfg.TempDir != "" {
		e.TempDir = cfg.TempDir
	}
	if cfg.Timeout > 0 {
		e.Timeout = cfg.Timeout
	}
}
