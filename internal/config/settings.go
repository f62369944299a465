package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names read by LoadSettings.
const (
	EnvLogLevel  = "SIPCALC_LOG_LEVEL"
	EnvCurrency  = "SIPCALC_CURRENCY"
	EnvLocale    = "SIPCALC_LOCALE"
	EnvPort      = "SIPCALC_PORT"
	EnvOutputDir = "SIPCALC_OUTPUT_DIR"
)

// Settings are process-level options that are not part of a plan.
type Settings struct {
	LogLevel  string
	Currency  string
	Locale    string
	Port      int
	OutputDir string
}

// DefaultSettings match the original calculator: Indian rupees, en-IN grouping.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		Currency:  "INR",
		Locale:    "en-IN",
		Port:      8080,
		OutputDir: ".",
	}
}

// LoadSettings reads the given .env files (a missing file is not an error)
// and then overlays SIPCALC_* environment variables on DefaultSettings.
// Variables already present in the environment win over .env entries.
func LoadSettings(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	s := DefaultSettings()
	if v := os.Getenv(EnvLogLevel); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		s.Currency = v
	}
	if v := os.Getenv(EnvLocale); v != "" {
		s.Locale = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 || port > 65535 {
			return Settings{}, fmt.Errorf("%s must be a TCP port, got %q", EnvPort, v)
		}
		s.Port = port
	}
	return s, nil
}
