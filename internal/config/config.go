// Package config loads runtime settings from the environment.
//
// Settings come from RECTFINDER_* environment variables. A .env file, when
// present, seeds variables that are not already set; the real environment
// always wins.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/james-nesbitt/coding-challenges/internal/detection"
	"github.com/james-nesbitt/coding-challenges/internal/geometry"
)

// Environment variable names.
const (
	EnvLogLevel      = "RECTFINDER_LOG_LEVEL"
	EnvPerpendicular = "RECTFINDER_PERPENDICULAR"
	EnvTolerance     = "RECTFINDER_TOLERANCE"
	EnvMaxPoints     = "RECTFINDER_MAX_POINTS"
	EnvOCRLanguage   = "RECTFINDER_OCR_LANGUAGE"
)

// Config holds runtime settings.
type Config struct {
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level

	// Perpendicular selects the perpendicularity test used by the
	// rectangle predicate.
	Perpendicular geometry.Mode

	// Tolerance is the relative tolerance for float comparisons.
	Tolerance float64

	// MaxPoints caps the size of point sets accepted by the server.
	// Zero means no cap.
	MaxPoints int

	// OCRLanguage is the Tesseract language code.
	OCRLanguage string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:      slog.LevelInfo,
		Perpendicular: geometry.ModeVector,
		Tolerance:     geometry.DefaultTolerance,
		OCRLanguage:   "eng",
	}
}

// Predicate builds the rectangle predicate described by the config.
func (c Config) Predicate() detection.Predicate {
	return detection.Predicate{Mode: c.Perpendicular, Tolerance: c.Tolerance}
}

// Load reads envFile (if it exists) into the process environment and then
// parses the RECTFINDER_* variables. Pass "" to skip the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup parses settings through lookup, which has the signature of
// os.LookupEnv. Unset or empty variables keep their defaults.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvLogLevel); ok {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if v, ok := get(EnvPerpendicular); ok {
		mode, err := geometry.ParseMode(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvPerpendicular, err)
		}
		cfg.Perpendicular = mode
	}

	if v, ok := get(EnvTolerance); ok {
		tol, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTolerance, err)
		}
		if tol <= 0 || tol >= 1 {
			return Config{}, fmt.Errorf("%s: tolerance %g must be in (0, 1)", EnvTolerance, tol)
		}
		cfg.Tolerance = tol
	}

	if v, ok := get(EnvMaxPoints); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMaxPoints, err)
		}
		if n < 0 {
			return Config{}, fmt.Errorf("%s: must not be negative", EnvMaxPoints)
		}
		cfg.MaxPoints = n
	}

	if v, ok := get(EnvOCRLanguage); ok {
		cfg.OCRLanguage = v
	}

	return cfg, nil
}

// ParseLevel accepts debug, info, warn (or warning) and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger returns a text logger on stderr at the configured level.
// Stdout is reserved for protocol and report output.
func (c Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}
