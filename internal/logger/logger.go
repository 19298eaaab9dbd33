// Authors: midasr contributors
// Date: Dec 12th 2025
// Project: Restriction Tests for Mixed-Frequency (MIDAS) Regressions
// Class: 02-613 at Carnegie Mellon University

// Package logger configures the process-wide slog handler and hands out
// loggers tagged with the package that writes the record.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Component names the package a record comes from.
type Component string

const (
	Restriction Component = "restriction"
	MIDAS       Component = "midas"
	HAC         Component = "hac"
	Simulate    Component = "simulate"
	CLI         Component = "cli"
)

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat accepts "text" (also the empty string) and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

type Config struct {
	Level     slog.Level
	Format    Format
	Output    io.Writer
	AddSource bool
}

// DefaultConfig writes Info and above as text to stderr.
func DefaultConfig() Config {
	return Config{
		Level:  slog.LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// Init installs cfg as the default slog handler. A nil Output is stderr.
func Init(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler = slog.NewTextHandler(cfg.Output, opts)
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// ForComponent returns the current default logger tagged with c.
// Call it at use sites rather than caching the result in a package variable,
// otherwise a later Init is not picked up.
func ForComponent(c Component) *slog.Logger {
	return slog.Default().With("component", string(c))
}
