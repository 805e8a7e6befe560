package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/brookluers/survfit/utils"
)

// Settings is the environment configuration.
type Settings struct {
	LogLevel       string `env:"SURVFIT_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat      string `env:"SURVFIT_LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	SurvivalColumn string `env:"SURVFIT_SURVIVAL_COLUMN" validate:"required"`
	CensorColumn   string `env:"SURVFIT_CENSOR_COLUMN" validate:"required"`
}

// loadSettings reads the settings from environ, or from the process
// environment when environ is nil.  Unset column names keep
// utils.DefaultColumns.
func loadSettings(environ map[string]string) (*Settings, error) {

	s := &Settings{
		SurvivalColumn: utils.DefaultColumns.Survival,
		CensorColumn:   utils.DefaultColumns.Censor,
	}
	if err := env.ParseWithOptions(s, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	return s, nil
}

// Columns returns the configured column names.
func (s *Settings) Columns() utils.Columns {
	return utils.Columns{
		Survival: s.SurvivalColumn,
		Censor:   s.CensorColumn,
	}
}

// newLogger returns a logger writing to w at the configured level and
// format.
func newLogger(s *Settings, w io.Writer) *slog.Logger {

	var level slog.Level
	switch s.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
