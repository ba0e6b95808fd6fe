// Package logger настраивает глобальный логгер charmbracelet/log.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"todo-service/internal/config"

	"github.com/charmbracelet/log"
)

// Setup создает логгер по конфигу и делает его логгером по умолчанию
func Setup(cfg *config.ConfigLogger) *log.Logger {
	return SetupWriter(os.Stderr, cfg)
}

// SetupWriter как Setup, но пишет в w
func SetupWriter(w io.Writer, cfg *config.ConfigLogger) *log.Logger {
	level, format := "info", "text"
	if cfg != nil {
		level, format = cfg.Level, cfg.Format
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       ParseFormatter(format),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "todo-service",
	})
	log.SetDefault(logger)
	return logger
}

// ParseLevel разбирает уровень логирования, неизвестное значение дает info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter разбирает формат вывода, неизвестное значение дает text
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}
