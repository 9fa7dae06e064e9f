package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	JSONFormat = "json"
	TextFormat = "text"
)

// NewWithCurrentConfig creates a [slog.Logger] by using current configuration.
func NewWithCurrentConfig() *slog.Logger {
	h, err := CreateHandler(os.Stderr, os.Getenv("AXB_LOG_LEVEL"), os.Getenv("AXB_LOG_FORMAT"))
	if err != nil {
		h = slog.NewTextHandler(os.Stderr, nil)
	}

	return slog.New(h)
}

// CreateHandler creates a [slog.Handler] from level and format strings.
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level := GetLevel(logLevel)

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case TextFormat, "logfmt", "":
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}), nil
	default:
		return nil, fmt.Errorf("unknown log format '%s'", logFormat)
	}
}

func GetLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug", "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// SetLogFormat sets a log/slog format.
func SetLogFormat(logFormat string) {
	switch strings.ToLower(logFormat) {
	case JSONFormat:
		os.Setenv("AXB_LOG_FORMAT", JSONFormat)
	case TextFormat, "":
		os.Setenv("AXB_LOG_FORMAT", TextFormat)
	default:
		panic(fmt.Errorf("unknown log format '%s'", logFormat))
	}

	slog.SetDefault(NewWithCurrentConfig())
}

// SetLogLevel parses and sets a log/slog level.
func SetLogLevel(logLevel string) {
	level := GetLevel(logLevel)
	os.Setenv("AXB_LOG_LEVEL", level.String())
	slog.SetLogLoggerLevel(level)
}
