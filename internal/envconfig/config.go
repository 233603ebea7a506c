// Package envconfig reads safeinfer settings from the environment.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the log level.
// Configurable via SAFEINFER_DEBUG: 0/false = INFO (default), 1/true = DEBUG,
// larger integers lower the level further.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("SAFEINFER_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// LogFormat returns the log output format, "text" or "json".
// Configurable via SAFEINFER_LOG_FORMAT. Default: text
func LogFormat() string {
	switch s := strings.ToLower(Var("SAFEINFER_LOG_FORMAT")); s {
	case "", "text":
		return "text"
	case "json":
		return "json"
	default:
		slog.Warn("invalid log format, using default", "format", s, "default", "text")
		return "text"
	}
}

// EnvVar describes one environment setting.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every setting with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"SAFEINFER_DEBUG":      {"SAFEINFER_DEBUG", LogLevel(), "Show additional debug information (e.g. SAFEINFER_DEBUG=1)"},
		"SAFEINFER_LOG_FORMAT": {"SAFEINFER_LOG_FORMAT", LogFormat(), "Log output format: text or json (default: text)"},
	}
}

// Var returns an environment variable stripped of leading and trailing quotes or spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
