package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

// Environment knobs (all optional, also loadable from a .env file):
//
//	GRAPHICSEDITOR_LOG - slog level: debug, info, warn, error (default warn)
//	PREVIEW_DEBUG      - "1"/"true" enables preview diagnostics on stderr
//	PREVIEW_BACKEND    - force a preview backend: kitty, inline, sixel, chafa
//	NO_CHAFA           - "1" disables the chafa fallback
var previewDebug bool

// Log is the package logger. It writes colorized records to stderr so escape
// sequences for inline previews on stdout stay clean.
var Log *slog.Logger

func init() {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	debug := os.Getenv("PREVIEW_DEBUG")
	if debug == "1" || debug == "true" {
		previewDebug = true
	}

	Log = slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: logLevelFromEnv(),
	}))
}

func logLevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("GRAPHICSEDITOR_LOG")) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func debugf(format string, args ...interface{}) {
	if previewDebug {
		fmt.Fprintf(os.Stderr, "preview: "+format+"\n", args...)
	}
}
