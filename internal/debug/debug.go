// Package debug holds tix's diagnostic logger and the verbose/quiet switches.
package debug

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	enabled     = os.Getenv("TIX_DEBUG") != ""
	verboseMode = false
	quietMode   = false

	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// Enabled reports whether debug logging is on (TIX_DEBUG or --verbose).
func Enabled() bool {
	return enabled || verboseMode
}

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode. Commands consult IsQuiet to drop
// confirmations and hints; query results are still printed.
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// IsQuiet returns true if quiet mode is enabled
func IsQuiet() bool {
	return quietMode
}

// SetOutput redirects debug logs. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logger returns a structured logger. Records go to stderr at debug level
// when debugging is enabled and are dropped otherwise.
func Logger() *slog.Logger {
	if !Enabled() {
		return slog.New(slog.DiscardHandler)
	}
	mu.Lock()
	w := output
	mu.Unlock()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
