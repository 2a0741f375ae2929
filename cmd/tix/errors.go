package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/tixcli/tix/internal/lockfile"
	"github.com/tixcli/tix/internal/storage"
	"github.com/tixcli/tix/internal/types"
	"github.com/tixcli/tix/internal/ui"
)

// FatalError writes an error message to stderr and exits with code 1.
// Use this for fatal errors that prevent the command from completing.
//
// Example:
//
//	if err := repo.Save(ctx, s); err != nil {
//	    FatalError("%v", err)
//	}
func FatalError(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, formatError(fmt.Sprintf(format, args...), ""))
	os.Exit(1)
}

// FatalErrorWithHint writes an error message with a hint to stderr and exits.
// Use this when you can provide an actionable suggestion to fix the error.
//
// Example:
//
//	FatalErrorWithHint("data file not found", "Run 'tix create' after removing --no-init")
func FatalErrorWithHint(message, hint string) {
	fmt.Fprint(os.Stderr, formatError(message, hint))
	os.Exit(1)
}

// formatError renders the "Error:" line and, when hint is set, the "Hint:"
// line that follows it.
func formatError(message, hint string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", ui.RenderFail("Error:"), message)
	if hint != "" {
		fmt.Fprintf(&b, "%s %s\n", ui.RenderWarn("Hint:"), hint)
	}
	return b.String()
}

// FatalErrorRespectJSON reports a fatal error as {"error": ...} on stderr in
// JSON mode and as plain text otherwise, then exits with code 1.
func FatalErrorRespectJSON(message, hint string) {
	if jsonOutput {
		errObj := map[string]string{"error": message}
		if hint != "" {
			errObj["hint"] = hint
		}
		encoder := json.NewEncoder(os.Stderr)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(errObj) // Best effort: nothing better to do if stderr is gone
		os.Exit(1)
	}
	if hint != "" {
		FatalErrorWithHint(message, hint)
	}
	FatalError("%s", message)
}

// WarnError writes a warning message to stderr and returns.
// Use this for optional features whose failure shouldn't stop the command.
//
// Example:
//
//	if err := telemetry.Init(ctx, "tix", Version); err != nil {
//	    WarnError("telemetry disabled: %v", err)
//	}
func WarnError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ui.RenderWarn("Warning:"), fmt.Sprintf(format, args...))
}

// reportError prints err with a hint where one applies and exits 1.
func reportError(err error) {
	FatalErrorRespectJSON(err.Error(), errorHint(err))
}

// errorHint suggests a fix for errors the user can act on.
func errorHint(err error) string {
	var statusErr *types.InvalidStatusError
	var ioErr *storage.IOError
	var decodeErr *storage.DeserializationError

	switch {
	case errors.As(err, &statusErr):
		names := make([]string, 0, len(types.AllStatuses()))
		for _, s := range types.AllStatuses() {
			names = append(names, s.String())
		}
		return "Valid statuses: " + strings.Join(names, ", ") + " (case-insensitive)"
	case errors.Is(err, types.ErrEmptyTitle):
		return "Pass a non-empty --title"
	case errors.Is(err, lockfile.ErrLockTimeout):
		return "Another tix process is using the data file; retry or raise --lock-timeout"
	case errors.As(err, &ioErr) && errors.Is(err, fs.ErrNotExist):
		return "Run 'tix create' after removing --no-init"
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("Fix or move %s; tix will not overwrite a file it cannot read", decodeErr.Path)
	}
	return ""
}
