package debug

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func withState(t *testing.T, isEnabled, verbose, quiet bool) *bytes.Buffer {
	t.Helper()
	oldEnabled, oldVerbose, oldQuiet := enabled, verboseMode, quietMode
	var logs bytes.Buffer
	SetOutput(&logs)
	enabled, verboseMode, quietMode = isEnabled, verbose, quiet
	t.Cleanup(func() {
		enabled, verboseMode, quietMode = oldEnabled, oldVerbose, oldQuiet
		SetOutput(os.Stderr)
	})
	return &logs
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		name    string
		env     bool
		verbose bool
		want    bool
	}{
		{"env enables", true, false, true},
		{"verbose enables", false, true, true},
		{"disabled by default", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withState(t, tt.env, tt.verbose, false)
			if got := Enabled(); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogger(t *testing.T) {
	logs := withState(t, false, true, false)
	Logger().Debug("loaded store", "tickets", 3)
	if got := logs.String(); !strings.Contains(got, "loaded store") || !strings.Contains(got, "tickets=3") {
		t.Errorf("Logger output = %q", got)
	}

	logs = withState(t, false, false, false)
	Logger().Debug("loaded store", "tickets", 3)
	if logs.Len() != 0 {
		t.Errorf("Logger wrote %q while disabled", logs.String())
	}
}

func TestQuiet(t *testing.T) {
	withState(t, false, false, true)
	if !IsQuiet() {
		t.Error("IsQuiet() = false in quiet mode")
	}
	SetQuiet(false)
	if IsQuiet() {
		t.Error("IsQuiet() = true after SetQuiet(false)")
	}
}
