package ui

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tixcli/tix/internal/types"
)

func TestShouldUseColor(t *testing.T) {
	tests := []struct {
		name            string
		noColor         string
		cliColor        string
		cliColorForce   string
		wantColor       bool
		skipTTYDepCheck bool // Some tests don't depend on TTY state
	}{
		{
			name:            "NO_COLOR disables color",
			noColor:         "1",
			wantColor:       false,
			skipTTYDepCheck: true,
		},
		{
			name:            "no variables follows TTY",
			wantColor:       false, // test stdout is not a terminal
			skipTTYDepCheck: false,
		},
		{
			name:            "CLICOLOR=0 disables color",
			cliColor:        "0",
			wantColor:       false,
			skipTTYDepCheck: true,
		},
		{
			name:            "CLICOLOR_FORCE enables color even in non-TTY",
			cliColorForce:   "1",
			wantColor:       true,
			skipTTYDepCheck: true,
		},
		{
			name:            "NO_COLOR takes precedence over CLICOLOR_FORCE",
			noColor:         "1",
			cliColorForce:   "1",
			wantColor:       false,
			skipTTYDepCheck: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearColorEnv(t)
			if tt.noColor != "" {
				t.Setenv("NO_COLOR", tt.noColor)
			}
			if tt.cliColor != "" {
				t.Setenv("CLICOLOR", tt.cliColor)
			}
			if tt.cliColorForce != "" {
				t.Setenv("CLICOLOR_FORCE", tt.cliColorForce)
			}

			got := ShouldUseColor()
			if tt.skipTTYDepCheck && got != tt.wantColor {
				t.Errorf("ShouldUseColor() = %v, want %v", got, tt.wantColor)
			}
		})
	}
}

func TestRenderWithoutColor(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("NO_COLOR", "1")
	ApplyColorProfile()

	for _, s := range types.AllStatuses() {
		if got := RenderStatus(s); got != string(s) {
			t.Errorf("RenderStatus(%s) = %q, want plain text", s, got)
		}
	}
	for name, render := range map[string]func(string) string{
		"RenderAccent": RenderAccent,
		"RenderBold":   RenderBold,
		"RenderMuted":  RenderMuted,
		"RenderFail":   RenderFail,
		"RenderWarn":   RenderWarn,
	} {
		if got := render("abc"); got != "abc" {
			t.Errorf("%s = %q, want plain text", name, got)
		}
	}

	md := "# Heading\n\n- item"
	if got := RenderMarkdown(md); got != md {
		t.Errorf("RenderMarkdown without color = %q, want input unchanged", got)
	}
}

func TestRenderWithColor(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("CLICOLOR_FORCE", "1")
	ApplyColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(termenv.Ascii) })

	for _, s := range types.AllStatuses() {
		got := RenderStatus(s)
		if got == string(s) || !strings.Contains(got, string(s)) {
			t.Errorf("RenderStatus(%s) = %q, want styled text", s, got)
		}
	}
	if got := RenderStatus(types.Status("BLOCKED")); got != "BLOCKED" {
		t.Errorf("RenderStatus(BLOCKED) = %q, want unstyled", got)
	}
	for name, render := range map[string]func(string) string{
		"RenderFail": RenderFail,
		"RenderWarn": RenderWarn,
	} {
		if got := render("Error:"); got == "Error:" || !strings.Contains(got, "Error:") {
			t.Errorf("%s = %q, want styled text", name, got)
		}
	}
}

func TestRenderMarkdownWithColor(t *testing.T) {
	clearColorEnv(t)
	t.Setenv("CLICOLOR_FORCE", "1")

	got := RenderMarkdown("some **bold** words")
	if !strings.Contains(got, "bold") {
		t.Errorf("RenderMarkdown lost content: %q", got)
	}
	if RenderMarkdown("   ") != "   " {
		t.Error("blank markdown should pass through unchanged")
	}
}

// clearColorEnv unsets the colour variables for the duration of the test.
func clearColorEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NO_COLOR", "CLICOLOR", "CLICOLOR_FORCE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
