package tui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestDetectMode_QCSV_NON_INTERACTIVE(t *testing.T) {
	t.Setenv("QCSV_NON_INTERACTIVE", "1")
	t.Setenv("CI", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_CI(t *testing.T) {
	t.Setenv("QCSV_NON_INTERACTIVE", "")
	t.Setenv("CI", "true")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive", got)
	}
}

func TestDetectMode_NoTerminal(t *testing.T) {
	// In test context, stdin/stderr are not terminals
	t.Setenv("QCSV_NON_INTERACTIVE", "")
	t.Setenv("CI", "")

	if got := DetectMode(); got != ModeNonInteractive {
		t.Errorf("DetectMode() = %d, want ModeNonInteractive (no terminal in test)", got)
	}
}

func TestIsInteractive_ReturnsFalseInTests(t *testing.T) {
	t.Setenv("QCSV_NON_INTERACTIVE", "")
	t.Setenv("CI", "")

	if IsInteractive() {
		t.Error("IsInteractive() = true in test environment, want false")
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if ColorEnabled(f) {
		t.Error("ColorEnabled() = true for a regular file")
	}
	if ColorEnabled(nil) {
		t.Error("ColorEnabled(nil) = true")
	}
}

func TestColorEnabled_NO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if ColorEnabled(os.Stderr) {
		t.Error("ColorEnabled() = true with NO_COLOR set")
	}
}

func TestPaint_Disabled(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true)
	if got := Paint(style, "[ERROR]", false); got != "[ERROR]" {
		t.Errorf("Paint() = %q, want unchanged text", got)
	}
}
