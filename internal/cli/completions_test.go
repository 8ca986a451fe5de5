package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteEncodings(t *testing.T) {
	cmd := &cobra.Command{}

	t.Run("returns all encodings for empty input", func(t *testing.T) {
		completions, directive := completeEncodings(cmd, nil, "")
		if len(completions) != len(commonEncodings) {
			t.Errorf("expected %d completions, got %d", len(commonEncodings), len(completions))
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
		}
	})

	t.Run("filters by prefix case-insensitively", func(t *testing.T) {
		completions, _ := completeEncodings(cmd, nil, "UTF-16")
		if len(completions) != 2 {
			t.Errorf("expected 2 completions (utf-16le, utf-16be), got %d", len(completions))
		}
	})

	t.Run("returns empty for non-matching prefix", func(t *testing.T) {
		completions, _ := completeEncodings(cmd, nil, "xyz")
		if len(completions) != 0 {
			t.Errorf("expected 0 completions, got %d", len(completions))
		}
	})
}

func TestCompleteInputFiles(t *testing.T) {
	completions, directive := completeInputFiles(&cobra.Command{}, nil, "")
	if directive != cobra.ShellCompDirectiveFilterFileExt {
		t.Errorf("expected ShellCompDirectiveFilterFileExt, got %v", directive)
	}
	if len(completions) != len(inputExtensions) {
		t.Errorf("expected %d extensions, got %d", len(inputExtensions), len(completions))
	}
}

func TestCompleteDelimiters(t *testing.T) {
	completions, directive := completeDelimiters(&cobra.Command{}, nil, "")
	if len(completions) != 4 {
		t.Errorf("expected 4 delimiters, got %d", len(completions))
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
	}
}

func TestCompleteAuthMethods(t *testing.T) {
	completions, directive := completeAuthMethods(&cobra.Command{}, nil, "")
	if len(completions) != 4 {
		t.Errorf("expected 4 auth methods, got %d", len(completions))
	}
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("expected ShellCompDirectiveNoFileComp, got %v", directive)
	}
}
