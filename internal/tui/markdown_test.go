package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

func TestMarkdownStyle_FollowsTheme(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(lipgloss.HasDarkBackground())
	t.Setenv("COLORFGBG", "")

	t.Setenv("LINKDECK_TUI_THEME", "light")
	applyThemePreference("")
	if got := markdownStyle(); got != styles.LightStyle {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("LINKDECK_TUI_THEME", "dark")
	applyThemePreference("light")
	if got := markdownStyle(); got != styles.DarkStyle {
		t.Fatalf("expected env to override config; got %q", got)
	}

	t.Setenv("LINKDECK_TUI_THEME", "auto")
	applyThemePreference("light")
	if got := markdownStyle(); got != styles.LightStyle {
		t.Fatalf("expected configured light; got %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := renderMarkdown("   ", 40); got != "" {
		t.Fatalf("expected empty output for blank input; got %q", got)
	}
	out := renderMarkdown("1. [Link 01](https://link01.com.br)", 60)
	if !strings.Contains(out, "link01.com.br") {
		t.Fatalf("expected link url in output; got %q", out)
	}
}

func TestRenderInputLine_FixedWidth(t *testing.T) {
	got := renderInputLine(20, "abc\ndef")
	if strings.Contains(got, "\n") {
		t.Fatalf("input line must be a single line; got %q", got)
	}
	if w := lipgloss.Width(got); w != 20 {
		t.Fatalf("expected width 20; got %d", w)
	}
}
