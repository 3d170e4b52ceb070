package tui

import (
	"os"
	"strings"
	"sync"
)

// Some fonts render box/braille glyphs poorly; an ASCII set is available
// through config (tui.glyphs) or LINKDECK_TUI_GLYPHS.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("LINKDECK_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	defer glyphsMu.RUnlock()
	return currentGlyphs
}

// glyphGrip is the drag handle shown at the start of each row.
func glyphGrip() string {
	if glyphs() == glyphSetASCII {
		return "::"
	}
	return "⋮⋮"
}

func glyphGrabbed() string {
	if glyphs() == glyphSetASCII {
		return "<>"
	}
	return "↕ "
}

func glyphSeparator() string {
	if glyphs() == glyphSetASCII {
		return "|"
	}
	return "│"
}
