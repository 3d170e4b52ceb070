package tui

import (
	"context"
	"errors"

	"linkdeck/internal/collection"
	"linkdeck/internal/model"
	"linkdeck/internal/submit"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	// Store is created from Initial when nil.
	Store   *collection.Store
	Sink    submit.Sink
	Initial []model.LinkValues
	NewLink model.LinkValues
	Logger  zerolog.Logger
	Theme   string
	Glyphs  string
}

// Run starts the interactive editor and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference(opts.Theme)
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ctx, opts)
	defer m.drag.Close()

	_, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
