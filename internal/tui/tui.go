package tui

import (
	"context"
	"time"

	"intime-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Options struct {
	// Profile is the configured appearance profile; INTIME_TUI_PROFILE wins over it.
	Profile string
	Log     *zap.Logger
	Now     func() time.Time
}

func Run(ctx context.Context, st *store.Store, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyAppearancePreference(opts.Profile)

	m := newAppModel(ctx, st, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
