package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// New builds a browser model from options.
func New(opts ...Option) (Model, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Store == nil && cfg.Book == nil {
		return Model{}, fmt.Errorf("nothing to browse: need records or rules")
	}
	return newModel(cfg), nil
}

// Run shows the browser until the user quits or ctx is canceled. It
// reports how many rule changes were made.
func Run(ctx context.Context, opts ...Option) (int, error) {
	m, err := New(opts...)
	if err != nil {
		return 0, err
	}
	defer m.close()

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return 0, fmt.Errorf("failed to run browser: %w", err)
	}

	if fm, ok := final.(Model); ok {
		return fm.Changed(), nil
	}
	return 0, nil
}
