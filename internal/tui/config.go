package tui

import (
	"github.com/Veraticus/comps/internal/rules"
	"github.com/Veraticus/comps/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Store    ValueSource
	Book     *rules.Book
	Width    int
	Height   int
	ReadOnly bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  80,
		Height: 24,
	}
}

// WithStore sets where observed values come from.
func WithStore(store ValueSource) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithBook sets the report book to browse.
func WithBook(book *rules.Book) Option {
	return func(c *Config) {
		c.Book = book
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithReadOnly disables rule deletion.
func WithReadOnly(readOnly bool) Option {
	return func(c *Config) {
		c.ReadOnly = readOnly
	}
}
