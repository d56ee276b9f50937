// Package tui implements the terminal browser over observed values and report rules.
package tui

import (
	"fmt"

	"github.com/Veraticus/comps/internal/rules"
	"github.com/Veraticus/comps/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const chromeHeight = 4 // tab bar, blank line, status, help

// Model holds the browser state.
type Model struct {
	store     ValueSource
	lastError error
	book      *rules.Book
	feed      *changeFeed
	theme     themes.Theme
	keymap    KeyMap
	status    string
	tabs      []tab
	lists     []list.Model
	width     int
	height    int
	active    int
	changed   int
	readOnly  bool
	quitting  bool
}

func newModel(cfg Config) Model {
	m := Model{
		store:    cfg.Store,
		book:     cfg.Book,
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		tabs:     defaultTabs(),
		width:    cfg.Width,
		height:   cfg.Height,
		readOnly: cfg.ReadOnly,
	}

	if m.book != nil {
		m.feed = subscribe(m.book)
	}

	m.lists = make([]list.Model, len(m.tabs))
	for i, t := range m.tabs {
		l := list.New(buildItems(t, m.store, m.book), list.NewDefaultDelegate(), m.width, m.listHeight())
		l.Title = t.name
		l.SetShowHelp(false)
		l.SetShowStatusBar(true)
		l.Styles.Title = l.Styles.Title.Background(m.theme.Primary)
		m.lists[i] = l
	}

	return m
}

// Init starts listening for book changes.
func (m Model) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return waitForChange(m.feed.ch)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for i := range m.lists {
			m.lists[i].SetSize(m.width, m.listHeight())
		}
		return m, nil

	case bookChangedMsg:
		m.refresh()
		return m, waitForChange(m.feed.ch)

	case changesClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.lists[m.active].FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			m.close()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.NextTab):
			m.active = (m.active + 1) % len(m.tabs)
			return m, nil
		case key.Matches(msg, m.keymap.PrevTab):
			m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
			return m, nil
		case key.Matches(msg, m.keymap.Delete):
			m.deleteSelected()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.lists[m.active], cmd = m.lists[m.active].Update(msg)
	return m, cmd
}

// Changed reports how many rules were deleted in the browser.
func (m Model) Changed() int {
	return m.changed
}

func (m *Model) deleteSelected() {
	if m.tabs[m.active].kind != tabReports || m.book == nil {
		return
	}
	if m.readOnly {
		m.status = "read-only: rules cannot be deleted here"
		return
	}

	sel, ok := m.lists[m.active].SelectedItem().(item)
	if !ok || !sel.rule {
		return
	}

	deleted, err := m.book.DeleteRule(sel.report, sel.dimension, sel.value)
	if err != nil {
		m.lastError = err
		return
	}
	m.lastError = nil
	if !deleted {
		return
	}
	m.changed++
	m.refresh()
	m.status = fmt.Sprintf("deleted %s %q from %s", sel.dimension, sel.value, sel.report)
}

// refresh rebuilds the lists that depend on the book.
func (m *Model) refresh() {
	for i, t := range m.tabs {
		if t.kind == tabLocations {
			continue
		}
		m.lists[i].SetItems(buildItems(t, m.store, m.book))
	}
}

func (m *Model) close() {
	if m.feed != nil {
		m.feed.close()
	}
}

func (m Model) listHeight() int {
	return max(m.height-chromeHeight, 1)
}
