package tui

import (
	"testing"

	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/rules"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values    map[model.Dimension][]string
	locations []string
}

func (f fakeStore) Values(d model.Dimension) []string { return f.values[d] }
func (f fakeStore) Locations() []string               { return f.locations }

func testStore() fakeStore {
	return fakeStore{
		values: map[model.Dimension][]string{
			model.DimensionCounty:      {"Kenosha", "Walworth"},
			model.DimensionBodyOfWater: {"Delavan Lake", "Geneva Lake"},
		},
		locations: []string{"Delavan (Walworth)", "Lake Geneva (Walworth)"},
	}
}

func testBook(t *testing.T) *rules.Book {
	t.Helper()
	book := rules.NewBook()
	_, err := book.AddReport("Lakes")
	require.NoError(t, err)
	_, err = book.AddRule("Lakes", model.DimensionBodyOfWater, "Geneva Lake")
	require.NoError(t, err)
	_, err = book.AddRule("Lakes", model.DimensionBodyOfWater, "Delavan Lake")
	require.NoError(t, err)
	_, err = book.AddReport("All")
	require.NoError(t, err)
	return book
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestNew_RequiresSomethingToBrowse(t *testing.T) {
	_, err := New()
	assert.Error(t, err)

	m, err := New(WithBook(rules.NewBook()))
	require.NoError(t, err)
	m.close()
}

func TestModel_Tabs(t *testing.T) {
	m, err := New(WithStore(testStore()), WithBook(testBook(t)))
	require.NoError(t, err)
	defer m.close()

	require.Len(t, m.tabs, 8)
	assert.Equal(t, "Locations", m.tabs[0].name)
	assert.Equal(t, "Zip Code", m.tabs[3].name)
	assert.Equal(t, "Reports", m.tabs[7].name)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.active)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 7, m.active, "wraps to the last tab")

	view := m.View()
	assert.Contains(t, view, "Locations")
	assert.Contains(t, view, "Body of Water")
}

func TestBuildItems(t *testing.T) {
	book := testBook(t)
	store := testStore()

	water := buildItems(tab{kind: tabValues, dimension: model.DimensionBodyOfWater}, store, book)
	require.Len(t, water, 2)
	assert.Equal(t, "Delavan Lake", water[0].(item).Title())
	assert.Equal(t, "used by Lakes", water[0].(item).Description())

	counties := buildItems(tab{kind: tabValues, dimension: model.DimensionCounty}, store, book)
	assert.Empty(t, counties[0].(item).Description())

	reports := buildItems(tab{kind: tabReports}, store, book)
	require.Len(t, reports, 3)
	assert.Equal(t, "Body of Water = Geneva Lake", reports[0].(item).Description())
	assert.Equal(t, "All", reports[2].(item).Title())
	assert.Equal(t, "all records (no rules)", reports[2].(item).Description())
	assert.False(t, reports[2].(item).rule)

	assert.Nil(t, buildItems(tab{kind: tabLocations}, nil, book))
}

func TestModel_DeleteRule(t *testing.T) {
	book := testBook(t)
	m, err := New(WithStore(testStore()), WithBook(book))
	require.NoError(t, err)
	defer m.close()

	m.active = 7
	m = update(t, m, keyPress("d"))

	report, err := book.Report("Lakes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Delavan Lake"}, report.Rules.Values(model.DimensionBodyOfWater))
	assert.Contains(t, m.status, "Geneva Lake")
	assert.Equal(t, 1, m.Changed())
	assert.Len(t, m.lists[7].Items(), 2, "lists refresh without waiting for the change message")

	// Delivering the queued change only refreshes; it is not counted twice.
	msg := waitForChange(m.feed.ch)()
	require.IsType(t, bookChangedMsg{}, msg)
	m = update(t, m, msg)
	assert.Equal(t, 1, m.Changed())
	assert.Len(t, m.lists[7].Items(), 2)
}

func TestModel_DeleteThenQuitCountsChange(t *testing.T) {
	book := testBook(t)
	m, err := New(WithBook(book))
	require.NoError(t, err)

	m.active = 7
	m = update(t, m, keyPress("d"))
	m = update(t, m, keyPress("q"))

	require.True(t, m.quitting)
	report, err := book.Report("Lakes")
	require.NoError(t, err)
	assert.Equal(t, []string{"Delavan Lake"}, report.Rules.Values(model.DimensionBodyOfWater))
	assert.Equal(t, 1, m.Changed(), "the deletion must be reported so the rule file is saved")
}

func TestModel_ReadOnly(t *testing.T) {
	book := testBook(t)
	m, err := New(WithBook(book), WithReadOnly(true))
	require.NoError(t, err)
	defer m.close()

	m.active = 7
	m = update(t, m, keyPress("d"))

	report, err := book.Report("Lakes")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Rules.Len())
	assert.Contains(t, m.status, "read-only")
	assert.NotContains(t, m.renderHelp(), "delete rule")
}

func TestModel_DeleteIgnoredOutsideReports(t *testing.T) {
	book := testBook(t)
	m, err := New(WithStore(testStore()), WithBook(book))
	require.NoError(t, err)
	defer m.close()

	m.active = 4
	m = update(t, m, keyPress("d"))

	report, err := book.Report("Lakes")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Rules.Len())
	assert.Equal(t, 0, m.Changed())
}

func TestModel_KeysIgnoredWhileFiltering(t *testing.T) {
	m, err := New(WithStore(testStore()), WithBook(testBook(t)))
	require.NoError(t, err)
	defer m.close()

	m = update(t, m, keyPress("/"))
	require.Equal(t, list.Filtering, m.lists[0].FilterState())

	m = update(t, m, keyPress("l"))
	assert.Equal(t, 0, m.active, "l is typed into the filter")

	m = update(t, m, keyPress("q"))
	assert.False(t, m.quitting)
}

func TestModel_WindowSize(t *testing.T) {
	m, err := New(WithBook(testBook(t)))
	require.NoError(t, err)
	defer m.close()

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 36, m.listHeight())
	assert.Equal(t, 120, m.lists[0].Width())
}

func TestModel_Quit(t *testing.T) {
	book := testBook(t)
	m, err := New(WithBook(book))
	require.NoError(t, err)

	next, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())

	// Quitting drops the subscription and closes the feed.
	_, _ = book.AddReport("After")
	_, ok := <-m.feed.ch
	assert.False(t, ok, "no change delivered after quit")
	assert.IsType(t, changesClosedMsg{}, waitForChange(m.feed.ch)())

	// Closing again from another copy of the model is harmless.
	m.close()
}
