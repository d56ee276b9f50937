package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/rules"
	"github.com/charmbracelet/bubbles/list"
)

// ValueSource exposes what the ingested data contains.
type ValueSource interface {
	Values(d model.Dimension) []string
	Locations() []string
}

// item is one row in a list. Rule rows carry the key needed to delete them.
type item struct {
	title     string
	desc      string
	report    string
	value     string
	dimension model.Dimension
	rule      bool
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + " " + i.desc }

// tab is one page of the browser.
type tab struct {
	name      string
	dimension model.Dimension
	kind      tabKind
}

type tabKind int

const (
	tabLocations tabKind = iota
	tabValues
	tabReports
)

func defaultTabs() []tab {
	tabs := []tab{{name: "Locations", kind: tabLocations}}
	for _, d := range model.Dimensions() {
		tabs = append(tabs, tab{name: d.String(), kind: tabValues, dimension: d})
	}
	return append(tabs, tab{name: "Reports", kind: tabReports})
}

// buildItems lists the rows for t.
func buildItems(t tab, store ValueSource, book *rules.Book) []list.Item {
	switch t.kind {
	case tabLocations:
		if store == nil {
			return nil
		}
		return plainItems(store.Locations(), func(string) string { return "" })

	case tabValues:
		if store == nil {
			return nil
		}
		return plainItems(store.Values(t.dimension), func(v string) string {
			return usedBy(book, t.dimension, v)
		})

	case tabReports:
		return ruleItems(book)
	}
	return nil
}

func plainItems(values []string, desc func(string) string) []list.Item {
	items := make([]list.Item, 0, len(values))
	for _, v := range values {
		items = append(items, item{title: v, desc: desc(v)})
	}
	return items
}

// usedBy names the reports whose rules accept v for d.
func usedBy(book *rules.Book, d model.Dimension, v string) string {
	if book == nil {
		return ""
	}
	var names []string
	for _, r := range book.Reports() {
		if r.Rules.Contains(d, v) {
			names = append(names, r.Name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "used by " + strings.Join(names, ", ")
}

func ruleItems(book *rules.Book) []list.Item {
	if book == nil {
		return nil
	}

	var items []list.Item
	for _, r := range book.Reports() {
		if r.Rules.Len() == 0 {
			items = append(items, item{title: r.Name, desc: "all records (no rules)", report: r.Name})
			continue
		}
		for _, d := range model.Dimensions() {
			for _, v := range r.Rules.Values(d) {
				items = append(items, item{
					title:     r.Name,
					desc:      fmt.Sprintf("%s = %s", d, v),
					report:    r.Name,
					dimension: d,
					value:     v,
					rule:      true,
				})
			}
		}
	}
	return slices.Clip(items)
}
