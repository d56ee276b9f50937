// Package rules manages the named reports and the rule sets they own.
package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/model"
)

// ChangeKind identifies what changed in a Book.
type ChangeKind int

// Change kinds.
const (
	ReportAdded ChangeKind = iota
	ReportDeleted
	RuleAdded
	RuleDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case ReportAdded:
		return "report-added"
	case ReportDeleted:
		return "report-deleted"
	case RuleAdded:
		return "rule-added"
	case RuleDeleted:
		return "rule-deleted"
	default:
		return "unknown"
	}
}

// Change describes a single mutation. Dimension and Value are only set for rule changes.
type Change struct {
	Report    string
	Value     string
	Kind      ChangeKind
	Dimension model.Dimension
}

// Book is the ordered collection of reports. Reports keep the order they were
// added in, which is also the order they are saved and generated in.
type Book struct {
	reports     map[string]*model.Report
	order       []string
	subscribers []subscriber
	nextSubID   int
}

type subscriber struct {
	fn func(Change)
	id int
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		reports: make(map[string]*model.Report),
	}
}

// AddReport creates an empty report. It reports whether a report was created;
// adding a name that already exists leaves the existing report untouched.
func (b *Book) AddReport(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if err := model.ValidateReportName(name); err != nil {
		return false, err
	}
	if _, ok := b.reports[name]; ok {
		return false, nil
	}

	b.reports[name] = &model.Report{Name: name}
	b.order = append(b.order, name)
	b.notify(Change{Kind: ReportAdded, Report: name})
	return true, nil
}

// DeleteReport removes a report and all of its rules.
func (b *Book) DeleteReport(name string) error {
	name = strings.TrimSpace(name)
	if _, ok := b.reports[name]; !ok {
		return fmt.Errorf("%w: %q", common.ErrUnknownReport, name)
	}

	delete(b.reports, name)
	b.order = slices.DeleteFunc(b.order, func(n string) bool { return n == name })
	b.notify(Change{Kind: ReportDeleted, Report: name})
	return nil
}

// AddRule adds value to the report's accepted set for d.
func (b *Book) AddRule(report string, d model.Dimension, value string) (bool, error) {
	report = strings.TrimSpace(report)
	r, ok := b.reports[report]
	if !ok {
		return false, fmt.Errorf("%w: %q", common.ErrUnknownReport, report)
	}

	added, err := r.Rules.Add(d, value)
	if err != nil {
		return false, fmt.Errorf("report %q: %w", report, err)
	}
	if added {
		b.notify(Change{Kind: RuleAdded, Report: report, Dimension: d, Value: strings.TrimSpace(value)})
	}
	return added, nil
}

// DeleteRule removes value from the report's accepted set for d.
func (b *Book) DeleteRule(report string, d model.Dimension, value string) (bool, error) {
	report = strings.TrimSpace(report)
	r, ok := b.reports[report]
	if !ok {
		return false, fmt.Errorf("%w: %q", common.ErrUnknownReport, report)
	}
	if !d.Valid() {
		return false, fmt.Errorf("%w: %d", common.ErrInvalidDimension, int(d))
	}

	deleted := r.Rules.Delete(d, value)
	if deleted {
		b.notify(Change{Kind: RuleDeleted, Report: report, Dimension: d, Value: strings.TrimSpace(value)})
	}
	return deleted, nil
}

// Report returns a copy of the named report.
func (b *Book) Report(name string) (model.Report, error) {
	name = strings.TrimSpace(name)
	r, ok := b.reports[name]
	if !ok {
		return model.Report{}, fmt.Errorf("%w: %q", common.ErrUnknownReport, name)
	}
	return model.Report{Name: r.Name, Rules: r.Rules.Clone()}, nil
}

// Reports returns copies of every report in book order.
func (b *Book) Reports() []model.Report {
	out := make([]model.Report, 0, len(b.order))
	for _, name := range b.order {
		r := b.reports[name]
		out = append(out, model.Report{Name: r.Name, Rules: r.Rules.Clone()})
	}
	return out
}

// Names returns report names in book order.
func (b *Book) Names() []string {
	return slices.Clone(b.order)
}

// Len returns the number of reports.
func (b *Book) Len() int {
	return len(b.order)
}

// Subscribe registers fn to be called after every change. Subscribers are
// called in the order they subscribed. The returned function removes the
// subscription.
func (b *Book) Subscribe(fn func(Change)) func() {
	id := b.nextSubID
	b.nextSubID++
	b.subscribers = append(b.subscribers, subscriber{id: id, fn: fn})

	return func() {
		b.subscribers = slices.DeleteFunc(b.subscribers, func(s subscriber) bool { return s.id == id })
	}
}

func (b *Book) notify(c Change) {
	for _, s := range slices.Clone(b.subscribers) {
		s.fn(c)
	}
}
