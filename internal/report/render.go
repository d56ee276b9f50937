// Package report renders aggregation results as comparative sales tables.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/comps/internal/engine"
	"github.com/Veraticus/comps/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Table is a rendered report: rows of cells. Empty rows are blank lines.
type Table [][]string

// Renderer lays out results. It is safe to reuse across reports.
type Renderer struct {
	printer *message.Printer
}

// NewRenderer creates a renderer that groups thousands the US way.
func NewRenderer() *Renderer {
	return &Renderer{printer: message.NewPrinter(language.English)}
}

// Render lays out the rules, the monthly grid and the yearly summaries.
// The same result always renders to the same table.
func (r *Renderer) Render(result *engine.Result) Table {
	var t Table
	t = r.appendRules(t, &result.Report.Rules)
	t = r.appendMonthlyGrid(t, result)
	t = r.appendBucketTotals(t, result)
	t = r.appendMonthlyMoney(t, result)
	return t
}

func (r *Renderer) appendRules(t Table, rules *model.RuleSet) Table {
	t = append(t, []string{"Rules:"})
	for _, d := range model.Dimensions() {
		value := "ANY"
		if !rules.IsWildcard(d) {
			value = strings.Join(rules.Values(d), ", ")
		}
		t = append(t, []string{d.Label(), value})
	}
	return append(t, []string{})
}

func (r *Renderer) appendMonthlyGrid(t Table, result *engine.Result) Table {
	months := result.Months()

	header := []string{""}
	for i, m := range months {
		if i > 0 {
			header = append(header, "", "")
		}
		header = append(header,
			monthHeader(m, result.PreviousYear),
			monthHeader(m, result.Year))
	}
	t = append(t, header)

	metric := func(label string, value func(s *engine.MonthStats) string) []string {
		var row []string
		for i, m := range months {
			if i > 0 {
				row = append(row, "")
			}
			row = append(row, label, value(result.Previous.Month(m)), value(result.Current.Month(m)))
		}
		return row
	}

	for b, label := range engine.BucketLabels {
		t = append(t, metric(label, func(s *engine.MonthStats) string {
			return strconv.Itoa(s.Buckets[b])
		}))
	}
	t = append(t,
		metric("Total Sales", func(s *engine.MonthStats) string { return strconv.Itoa(s.Sales) }),
		metric("Total Money", func(s *engine.MonthStats) string { return r.FormatMoney(s.Revenue) }),
		metric("Side ("+result.Company+")", func(s *engine.MonthStats) string { return strconv.Itoa(s.CompanySides) }),
		metric("Side (Total)", func(s *engine.MonthStats) string { return strconv.Itoa(s.TotalSides()) }),
		metric(result.Company, func(s *engine.MonthStats) string { return FormatPercent(s.Share()) }),
	)

	return append(t, []string{}, []string{})
}

func (r *Renderer) appendBucketTotals(t Table, result *engine.Result) Table {
	months := result.Months()
	prev := result.Previous.BucketTotals(months)
	cur := result.Current.BucketTotals(months)

	t = append(t, yearHeader(result))
	for b, label := range engine.BucketLabels {
		t = append(t, []string{label, strconv.Itoa(prev[b]), strconv.Itoa(cur[b])})
	}
	return append(t, []string{}, []string{})
}

func (r *Renderer) appendMonthlyMoney(t Table, result *engine.Result) Table {
	t = append(t, yearHeader(result))
	for _, m := range result.Months() {
		t = append(t, []string{
			m.String(),
			r.FormatMoney(result.Previous.Month(m).Revenue),
			r.FormatMoney(result.Current.Month(m).Revenue),
		})
	}
	return t
}

// FormatMoney renders an amount in whole dollars with thousands separators.
func (r *Renderer) FormatMoney(amount decimal.Decimal) string {
	return r.printer.Sprintf("$%d", amount.Round(0).IntPart())
}

// FormatPercent renders a share with two decimals.
func FormatPercent(share float64) string {
	return fmt.Sprintf("%.2f%%", share)
}

func monthHeader(m time.Month, year int) string {
	return fmt.Sprintf("%s %d:", m, year)
}

func yearHeader(result *engine.Result) []string {
	return []string{"", strconv.Itoa(result.PreviousYear), strconv.Itoa(result.Year)}
}
