// Package engine computes monthly sales statistics for reports.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/ingest"
	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/pattern"
	"github.com/shopspring/decimal"
)

// Result is the aggregated data for one report over one window.
type Result struct {
	Report       model.Report
	Company      string
	Issues       []error // Records skipped because their sold price did not parse
	Current      StatsTable
	Previous     StatsTable
	Quarter      Quarter
	Year         int
	PreviousYear int
}

// Months returns the months covered by the result.
func (r *Result) Months() []time.Month {
	return r.Quarter.Months()
}

// Aggregator turns matching records into stats tables.
type Aggregator struct {
	source  RecordSource
	logger  *slog.Logger
	company string
}

// NewAggregator creates an aggregator that credits sides to company.
func NewAggregator(source RecordSource, company string, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		source:  source,
		company: company,
		logger:  common.LoggerOrDefault(logger),
	}
}

// Aggregate computes stats for report over quarter in year and the year before.
func (a *Aggregator) Aggregate(ctx context.Context, report model.Report, quarter Quarter, year int) (*Result, error) {
	if !quarter.Valid() {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidQuarter, int(quarter))
	}

	result := &Result{
		Report:       report,
		Company:      a.company,
		Quarter:      quarter,
		Year:         year,
		PreviousYear: year - 1,
	}
	matcher := pattern.NewMatcher(&report.Rules)

	for _, m := range quarter.Months() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a.accumulate(result, matcher, result.Previous.Month(m), m, result.PreviousYear)
		a.accumulate(result, matcher, result.Current.Month(m), m, result.Year)
	}

	a.logger.Debug("aggregated report",
		"report", report.Name,
		"quarter", quarter.String(),
		"year", year,
		"issues", len(result.Issues))

	return result, nil
}

func (a *Aggregator) accumulate(result *Result, matcher *pattern.Matcher, stats *MonthStats, month time.Month, year int) {
	key := ingest.MonthKey(int(month), year)

	for _, rec := range matcher.Filter(a.source.RecordsFor(key)) {
		price, err := ParsePrice(rec.SoldPrice)
		if err != nil {
			a.logger.Warn("skipping record with unparsable sold price",
				"report", result.Report.Name, "key", key, "price", rec.SoldPrice)
			result.Issues = append(result.Issues, fmt.Errorf("%s: %w", key, err))
			continue
		}

		stats.Buckets[BucketFor(price.InexactFloat64())]++
		stats.CompanySides += a.sides(rec)
		stats.Sales++
		stats.Revenue = stats.Revenue.Add(price)
	}
}

// sides counts the listing and selling companies whose name contains the
// configured company.
func (a *Aggregator) sides(rec model.Record) int {
	if a.company == "" {
		return 0
	}
	n := 0
	if strings.Contains(rec.ListingCompany, a.company) {
		n++
	}
	if strings.Contains(rec.SellingCompany, a.company) {
		n++
	}
	return n
}

// ParsePrice reads a sold price exactly. Thousands separators and a leading
// dollar sign are accepted.
func ParsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: sold price %q", common.ErrUnparsableNumber, raw)
	}
	return price, nil
}
