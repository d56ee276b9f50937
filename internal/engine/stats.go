package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// NumBuckets is the number of price brackets.
const NumBuckets = 11

// BucketLabels name the price brackets in ascending order.
var BucketLabels = [NumBuckets]string{
	"0-59999",
	"60000-99999",
	"100000-149999",
	"150000-199999",
	"200000-249999",
	"250000-299999",
	"300000-399999",
	"400000-499999",
	"500000-749999",
	"750000-999999",
	"1000000+",
}

// Inclusive upper bounds; anything above the last is the final bucket.
var bucketCeilings = [NumBuckets - 1]float64{
	59999, 99999, 149999, 199999, 249999, 299999, 399999, 499999, 749999, 999999,
}

// BucketFor returns the index of the bracket price falls in.
// Every price, including negatives, lands in exactly one bucket.
func BucketFor(price float64) int {
	for i, ceiling := range bucketCeilings {
		if price <= ceiling {
			return i
		}
	}
	return NumBuckets - 1
}

// MonthStats accumulates the sales of one month.
type MonthStats struct {
	Revenue      decimal.Decimal
	Buckets      [NumBuckets]int
	CompanySides int
	Sales        int
}

// TotalSides counts both sides of every sale.
func (m MonthStats) TotalSides() int {
	return m.Sales * 2
}

// Share returns the company's percentage of all sides, or 0 for a month
// without sales.
func (m MonthStats) Share() float64 {
	if m.Sales == 0 {
		return 0
	}
	return float64(m.CompanySides) / float64(m.TotalSides()) * 100
}

// StatsTable holds one year of monthly stats. Index 0 is unused so months
// index directly.
type StatsTable [13]MonthStats

// Month returns the stats for m.
func (t *StatsTable) Month(m time.Month) *MonthStats {
	return &t[m]
}

// BucketTotals sums each bracket over months.
func (t *StatsTable) BucketTotals(months []time.Month) [NumBuckets]int {
	var totals [NumBuckets]int
	for _, m := range months {
		for i, n := range t[m].Buckets {
			totals[i] += n
		}
	}
	return totals
}
