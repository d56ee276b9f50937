package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string][]model.Record

func (m mapSource) RecordsFor(key string) []model.Record {
	return m[key]
}

func sale(date, price, listing, selling string) model.Record {
	return model.Record{
		SoldDate:       date,
		SoldPrice:      price,
		ListingCompany: listing,
		SellingCompany: selling,
		County:         "Walworth",
		PropertyType:   "RES",
	}
}

func TestAggregate_EndToEnd(t *testing.T) {
	source := mapSource{
		"03/2024": {
			sale("03/2024", "75000", "Acme Realty", "Other"),
			sale("03/2024", "1200000", "Other", "Other"),
		},
	}

	agg := NewAggregator(source, "Acme", nil)
	result, err := agg.Aggregate(context.Background(), model.Report{Name: "All"}, 1, 2024)
	require.NoError(t, err)

	march := result.Current.Month(time.March)
	assert.Equal(t, 1, march.Buckets[1], "60000-99999")
	assert.Equal(t, 1, march.Buckets[10], "1000000+")
	assert.Equal(t, 2, march.Sales)
	assert.Equal(t, "1275000", march.Revenue.String())
	assert.Equal(t, 1, march.CompanySides)
	assert.Equal(t, 4, march.TotalSides())
	assert.InDelta(t, 25.0, march.Share(), 1e-9)

	assert.Equal(t, 2023, result.PreviousYear)
	assert.Equal(t, 0, result.Previous.Month(time.March).Sales)
	assert.Empty(t, result.Issues)
	assert.Equal(t, []time.Month{time.January, time.February, time.March}, result.Months())
}

func TestAggregate_PreviousYearAndWindow(t *testing.T) {
	source := mapSource{
		"04/2023": {sale("04/2023", "300000", "", "")},
		"06/2024": {sale("06/2024", "300000", "", "")},
		"07/2024": {sale("07/2024", "300000", "", "")},
	}

	result, err := NewAggregator(source, "Acme", nil).Aggregate(context.Background(), model.Report{}, 2, 2024)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Previous.Month(time.April).Sales)
	assert.Equal(t, 1, result.Current.Month(time.June).Sales)
	assert.Equal(t, 0, result.Current.Month(time.July).Sales, "outside the window")
	assert.Equal(t, 1, result.Current.Month(time.June).Buckets[6], "300000-399999")
}

func TestAggregate_RulesFilter(t *testing.T) {
	condo := sale("01/2024", "100000", "", "")
	condo.PropertyType = "CONDO"
	source := mapSource{"01/2024": {sale("01/2024", "100000", "", ""), condo}}

	report := model.Report{Name: "Condos"}
	_, err := report.Rules.Add(model.DimensionPropertyType, "CONDO")
	require.NoError(t, err)

	result, err := NewAggregator(source, "Acme", nil).Aggregate(context.Background(), report, FullYear, 2024)
	require.NoError(t, err)

	jan := result.Current.Month(time.January)
	assert.Equal(t, 1, jan.Sales)
	assert.Equal(t, 1, jan.Buckets[2], "100000-149999")
	assert.Equal(t, "Condos", result.Report.Name)
}

func TestAggregate_CompanySides(t *testing.T) {
	tests := []struct {
		name    string
		listing string
		selling string
		company string
		want    int
	}{
		{name: "neither", listing: "Other", selling: "Other", company: "Acme", want: 0},
		{name: "listing only", listing: "Acme Realty", selling: "Other", company: "Acme", want: 1},
		{name: "both sides", listing: `"Acme Realty, LLC"`, selling: "Acme Homes", company: "Acme", want: 2},
		{name: "substring is case sensitive", listing: "ACME", selling: "acme", company: "Acme", want: 0},
		{name: "empty company credits nothing", listing: "Acme", selling: "Acme", company: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mapSource{"05/2024": {sale("05/2024", "250000", tt.listing, tt.selling)}}
			result, err := NewAggregator(source, tt.company, nil).Aggregate(context.Background(), model.Report{}, 2, 2024)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Current.Month(time.May).CompanySides)
		})
	}
}

func TestAggregate_UnparsablePrice(t *testing.T) {
	source := mapSource{
		"02/2024": {
			sale("02/2024", "n/a", "", ""),
			sale("02/2024", "NaN", "", ""),
			sale("02/2024", "$1,250.50", "", ""),
		},
	}

	result, err := NewAggregator(source, "Acme", nil).Aggregate(context.Background(), model.Report{}, 1, 2024)
	require.NoError(t, err)

	feb := result.Current.Month(time.February)
	assert.Equal(t, 1, feb.Sales)
	assert.Equal(t, "1250.5", feb.Revenue.String())
	require.Len(t, result.Issues, 2)
	assert.ErrorIs(t, result.Issues[0], common.ErrUnparsableNumber)
	assert.Contains(t, result.Issues[0].Error(), "02/2024")
}

func TestAggregate_InvalidQuarter(t *testing.T) {
	agg := NewAggregator(mapSource{}, "Acme", nil)
	for _, q := range []Quarter{0, 6, -1} {
		_, err := agg.Aggregate(context.Background(), model.Report{}, q, 2024)
		assert.ErrorIs(t, err, common.ErrInvalidQuarter)
	}
}

func TestAggregate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator(mapSource{}, "Acme", nil).Aggregate(ctx, model.Report{}, 1, 2024)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRevenueIsExact(t *testing.T) {
	var recs []model.Record
	for range 10 {
		recs = append(recs, sale("01/2024", "0.1", "", ""))
	}
	result, err := NewAggregator(mapSource{"01/2024": recs}, "Acme", nil).Aggregate(context.Background(), model.Report{}, 1, 2024)
	require.NoError(t, err)
	assert.Equal(t, "1", result.Current.Month(time.January).Revenue.String())
}
