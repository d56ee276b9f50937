package ingest

import (
	"fmt"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/model"
)

// ParseRecord builds a record from split fields using the column mapping.
// Quotes are stripped from every attribute except the two company names.
func ParseRecord(fields []string, m model.ColumnMapping) (model.Record, error) {
	if need := m.MaxIndex() + 1; len(fields) < need {
		return model.Record{}, fmt.Errorf("%w: got %d fields, mapping needs %d",
			common.ErrMalformedLine, len(fields), need)
	}

	soldDate, err := NormalizeDate(StripQuotes(fields[m.SoldDate]))
	if err != nil {
		return model.Record{}, fmt.Errorf("%w: sold date: %w", common.ErrMalformedLine, err)
	}

	return model.Record{
		ListingCompany: fields[m.ListingCompany],
		PropertyType:   StripQuotes(fields[m.PropertyType]),
		DaysOnMarket:   StripQuotes(fields[m.DaysOnMarket]),
		SoldDate:       soldDate,
		ListPrice:      StripQuotes(fields[m.ListPrice]),
		SoldPrice:      StripQuotes(fields[m.SoldPrice]),
		Municipality:   StripQuotes(fields[m.Municipality]),
		County:         StripQuotes(fields[m.County]),
		ZipCode:        StripQuotes(fields[m.ZipCode]),
		SellingCompany: fields[m.SellingCompany],
		BodyOfWater:    StripQuotes(fields[m.BodyOfWater]),
		CondoName:      StripQuotes(fields[m.CondoName]),
	}, nil
}

// ParseLine splits line on delim and builds a record from it.
func ParseLine(line string, delim rune, m model.ColumnMapping) (model.Record, error) {
	return ParseRecord(SplitLine(line, delim), m)
}
