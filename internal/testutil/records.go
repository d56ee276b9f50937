package testutil

import (
	"strings"

	"github.com/Veraticus/comps/internal/model"
)

// Mapping is a compact column mapping where columns appear in Record field order.
func Mapping() model.ColumnMapping {
	return model.ColumnMapping{
		ListingCompany: 0,
		PropertyType:   1,
		DaysOnMarket:   2,
		SoldDate:       3,
		ListPrice:      4,
		SoldPrice:      5,
		Municipality:   6,
		County:         7,
		ZipCode:        8,
		SellingCompany: 9,
		BodyOfWater:    10,
		CondoName:      11,
	}
}

// Header is a header line for files laid out per Mapping.
const Header = "Listing Office,Type,DOM,Sold Date,List Price,Sold Price,Municipality,County,Zip,Selling Office,Water,Condo"

// Line renders rec as an input line laid out per Mapping, quoting the
// company names and any field containing a comma.
func Line(rec model.Record) string {
	fields := []string{
		rec.ListingCompany, rec.PropertyType, rec.DaysOnMarket, rec.SoldDate,
		rec.ListPrice, rec.SoldPrice, rec.Municipality, rec.County,
		rec.ZipCode, rec.SellingCompany, rec.BodyOfWater, rec.CondoName,
	}
	for i, f := range fields {
		if strings.Contains(f, ",") {
			fields[i] = `"` + f + `"`
		}
	}
	return strings.Join(fields, ",")
}

// File joins Header and one line per record.
func File(recs ...model.Record) string {
	lines := make([]string, 0, len(recs)+1)
	lines = append(lines, Header)
	for _, rec := range recs {
		lines = append(lines, Line(rec))
	}
	return strings.Join(lines, "\n") + "\n"
}
