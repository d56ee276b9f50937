// Package model defines the core data structures for the comps application.
package model

// Record represents a single sold listing from the input file.
// Records are values; nothing mutates one after ingestion.
type Record struct {
	ListingCompany string // Passed through with its original quoting
	PropertyType   string
	DaysOnMarket   string
	SoldDate       string // Canonical MM/YYYY key
	ListPrice      string
	SoldPrice      string // Parsed at aggregation time
	Municipality   string
	County         string
	ZipCode        string
	SellingCompany string // Passed through with its original quoting
	BodyOfWater    string
	CondoName      string
}

// Attribute returns the record value compared against rules for d.
func (r Record) Attribute(d Dimension) string {
	switch d {
	case DimensionCounty:
		return r.County
	case DimensionMunicipality:
		return r.Municipality
	case DimensionZipCode:
		return r.ZipCode
	case DimensionBodyOfWater:
		return r.BodyOfWater
	case DimensionCondoName:
		return r.CondoName
	case DimensionPropertyType:
		return r.PropertyType
	default:
		return ""
	}
}
