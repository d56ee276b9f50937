package model

// ColumnMapping tells the record store which zero-based input column holds
// each record attribute.
type ColumnMapping struct {
	ListingCompany int `mapstructure:"listing_company" yaml:"listing_company" validate:"gte=0"`
	PropertyType   int `mapstructure:"property_type" yaml:"property_type" validate:"gte=0"`
	DaysOnMarket   int `mapstructure:"days_on_market" yaml:"days_on_market" validate:"gte=0"`
	SoldDate       int `mapstructure:"sold_date" yaml:"sold_date" validate:"gte=0"`
	ListPrice      int `mapstructure:"list_price" yaml:"list_price" validate:"gte=0"`
	SoldPrice      int `mapstructure:"sold_price" yaml:"sold_price" validate:"gte=0"`
	Municipality   int `mapstructure:"municipality" yaml:"municipality" validate:"gte=0"`
	County         int `mapstructure:"county" yaml:"county" validate:"gte=0"`
	ZipCode        int `mapstructure:"zip_code" yaml:"zip_code" validate:"gte=0"`
	SellingCompany int `mapstructure:"selling_company" yaml:"selling_company" validate:"gte=0"`
	BodyOfWater    int `mapstructure:"body_of_water" yaml:"body_of_water" validate:"gte=0"`
	CondoName      int `mapstructure:"condo_name" yaml:"condo_name" validate:"gte=0"`
}

// DefaultColumnMapping matches the export layout the tool was first built for.
func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		ListingCompany: 1,
		PropertyType:   6,
		DaysOnMarket:   134,
		SoldDate:       14,
		ListPrice:      25,
		SoldPrice:      42,
		Municipality:   41,
		County:         43,
		ZipCode:        46,
		SellingCompany: 9,
		BodyOfWater:    66,
		CondoName:      58,
	}
}

// Indexes returns every mapped column index.
func (m ColumnMapping) Indexes() []int {
	return []int{
		m.ListingCompany,
		m.PropertyType,
		m.DaysOnMarket,
		m.SoldDate,
		m.ListPrice,
		m.SoldPrice,
		m.Municipality,
		m.County,
		m.ZipCode,
		m.SellingCompany,
		m.BodyOfWater,
		m.CondoName,
	}
}

// MaxIndex returns the highest mapped column index; a line needs
// MaxIndex()+1 fields to be ingested.
func (m ColumnMapping) MaxIndex() int {
	highest := 0
	for _, idx := range m.Indexes() {
		if idx > highest {
			highest = idx
		}
	}
	return highest
}
