package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/comps/internal/common"
)

// Dimension is one of the six filterable record attributes.
type Dimension int

// Dimensions in rule-file and report order.
const (
	DimensionCounty Dimension = iota
	DimensionMunicipality
	DimensionZipCode
	DimensionBodyOfWater
	DimensionCondoName
	DimensionPropertyType
)

// NumDimensions is the number of filterable dimensions.
const NumDimensions = 6

// Dimensions returns every dimension in fixed order.
func Dimensions() []Dimension {
	return []Dimension{
		DimensionCounty,
		DimensionMunicipality,
		DimensionZipCode,
		DimensionBodyOfWater,
		DimensionCondoName,
		DimensionPropertyType,
	}
}

var dimensionNames = [NumDimensions]string{
	"County",
	"Municipality",
	"Zip Code",
	"Body of Water",
	"Condo Name",
	"Category",
}

var dimensionAliases = map[string]Dimension{
	"county":        DimensionCounty,
	"municipality":  DimensionMunicipality,
	"muni":          DimensionMunicipality,
	"zip":           DimensionZipCode,
	"zip-code":      DimensionZipCode,
	"zipcode":       DimensionZipCode,
	"water":         DimensionBodyOfWater,
	"body-of-water": DimensionBodyOfWater,
	"condo":         DimensionCondoName,
	"condo-name":    DimensionCondoName,
	"type":          DimensionPropertyType,
	"property-type": DimensionPropertyType,
	"category":      DimensionPropertyType,
}

// Valid reports whether d is one of the six dimensions.
func (d Dimension) Valid() bool {
	return d >= DimensionCounty && d <= DimensionPropertyType
}

// String returns the human-readable dimension name.
func (d Dimension) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

// Label returns the rules-header label, e.g. "Where County =".
func (d Dimension) Label() string {
	return "Where " + d.String() + " ="
}

// ParseDimension resolves a command-line spelling such as "zip" or "condo-name".
func ParseDimension(s string) (Dimension, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")

	if d, ok := dimensionAliases[key]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", common.ErrInvalidDimension, s)
}
