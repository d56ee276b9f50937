package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/comps/internal/common"
)

// RuleSet holds the accepted values for each dimension of a report.
// An empty dimension accepts every record. Values keep insertion order
// for display but never repeat. The zero value is an all-wildcard rule set.
type RuleSet struct {
	values [NumDimensions][]string
}

// Add inserts value into d's accepted set. It reports whether the set changed;
// adding a value that is already present is a no-op.
func (r *RuleSet) Add(d Dimension, value string) (bool, error) {
	if !d.Valid() {
		return false, fmt.Errorf("%w: %d", common.ErrInvalidDimension, int(d))
	}

	value = strings.TrimSpace(value)
	if err := ValidateRuleValue(value); err != nil {
		return false, err
	}

	if slices.Contains(r.values[d], value) {
		return false, nil
	}
	r.values[d] = append(r.values[d], value)
	return true, nil
}

// Delete removes value from d's accepted set and reports whether it was present.
func (r *RuleSet) Delete(d Dimension, value string) bool {
	if !d.Valid() {
		return false
	}

	value = strings.TrimSpace(value)
	idx := slices.Index(r.values[d], value)
	if idx < 0 {
		return false
	}
	r.values[d] = slices.Delete(r.values[d], idx, idx+1)
	return true
}

// Values returns a copy of d's accepted values in insertion order.
func (r *RuleSet) Values(d Dimension) []string {
	if !d.Valid() {
		return nil
	}
	return slices.Clone(r.values[d])
}

// Contains reports whether value is in d's accepted set.
func (r *RuleSet) Contains(d Dimension, value string) bool {
	if !d.Valid() {
		return false
	}
	return slices.Contains(r.values[d], value)
}

// IsWildcard reports whether d accepts any value.
func (r *RuleSet) IsWildcard(d Dimension) bool {
	if !d.Valid() {
		return true
	}
	return len(r.values[d]) == 0
}

// Len returns the total number of rules across all dimensions.
func (r *RuleSet) Len() int {
	n := 0
	for _, vals := range r.values {
		n += len(vals)
	}
	return n
}

// Clone returns a deep copy.
func (r *RuleSet) Clone() RuleSet {
	var out RuleSet
	for i, vals := range r.values {
		out.values[i] = slices.Clone(vals)
	}
	return out
}

// Report is a named rule set.
type Report struct {
	Name  string
	Rules RuleSet
}

// ValidateReportName checks that name can be used as a rule-file line and a file name.
func ValidateReportName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", common.ErrInvalidReportName)
	}
	if strings.ContainsAny(name, "/\\\r\n") {
		return fmt.Errorf("%w: %q contains a path separator or line break", common.ErrInvalidReportName, name)
	}
	return nil
}

// ValidateRuleValue checks that a trimmed value fits in a comma-separated rule line.
func ValidateRuleValue(value string) error {
	if value == "" {
		return fmt.Errorf("%w: empty value", common.ErrInvalidRuleValue)
	}
	if strings.ContainsAny(value, ",\r\n") {
		return fmt.Errorf("%w: %q contains a comma or line break", common.ErrInvalidRuleValue, value)
	}
	return nil
}
