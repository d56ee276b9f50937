package pattern

import (
	"github.com/Veraticus/comps/internal/model"
)

// Validator checks rule values against the ingested data. Its findings are
// advisory and never change how records match.
type Validator struct {
	suggester *Suggester
}

// NewValidator creates a validator that attaches up to three suggestions per warning.
func NewValidator() *Validator {
	return &Validator{suggester: NewSuggester(defaultSuggestionLimit)}
}

// Validate returns a warning for every rule value that was never observed.
func (v *Validator) Validate(rules *model.RuleSet, index ValueIndex) []Warning {
	var warnings []Warning

	for _, d := range model.Dimensions() {
		values := rules.Values(d)
		if len(values) == 0 {
			continue
		}

		var observed []string
		for _, value := range values {
			if index.Observed(d, value) {
				continue
			}
			if observed == nil {
				observed = index.Values(d)
			}
			warnings = append(warnings, Warning{
				Dimension:   d,
				Value:       value,
				Suggestions: v.suggester.Suggest(value, observed),
			})
		}
	}

	return warnings
}
