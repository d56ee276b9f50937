// Package pattern evaluates report rule sets against records.
package pattern

import (
	"fmt"
	"strings"

	"github.com/Veraticus/comps/internal/model"
)

// ValueIndex exposes the values observed in the ingested data.
type ValueIndex interface {
	Values(d model.Dimension) []string
	Observed(d model.Dimension, value string) bool
}

// Warning flags a rule value that no ingested record carries.
type Warning struct {
	Value       string
	Suggestions []string
	Dimension   model.Dimension
}

func (w Warning) String() string {
	msg := fmt.Sprintf("%s %q does not occur in the data", w.Dimension, w.Value)
	if len(w.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(w.Suggestions, ", "))
	}
	return msg
}
