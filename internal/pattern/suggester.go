package pattern

import (
	"strings"
)

const defaultSuggestionLimit = 3

// Suggester proposes observed values that look like a mistyped rule value.
type Suggester struct {
	limit int
}

// NewSuggester creates a suggester returning at most limit candidates.
// A non-positive limit uses the default of three.
func NewSuggester(limit int) *Suggester {
	if limit <= 0 {
		limit = defaultSuggestionLimit
	}
	return &Suggester{limit: limit}
}

// Suggest returns candidates that equal value ignoring case and surrounding
// quotes first, then candidates that contain it or are contained by it.
// Candidate order is preserved within each group.
func (s *Suggester) Suggest(value string, candidates []string) []string {
	needle := normalize(value)
	if needle == "" {
		return nil
	}

	var exact, partial []string
	for _, c := range candidates {
		hay := normalize(c)
		switch {
		case hay == "":
		case hay == needle:
			exact = append(exact, c)
		case strings.Contains(hay, needle) || strings.Contains(needle, hay):
			partial = append(partial, c)
		}
	}

	out := append(exact, partial...)
	if len(out) > s.limit {
		out = out[:s.limit]
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.Trim(s, `"`)))
}
