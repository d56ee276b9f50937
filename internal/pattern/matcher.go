package pattern

import (
	"github.com/Veraticus/comps/internal/model"
)

// Matches reports whether rec satisfies every dimension of rules. A dimension
// with no values accepts anything; otherwise the record's attribute must be
// one of the values, compared exactly.
func Matches(rec model.Record, rules *model.RuleSet) bool {
	for _, d := range model.Dimensions() {
		if rules.IsWildcard(d) {
			continue
		}
		if !rules.Contains(d, rec.Attribute(d)) {
			return false
		}
	}
	return true
}

// Matcher is a precompiled form of a rule set for evaluating many records.
type Matcher struct {
	sets [model.NumDimensions]map[string]struct{}
}

// NewMatcher builds lookup sets from rules. Later changes to rules are not seen.
func NewMatcher(rules *model.RuleSet) *Matcher {
	m := &Matcher{}

	for _, d := range model.Dimensions() {
		values := rules.Values(d)
		if len(values) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		m.sets[d] = set
	}

	return m
}

// Match gives the same answer as Matches for the rule set the matcher was built from.
func (m *Matcher) Match(rec model.Record) bool {
	for _, d := range model.Dimensions() {
		set := m.sets[d]
		if set == nil {
			continue
		}
		if _, ok := set[rec.Attribute(d)]; !ok {
			return false
		}
	}
	return true
}

// Filter returns the records that match, in order.
func (m *Matcher) Filter(recs []model.Record) []model.Record {
	var out []model.Record
	for _, rec := range recs {
		if m.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}
