package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/comps/internal/common"
)

// Quarter selects the months a report covers. 1-4 are calendar quarters.
type Quarter int

// FullYear covers January through December.
const FullYear Quarter = 5

// Valid reports whether q is a quarter or FullYear.
func (q Quarter) Valid() bool {
	return q >= 1 && q <= FullYear
}

// Months returns the months in q's window, in calendar order.
func (q Quarter) Months() []time.Month {
	if !q.Valid() {
		return nil
	}

	first, last := time.January, time.December
	if q != FullYear {
		first = time.Month(int(q-1)*3 + 1)
		last = first + 2
	}

	months := make([]time.Month, 0, last-first+1)
	for m := first; m <= last; m++ {
		months = append(months, m)
	}
	return months
}

func (q Quarter) String() string {
	if q == FullYear {
		return "full year"
	}
	return "Q" + strconv.Itoa(int(q))
}

// ParseQuarter accepts 1-4, Q1-Q4, 5, "year" or "full".
func ParseQuarter(s string) (Quarter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "year", "full", "full-year", "fy":
		return FullYear, nil
	}
	v = strings.TrimPrefix(v, "q")

	n, err := strconv.Atoi(v)
	if err != nil || !Quarter(n).Valid() {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidQuarter, s)
	}
	return Quarter(n), nil
}
