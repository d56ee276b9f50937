package ingest

import (
	"fmt"
	"strings"

	"github.com/Veraticus/comps/internal/common"
)

// NormalizeDate converts "YYYY-MM-DD" or "M/D/YYYY" style dates to the
// canonical "MM/YYYY" key.
//
// Hyphenated input is read at fixed offsets (month at 5:7, year at 0:4), so
// anything that is not laid out as YYYY-MM... fails the shape check. Slash
// input has everything between its first and last slash collapsed, which
// drops a day component when one is present.
func NormalizeDate(raw string) (string, error) {
	date := strings.TrimSpace(raw)

	var key string
	if strings.Contains(date, "-") {
		if len(date) < 7 {
			return "", fmt.Errorf("%w: %q is too short for YYYY-MM", common.ErrInvalidDate, raw)
		}
		key = date[5:7] + "/" + date[0:4]
	} else {
		first := strings.Index(date, "/")
		last := strings.LastIndex(date, "/")
		if first < 0 {
			return "", fmt.Errorf("%w: %q has no separator", common.ErrInvalidDate, raw)
		}
		key = date[:first] + date[last:]
		if len(key) < 7 {
			key = "0" + key
		}
	}

	if !isCanonicalKey(key) {
		return "", fmt.Errorf("%w: %q does not normalize to MM/YYYY", common.ErrInvalidDate, raw)
	}
	return key, nil
}

// MonthKey builds the canonical key for a month (1-12) and year.
func MonthKey(month, year int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}

func isCanonicalKey(key string) bool {
	if len(key) != 7 || key[2] != '/' {
		return false
	}
	for i, c := range key {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
