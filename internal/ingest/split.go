// Package ingest turns raw delimited lines into records.
package ingest

import (
	"strings"
	"unicode/utf8"
)

const quote = '"'

// SplitLine splits line on delim, skipping delimiters that sit inside a
// quoted run. A delimiter separates fields only when an even number of quote
// characters follows it on the line. Quotes are kept in the returned fields
// and trailing empty fields are preserved.
//
// A line with an unbalanced quote is still split on a best-effort basis; the
// parity rule simply treats the unmatched quote as opening a run that never
// closes to its left.
func SplitLine(line string, delim rune) []string {
	if delim == quote || delim == utf8.RuneError {
		return strings.Split(line, string(delim))
	}

	remaining := strings.Count(line, string(quote))
	fields := make([]string, 0, 16)
	start := 0

	for i, r := range line {
		switch r {
		case quote:
			remaining--
		case delim:
			if remaining%2 == 0 {
				fields = append(fields, line[start:i])
				start = i + utf8.RuneLen(r)
			}
		}
	}

	return append(fields, line[start:])
}

// StripQuotes removes every quote character from s.
func StripQuotes(s string) string {
	if !strings.ContainsRune(s, quote) {
		return s
	}
	return strings.ReplaceAll(s, string(quote), "")
}
