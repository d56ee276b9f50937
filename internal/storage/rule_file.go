package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/rules"
)

// RuleFileExt is appended to rule file paths that lack it when saving.
const RuleFileExt = ".rule"

// ReadRules parses a rule file: repeating groups of a report-name line
// followed by one comma-separated line per dimension in fixed order.
// An empty dimension line is a wildcard. Reports that appear twice are merged.
func ReadRules(r io.Reader) (*rules.Book, error) {
	book := rules.NewBook()
	scanner := bufio.NewScanner(r)
	lineNo := 0

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(scanner.Text(), "\r"), true
	}

	for {
		name, ok := next()
		if !ok {
			break
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		if _, err := book.AddReport(name); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", common.ErrMalformedRuleFile, lineNo, err)
		}

		for _, d := range model.Dimensions() {
			line, ok := next()
			if !ok {
				return nil, fmt.Errorf("%w: report %q ends before its %s line",
					common.ErrMalformedRuleFile, name, d)
			}
			for _, value := range strings.Split(line, ",") {
				if strings.TrimSpace(value) == "" {
					continue
				}
				if _, err := book.AddRule(name, d, value); err != nil {
					return nil, fmt.Errorf("%w: line %d: %w", common.ErrMalformedRuleFile, lineNo, err)
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}
	return book, nil
}

// WriteRules writes every report in book order in the format ReadRules accepts.
func WriteRules(w io.Writer, book *rules.Book) error {
	bw := bufio.NewWriter(w)

	for _, report := range book.Reports() {
		if _, err := fmt.Fprintln(bw, report.Name); err != nil {
			return fmt.Errorf("failed to write report %q: %w", report.Name, err)
		}
		for _, d := range model.Dimensions() {
			if _, err := fmt.Fprintln(bw, strings.Join(report.Rules.Values(d), ",")); err != nil {
				return fmt.Errorf("failed to write report %q: %w", report.Name, err)
			}
		}
	}

	return bw.Flush()
}

// LoadRuleFile reads the rule file at path.
func LoadRuleFile(path string) (*rules.Book, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	f, err := os.Open(path) // #nosec G304 - path is supplied by the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to open rule file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	book, err := ReadRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return book, nil
}

// SaveRuleFile writes the book to path, adding the .rule extension when it is
// missing, and returns the path written. The file is replaced atomically.
func SaveRuleFile(path string, book *rules.Book) (string, error) {
	if err := validateString(path, "path"); err != nil {
		return "", err
	}
	if book == nil {
		return "", fmt.Errorf("%w: book", ErrNilParameter)
	}
	if !strings.HasSuffix(path, RuleFileExt) {
		path += RuleFileExt
	}

	err := WriteFileAtomic(path, func(w io.Writer) error {
		return WriteRules(w, book)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// WriteFileAtomic writes through a temporary file in the target directory and
// renames it into place, so readers never see a partial file.
func WriteFileAtomic(path string, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}
