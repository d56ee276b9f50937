// Package storage holds ingested records in memory and persists rule files.
package storage

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/ingest"
	"github.com/Veraticus/comps/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxLineBytes = 16 * 1024 * 1024

// IngestSummary reports the outcome of a bulk ingest.
type IngestSummary struct {
	Errors   []error // One *common.LineError per skipped line
	Lines    int     // Data lines read, header excluded
	Ingested int
}

// Err returns the skipped-line failures as a single error, or nil.
func (s *IngestSummary) Err() error {
	return common.NewBatchError("ingest", s.Errors)
}

// RecordStore groups records by canonical MM/YYYY key and tracks the
// distinct values seen for each dimension.
type RecordStore struct {
	records   map[string][]model.Record
	logger    *slog.Logger
	caser     cases.Caser
	values    [model.NumDimensions]valueIndex
	locations valueIndex
	count     int
	delim     rune
}

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithDelimiter sets the field delimiter used by Ingest. The default is a comma.
func WithDelimiter(delim rune) Option {
	return func(s *RecordStore) {
		s.delim = delim
	}
}

// WithLogger sets the logger used for ingest diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *RecordStore) {
		s.logger = logger
	}
}

// NewRecordStore creates an empty store.
func NewRecordStore(opts ...Option) *RecordStore {
	s := &RecordStore{
		records: make(map[string][]model.Record),
		caser:   cases.Title(language.English),
		delim:   ',',
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = common.LoggerOrDefault(s.logger)
	return s
}

// Ingest parses one line with the column mapping and stores the record.
func (s *RecordStore) Ingest(line string, m model.ColumnMapping) error {
	if err := validateMapping(m); err != nil {
		return err
	}
	rec, err := ingest.ParseLine(line, s.delim, m)
	if err != nil {
		return err
	}
	s.Add(rec)
	return nil
}

// Add stores an already parsed record.
func (s *RecordStore) Add(rec model.Record) {
	s.records[rec.SoldDate] = append(s.records[rec.SoldDate], rec)
	s.count++

	for _, d := range model.Dimensions() {
		s.values[d].add(rec.Attribute(d))
	}
	if rec.Municipality != "" || rec.County != "" {
		s.locations.add(s.locationLabel(rec.Municipality, rec.County))
	}
}

// IngestFile reads a delimited file, skipping its header line. Lines that
// fail to parse are collected in the summary and do not stop the load.
func (s *RecordStore) IngestFile(ctx context.Context, r io.Reader, m model.ColumnMapping) (*IngestSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: reader", ErrNilParameter)
	}
	if err := validateMapping(m); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	summary := &IngestSummary{}
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		summary.Lines++
		if err := s.Ingest(line, m); err != nil {
			s.logger.Debug("skipping input line", "line", lineNo, "error", err)
			summary.Errors = append(summary.Errors, &common.LineError{Line: lineNo, Err: err})
			continue
		}
		summary.Ingested++
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("failed to read input: %w", err)
	}

	s.Finalize()
	s.logger.Info("ingested records",
		"lines", summary.Lines,
		"ingested", summary.Ingested,
		"skipped", len(summary.Errors),
		"months", len(s.records))

	return summary, nil
}

// RecordsFor returns the records sold in the month identified by key.
func (s *RecordStore) RecordsFor(key string) []model.Record {
	return s.records[key]
}

// Len returns the number of stored records.
func (s *RecordStore) Len() int {
	return s.count
}

// Keys returns every month key in chronological order.
func (s *RecordStore) Keys() []string {
	keys := make([]string, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}

// Values returns the sorted distinct values observed for d.
func (s *RecordStore) Values(d model.Dimension) []string {
	if !d.Valid() {
		return nil
	}
	return s.values[d].sortedCopy()
}

// Locations returns the sorted "Municipality (County)" labels observed.
func (s *RecordStore) Locations() []string {
	return s.locations.sortedCopy()
}

// Finalize sorts the value indexes once after a bulk load.
func (s *RecordStore) Finalize() {
	for i := range s.values {
		s.values[i].sort()
	}
	s.locations.sort()
}

func (s *RecordStore) locationLabel(municipality, county string) string {
	return s.caser.String(strings.TrimSpace(municipality)) + " (" + s.caser.String(strings.TrimSpace(county)) + ")"
}

// compareKeys orders MM/YYYY keys by year, then month.
func compareKeys(a, b string) int {
	ya, ma := splitKey(a)
	yb, mb := splitKey(b)
	if ya != yb {
		return ya - yb
	}
	if ma != mb {
		return ma - mb
	}
	return strings.Compare(a, b)
}

func splitKey(key string) (year, month int) {
	m, y, ok := strings.Cut(key, "/")
	if !ok {
		return 0, 0
	}
	month, _ = strconv.Atoi(m)
	year, _ = strconv.Atoi(y)
	return year, month
}

// valueIndex is a deduplicated list that is sorted on demand.
type valueIndex struct {
	seen   map[string]struct{}
	list   []string
	sorted bool
}

func (v *valueIndex) add(value string) {
	if value == "" {
		return
	}
	if v.seen == nil {
		v.seen = make(map[string]struct{})
	}
	if _, ok := v.seen[value]; ok {
		return
	}
	v.seen[value] = struct{}{}
	v.list = append(v.list, value)
	v.sorted = false
}

func (v *valueIndex) sort() {
	if v.sorted {
		return
	}
	slices.Sort(v.list)
	v.sorted = true
}

func (v *valueIndex) sortedCopy() []string {
	v.sort()
	return slices.Clone(v.list)
}

func (v *valueIndex) has(value string) bool {
	_, ok := v.seen[value]
	return ok
}

// Observed reports whether value was seen for d in any ingested record.
func (s *RecordStore) Observed(d model.Dimension, value string) bool {
	if !d.Valid() {
		return false
	}
	return s.values[d].has(value)
}
