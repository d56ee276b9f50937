package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/engine"
	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/pattern"
	"github.com/Veraticus/comps/internal/rules"
	"github.com/Veraticus/comps/internal/storage"
)

// Session owns everything one invocation works on. There is no global state;
// commands build a session and pass it around.
type Session struct {
	Store     RecordStore
	Book      *rules.Book
	Writer    ReportWriter
	logger    *slog.Logger
	validator *pattern.Validator
	company   string
	columns   model.ColumnMapping
}

// Options configures a new session.
type Options struct {
	Store   RecordStore
	Writer  ReportWriter
	Logger  *slog.Logger
	Company string
	Columns model.ColumnMapping
}

// NewSession creates a session with an empty book.
func NewSession(opts Options) *Session {
	logger := common.LoggerOrDefault(opts.Logger)

	store := opts.Store
	if store == nil {
		store = storage.NewRecordStore(storage.WithLogger(logger))
	}

	return &Session{
		Store:     store,
		Book:      rules.NewBook(),
		Writer:    opts.Writer,
		logger:    logger,
		validator: pattern.NewValidator(),
		company:   opts.Company,
		columns:   opts.Columns,
	}
}

// LoadRecords ingests a record file's contents.
func (s *Session) LoadRecords(ctx context.Context, r io.Reader) (*storage.IngestSummary, error) {
	summary, err := s.Store.IngestFile(ctx, r, s.columns)
	if err != nil {
		return summary, fmt.Errorf("failed to load records: %w", err)
	}
	return summary, nil
}

// LoadRecordFile opens path and ingests it. wrap, when non-nil, decorates the
// reader (for progress reporting).
func (s *Session) LoadRecordFile(ctx context.Context, path string, wrap func(r io.Reader, size int64) io.Reader) (*storage.IngestSummary, error) {
	f, err := os.Open(path) // #nosec G304 - path is supplied by the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to open record file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var r io.Reader = f
	if wrap != nil {
		size := int64(-1)
		if info, statErr := f.Stat(); statErr == nil {
			size = info.Size()
		}
		r = wrap(f, size)
	}

	return s.LoadRecords(ctx, r)
}

// LoadRules replaces the book with the contents of a rule file.
func (s *Session) LoadRules(path string) error {
	book, err := storage.LoadRuleFile(path)
	if err != nil {
		return err
	}
	s.Book = book
	s.logger.Debug("loaded rules", "path", path, "reports", book.Len())
	return nil
}

// SaveRules writes the book to path and returns the path actually written.
func (s *Session) SaveRules(path string) (string, error) {
	written, err := storage.SaveRuleFile(path, s.Book)
	if err != nil {
		return "", fmt.Errorf("failed to save rules: %w", err)
	}
	return written, nil
}

// Outcome describes one generated report.
type Outcome struct {
	Name     string
	Path     string
	Issues   []error
	Warnings []pattern.Warning
}

// Failure is a report that could not be generated.
type Failure struct {
	Err  error
	Name string
}

// GenerationSummary collects the results of a batch run.
type GenerationSummary struct {
	Written []Outcome
	Failed  []Failure
}

// Err returns the failures as one error, or nil.
func (g *GenerationSummary) Err() error {
	errs := make([]error, 0, len(g.Failed))
	for _, f := range g.Failed {
		errs = append(errs, fmt.Errorf("%s: %w", f.Name, f.Err))
	}
	return common.NewBatchError("generate", errs)
}

// Generate aggregates and writes one report.
func (s *Session) Generate(ctx context.Context, name string, quarter engine.Quarter, year int) (*Outcome, error) {
	if s.Writer == nil {
		return nil, fmt.Errorf("%w: no report writer", common.ErrMissingConfig)
	}

	report, err := s.Book.Report(name)
	if err != nil {
		return nil, err
	}

	warnings := s.validator.Validate(&report.Rules, s.Store)
	for _, w := range warnings {
		s.logger.Warn("rule value never occurs in the data", "report", name, "warning", w.String())
	}

	result, err := engine.NewAggregator(s.Store, s.company, s.logger).Aggregate(ctx, report, quarter, year)
	if err != nil {
		return nil, err
	}

	path, err := s.Writer.Write(result)
	if err != nil {
		return nil, err
	}

	return &Outcome{
		Name:     name,
		Path:     path,
		Issues:   result.Issues,
		Warnings: warnings,
	}, nil
}

// GenerateAll writes every report in book order, or only the named ones when
// only is non-empty. A report that fails is recorded and the rest still run.
// The returned error is reserved for problems that stop the whole batch.
func (s *Session) GenerateAll(ctx context.Context, quarter engine.Quarter, year int, only []string) (*GenerationSummary, error) {
	if !quarter.Valid() {
		return nil, fmt.Errorf("%w: %d", common.ErrInvalidQuarter, int(quarter))
	}

	names := s.Book.Names()
	if len(only) > 0 {
		only = slices.Clone(only)
		for i, n := range only {
			n = strings.TrimSpace(n)
			only[i] = n
			if !slices.Contains(names, n) {
				return nil, fmt.Errorf("%w: %q", common.ErrUnknownReport, n)
			}
		}
		names = slices.DeleteFunc(names, func(n string) bool { return !slices.Contains(only, n) })
	}
	if len(names) == 0 {
		return nil, common.ErrNoReports
	}

	summary := &GenerationSummary{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		outcome, err := s.Generate(ctx, name, quarter, year)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return summary, err
			}
			s.logger.Error("report failed", "report", name, "error", err)
			summary.Failed = append(summary.Failed, Failure{Name: name, Err: err})
			continue
		}

		s.logger.Info("report written", "report", name, "path", outcome.Path, "issues", len(outcome.Issues))
		summary.Written = append(summary.Written, *outcome)
	}

	return summary, nil
}

// ReportWarnings groups the validator's findings for one report.
type ReportWarnings struct {
	Name     string
	Warnings []pattern.Warning
}

// Check validates every report's rules against the loaded records. Only
// reports with at least one warning are returned, in book order.
func (s *Session) Check() []ReportWarnings {
	var out []ReportWarnings
	for _, r := range s.Book.Reports() {
		warnings := s.validator.Validate(&r.Rules, s.Store)
		if len(warnings) == 0 {
			continue
		}
		out = append(out, ReportWarnings{Name: r.Name, Warnings: warnings})
	}
	return out
}
