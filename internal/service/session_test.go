package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/engine"
	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

type recordingWriter struct {
	failFor map[string]bool
	results []*engine.Result
}

func (w *recordingWriter) Write(result *engine.Result) (string, error) {
	if w.failFor[result.Report.Name] {
		return "", errDiskFull
	}
	w.results = append(w.results, result)
	return result.Report.Name + ".csv", nil
}

func newTestSession(t *testing.T, writer ReportWriter) *Session {
	t.Helper()

	s := NewSession(Options{
		Company: "Acme",
		Columns: testutil.Mapping(),
		Writer:  writer,
	})

	input := testutil.File(
		model.Record{ListingCompany: "Acme Realty", PropertyType: "RES", SoldDate: "3/15/2024", SoldPrice: "75000", Municipality: "Delavan", County: "Walworth"},
		model.Record{ListingCompany: "Other", PropertyType: "CONDO", SoldDate: "2024-03-02", SoldPrice: "1200000", Municipality: "Lake Geneva", County: "Walworth"},
		model.Record{ListingCompany: "Other", PropertyType: "RES", SoldDate: "3/1/2023", SoldPrice: "n/a", Municipality: "Delavan", County: "Walworth"},
	)
	summary, err := s.LoadRecords(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, summary.Ingested)

	for _, name := range []string{"All", "Condos"} {
		_, err := s.Book.AddReport(name)
		require.NoError(t, err)
	}
	_, err = s.Book.AddRule("Condos", model.DimensionPropertyType, "CONDO")
	require.NoError(t, err)

	return s
}

func TestSession_GenerateAll(t *testing.T) {
	writer := &recordingWriter{}
	s := newTestSession(t, writer)

	summary, err := s.GenerateAll(context.Background(), 1, 2024, nil)
	require.NoError(t, err)
	require.NoError(t, summary.Err())
	require.Len(t, summary.Written, 2)

	assert.Equal(t, "All", summary.Written[0].Name, "book order")
	assert.Equal(t, "All.csv", summary.Written[0].Path)
	require.Len(t, summary.Written[0].Issues, 1, "the n/a price from 2023")
	assert.ErrorIs(t, summary.Written[0].Issues[0], common.ErrUnparsableNumber)

	require.Len(t, writer.results, 2)
	all := writer.results[0]
	assert.Equal(t, 2, all.Current[3].Sales)
	assert.Equal(t, 1, all.Current[3].CompanySides)

	condos := writer.results[1]
	assert.Equal(t, 1, condos.Current[3].Sales)
	assert.Equal(t, 1, condos.Current[3].Buckets[10])
}

func TestSession_GenerateAllIsolatesFailures(t *testing.T) {
	writer := &recordingWriter{failFor: map[string]bool{"All": true}}
	s := newTestSession(t, writer)

	summary, err := s.GenerateAll(context.Background(), 1, 2024, nil)
	require.NoError(t, err)

	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "All", summary.Failed[0].Name)
	assert.ErrorIs(t, summary.Failed[0].Err, errDiskFull)
	assert.ErrorIs(t, summary.Err(), errDiskFull)

	require.Len(t, summary.Written, 1)
	assert.Equal(t, "Condos", summary.Written[0].Name)
}

func TestSession_GenerateAllSubset(t *testing.T) {
	writer := &recordingWriter{}
	s := newTestSession(t, writer)

	summary, err := s.GenerateAll(context.Background(), engine.FullYear, 2024, []string{"Condos"})
	require.NoError(t, err)
	require.Len(t, summary.Written, 1)
	assert.Equal(t, "Condos", summary.Written[0].Name)

	_, err = s.GenerateAll(context.Background(), 1, 2024, []string{"Nope"})
	assert.ErrorIs(t, err, common.ErrUnknownReport)

	_, err = s.GenerateAll(context.Background(), 9, 2024, nil)
	assert.ErrorIs(t, err, common.ErrInvalidQuarter)
}

func TestSession_GenerateWarnings(t *testing.T) {
	s := newTestSession(t, &recordingWriter{})
	_, err := s.Book.AddRule("All", model.DimensionMunicipality, "delavan")
	require.NoError(t, err)

	outcome, err := s.Generate(context.Background(), "All", 1, 2024)
	require.NoError(t, err)
	require.Len(t, outcome.Warnings, 1)
	assert.Equal(t, []string{"Delavan"}, outcome.Warnings[0].Suggestions)
}

func TestSession_NoReportsOrWriter(t *testing.T) {
	s := NewSession(Options{Company: "Acme", Columns: testutil.Mapping(), Writer: &recordingWriter{}})
	_, err := s.GenerateAll(context.Background(), 1, 2024, nil)
	assert.ErrorIs(t, err, common.ErrNoReports)

	s = NewSession(Options{Company: "Acme", Columns: testutil.Mapping()})
	_, _ = s.Book.AddReport("All")
	summary, err := s.GenerateAll(context.Background(), 1, 2024, nil)
	require.NoError(t, err)
	require.Len(t, summary.Failed, 1)
	assert.ErrorIs(t, summary.Failed[0].Err, common.ErrMissingConfig)
}

func TestSession_GenerateAllCanceled(t *testing.T) {
	s := newTestSession(t, &recordingWriter{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := s.GenerateAll(ctx, 1, 2024, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, summary.Written)
}

func TestSession_RuleFileRoundTrip(t *testing.T) {
	s := newTestSession(t, &recordingWriter{})
	path, err := s.SaveRules(filepath.Join(t.TempDir(), "lakes"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".rule"))

	other := NewSession(Options{})
	require.NoError(t, other.LoadRules(path))
	assert.Equal(t, s.Book.Reports(), other.Book.Reports())

	err = other.LoadRules(filepath.Join(t.TempDir(), "missing.rule"))
	assert.ErrorIs(t, err, common.ErrMissingFile)
}

func TestSession_LoadRecordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sold.csv")
	content := testutil.File(model.Record{SoldDate: "1/5/2024", SoldPrice: "100"})
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var gotSize int64
	s := NewSession(Options{Columns: testutil.Mapping()})
	summary, err := s.LoadRecordFile(context.Background(), path, func(r io.Reader, size int64) io.Reader {
		gotSize = size
		return r
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Ingested)
	assert.Equal(t, int64(len(content)), gotSize)

	_, err = s.LoadRecordFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.ErrorIs(t, err, common.ErrMissingFile)
}

func TestSession_Check(t *testing.T) {
	s := newTestSession(t, &recordingWriter{})
	assert.Empty(t, s.Check())

	_, err := s.Book.AddRule("All", model.DimensionMunicipality, "delavan")
	require.NoError(t, err)

	found := s.Check()
	require.Len(t, found, 1)
	assert.Equal(t, "All", found[0].Name)
	require.Len(t, found[0].Warnings, 1)
	assert.Equal(t, []string{"Delavan"}, found[0].Warnings[0].Suggestions)
}
