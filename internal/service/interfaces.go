// Package service coordinates a working session: loaded records, the
// report book and output generation.
package service

import (
	"context"
	"io"

	"github.com/Veraticus/comps/internal/engine"
	"github.com/Veraticus/comps/internal/model"
	"github.com/Veraticus/comps/internal/pattern"
	"github.com/Veraticus/comps/internal/storage"
)

// RecordStore defines the contract for the in-memory record layer.
type RecordStore interface {
	engine.RecordSource
	pattern.ValueIndex

	IngestFile(ctx context.Context, r io.Reader, m model.ColumnMapping) (*storage.IngestSummary, error)
	Locations() []string
	Keys() []string
	Len() int
}

// ReportWriter persists a rendered result and returns where it went.
type ReportWriter interface {
	Write(result *engine.Result) (string, error)
}

// Compile-time interface checks.
var _ RecordStore = (*storage.RecordStore)(nil)
