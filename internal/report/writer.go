package report

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/engine"
	"github.com/Veraticus/comps/internal/storage"
)

// Writer renders results into files under Dir.
type Writer struct {
	renderer *Renderer
	logger   *slog.Logger
	dir      string
	format   Format
}

// NewWriter creates a writer for dir. An empty dir means the working directory.
func NewWriter(dir string, format Format, logger *slog.Logger) *Writer {
	if dir == "" {
		dir = "."
	}
	if format == "" {
		format = FormatCSV
	}
	return &Writer{
		renderer: NewRenderer(),
		logger:   common.LoggerOrDefault(logger),
		dir:      dir,
		format:   format,
	}
}

// Path returns where result would be written.
func (w *Writer) Path(result *engine.Result) string {
	return filepath.Join(w.dir, FileName(result.Report.Name, result.Quarter, result.Year, w.format))
}

// Write renders result and replaces its output file atomically, returning the path.
func (w *Writer) Write(result *engine.Result) (string, error) {
	path := w.Path(result)
	table := w.renderer.Render(result)

	err := storage.WriteFileAtomic(path, func(out io.Writer) error {
		return Encode(out, table, w.format)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write report %q: %w", result.Report.Name, err)
	}

	w.logger.Debug("wrote report", "report", result.Report.Name, "path", path, "rows", len(table))
	return path, nil
}
