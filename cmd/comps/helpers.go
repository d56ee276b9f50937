package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/comps/internal/cli"
	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/config"
	"github.com/Veraticus/comps/internal/report"
	"github.com/Veraticus/comps/internal/service"
	"github.com/Veraticus/comps/internal/storage"
	"github.com/spf13/viper"
)

// loadConfig decodes and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// newSession builds a session for cfg. writer may be nil for commands that
// never generate.
func newSession(cfg *config.Config, writer service.ReportWriter) *service.Session {
	logger := slog.Default()
	store := storage.NewRecordStore(
		storage.WithDelimiter(cfg.DelimiterRune()),
		storage.WithLogger(logger),
	)

	return service.NewSession(service.Options{
		Store:   store,
		Writer:  writer,
		Logger:  logger,
		Company: cfg.Company,
		Columns: cfg.Columns,
	})
}

// newWriter builds the report writer, letting flag values override the config.
func newWriter(cfg *config.Config, dir, format string) (*report.Writer, error) {
	if dir == "" {
		dir = cfg.OutputDir()
	}
	if format == "" {
		format = cfg.Output.Format
	}

	f, err := report.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return report.NewWriter(config.ExpandPath(dir), f, slog.Default()), nil
}

func dataPath() (string, error) {
	path := viper.GetString("data")
	if path == "" {
		return "", common.NewUserError("no data file given; pass --data <export.csv> or set COMPS_DATA", common.ErrMissingConfig)
	}
	return config.ExpandPath(path), nil
}

func rulesPath() (string, error) {
	path := viper.GetString("rules")
	if path == "" {
		return "", common.NewUserError("no rule file given; pass --rules <reports.rule> or set COMPS_RULES", common.ErrMissingConfig)
	}
	return config.ExpandPath(path), nil
}

// loadRules reads the rule file into the session. When allowMissing is set a
// file that does not exist yet leaves the book empty.
func loadRules(sess *service.Session, allowMissing bool) (string, error) {
	path, err := rulesPath()
	if err != nil {
		return "", err
	}

	if err := sess.LoadRules(path); err != nil {
		if allowMissing && errors.Is(err, common.ErrMissingFile) {
			slog.Debug("rule file does not exist yet", "path", path)
			return path, nil
		}
		return "", err
	}
	return path, nil
}

// saveRules writes the book back and tells the user where it went.
func saveRules(w io.Writer, sess *service.Session, path string) error {
	written, err := sess.SaveRules(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, cli.FormatSuccess("Saved "+written)) //nolint:forbidigo // User-facing output
	return nil
}

// loadRecords ingests the data file, showing a progress bar when asked.
func loadRecords(ctx context.Context, sess *service.Session, progress bool) (*storage.IngestSummary, error) {
	path, err := dataPath()
	if err != nil {
		return nil, err
	}

	var wrap func(io.Reader, int64) io.Reader
	if progress {
		prompter := cli.NewPrompter(os.Stdin, os.Stderr)
		wrap = func(r io.Reader, size int64) io.Reader {
			return prompter.ProgressReader(r, size, "Reading "+path)
		}
	}

	summary, err := sess.LoadRecordFile(ctx, path, wrap)
	if err != nil {
		return nil, err
	}

	if n := len(summary.Errors); n > 0 {
		fmt.Fprintln(os.Stderr, cli.FormatWarning( //nolint:forbidigo // User-facing output
			fmt.Sprintf("Skipped %d of %d lines (run with --log-level debug for details)", n, summary.Lines)))
	}
	return summary, nil
}
