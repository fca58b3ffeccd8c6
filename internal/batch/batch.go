// Package batch runs the digest transforms over lists of files, one file at a
// time, and reports per-file outcomes.
package batch

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/fileset"
	"github.com/pbaille/digest/internal/logging"
)

// ErrFailed is returned when a single targeted file could not be processed
var ErrFailed = errors.New("processing failed")

// Summary counts file outcomes of one run
type Summary struct {
	Scanned int
	Changed int
	Skipped int
	Failed  int
}

// Err returns an error when every target failed. Failures inside a larger
// batch are reported per file and do not fail the run.
func (s Summary) Err() error {
	if s.Failed > 0 && s.Failed == s.Scanned {
		return fmt.Errorf("%d of %d file(s): %w", s.Failed, s.Scanned, ErrFailed)
	}
	return nil
}

// Runner processes files sequentially, printing one status line per file to
// Out and diagnostics to Logger
type Runner struct {
	Out    io.Writer
	Logger *zap.Logger
	DryRun bool
}

// New creates a Runner
func New(out io.Writer, logger *zap.Logger, dryRun bool) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{Out: out, Logger: logging.OrNop(logger), DryRun: dryRun}
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

// read loads path, recording a skip for non-UTF-8 files and a failure for
// other errors. ok is false when the file must not be processed further.
func (r *Runner) read(path string, s *Summary) (string, bool) {
	content, err := fileset.Read(path)
	switch {
	case err == nil:
		return content, true
	case errors.Is(err, fileset.ErrNotUTF8):
		s.Skipped++
		r.printf("[skip] %s (encoding not utf-8)\n", path)
		r.Logger.Warn("Skipping file", zap.String("path", path), zap.Error(err))
	default:
		s.Failed++
		r.printf("[fail] %s (%v)\n", path, err)
		r.Logger.Error("Reading file failed", zap.String("path", path), zap.Error(err))
	}
	return "", false
}

// write stores content at path, recording a failure on error
func (r *Runner) write(path, content string, s *Summary) bool {
	if err := fileset.Write(path, content); err != nil {
		s.Failed++
		r.printf("[fail] %s (%v)\n", path, err)
		r.Logger.Error("Writing file failed", zap.String("path", path), zap.Error(err))
		return false
	}
	r.Logger.Debug("Wrote file", zap.String("path", path), zap.Int("bytes", len(content)))
	return true
}

func base(path string) string {
	return filepath.Base(path)
}
