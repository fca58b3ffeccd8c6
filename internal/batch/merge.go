package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/fileset"
	"github.com/pbaille/digest/internal/parser"
	"github.com/pbaille/digest/internal/render"
	"github.com/pbaille/digest/internal/store"
)

// removeFile deletes consumed segments
var removeFile = os.Remove

// MergeOptions controls how segment groups are merged
type MergeOptions struct {
	OutputDir     string
	Suffix        string
	Overwrite     bool
	DeleteSources bool
	// Incremental appends to an existing merged file, skipping entries it
	// already holds. Fresh merges write the concatenation of the segments.
	Incremental bool
	// Allowed restricts the categories read in incremental mode
	Allowed []string
	Layout  render.CountLayout
}

// Merge combines each group of same-date segment files into one merged file.
// The summary counts groups, not segment files.
func (r *Runner) Merge(groups []fileset.Group, opts MergeOptions) Summary {
	var s Summary
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
			r.Logger.Error("Creating output dir failed", zap.String("dir", opts.OutputDir), zap.Error(err))
			s.Scanned, s.Failed = len(groups), len(groups)
			r.printf("[fail] %s (%v)\n", opts.OutputDir, err)
			return s
		}
	}

	for _, g := range groups {
		s.Scanned++
		logger := r.Logger.With(zap.String("date", g.Date))

		dir := opts.OutputDir
		if dir == "" && len(g.Paths) > 0 {
			dir = filepath.Dir(g.Paths[0])
		}
		output := filepath.Join(dir, fileset.MergedName(g.Date, opts.Suffix))

		var allowed []string
		if opts.Incremental {
			allowed = opts.Allowed
		}
		segments, used := r.loadSegments(g, allowed, logger)
		fresh := store.MergeFresh(segments...)
		if fresh.Len() == 0 {
			s.Skipped++
			r.printf("[%s] Skipped: no categories detected.\n", g.Date)
			continue
		}

		var (
			merged *store.Collection
			status string
		)
		if opts.Incremental {
			baseCol := store.New()
			if fileset.Exists(output) {
				content, err := fileset.Read(output)
				if err != nil {
					s.Failed++
					r.printf("[%s] Failed: %v\n", g.Date, err)
					logger.Error("Reading merged file failed", zap.String("path", output), zap.Error(err))
					continue
				}
				baseCol = store.FromDocument(parser.Split(content), allowed...)
			}
			var added int
			merged, added = store.MergeIncremental(baseCol, fresh)
			if merged.Len() == 0 {
				s.Skipped++
				r.printf("[%s] Skipped: no content to write.\n", g.Date)
				continue
			}
			status = fmt.Sprintf("Updated %s (existing categories: %d, added parts: %d, new entries: %d).",
				base(output), baseCol.Len(), len(used), added)
		} else {
			if fileset.Exists(output) && !opts.Overwrite {
				s.Skipped++
				r.printf("[%s] Skipped: %s already exists. Use --overwrite to replace.\n", g.Date, base(output))
				continue
			}
			merged = fresh
			status = fmt.Sprintf("Wrote %s (%s).", base(output), countList(merged))
		}

		if !r.write(output, render.Counted(merged, opts.Layout), &s) {
			continue
		}
		s.Changed++
		r.printf("[%s] %s\n", g.Date, status)
		logger.Info("Merged segments",
			zap.String("output", output),
			zap.Int("segments", len(used)),
			zap.Int("entries", merged.Total()))

		if opts.DeleteSources {
			r.deleteSources(g.Date, used, logger)
		}
	}
	return s
}

// loadSegments parses the segment files of g. Files that cannot be read are
// reported and left out, and are never deleted.
func (r *Runner) loadSegments(g fileset.Group, allowed []string, logger *zap.Logger) ([]*store.Collection, []string) {
	var (
		cols []*store.Collection
		used []string
	)
	for _, path := range g.Paths {
		content, err := fileset.Read(path)
		if err != nil {
			r.printf("[%s] Warning: skipped %s: %v\n", g.Date, base(path), err)
			logger.Warn("Skipping segment", zap.String("path", path), zap.Error(err))
			continue
		}
		doc := parser.Split(content)
		if len(doc.Sections) == 0 {
			logger.Warn("Segment has no categories", zap.String("path", path))
		}
		cols = append(cols, store.FromDocument(doc, allowed...))
		used = append(used, path)
	}
	return cols, used
}

// deleteSources removes consumed segment files. Failures are warnings.
func (r *Runner) deleteSources(date string, paths []string, logger *zap.Logger) {
	for _, p := range paths {
		if err := removeFile(p); err != nil {
			r.printf("[%s] Warning: failed to delete %s: %v\n", date, base(p), err)
			logger.Warn("Deleting segment failed", zap.String("path", p), zap.Error(err))
			continue
		}
		logger.Debug("Deleted segment", zap.String("path", p))
	}
}

func countList(c *store.Collection) string {
	parts := make([]string, 0, c.Len())
	for _, cc := range c.Counts() {
		parts = append(parts, fmt.Sprintf("%s=%d", cc.Category, cc.Count))
	}
	return strings.Join(parts, ", ")
}
