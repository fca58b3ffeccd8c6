package batch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pbaille/digest/internal/fileset"
	"github.com/pbaille/digest/internal/importance"
	"github.com/pbaille/digest/internal/parser"
	"github.com/pbaille/digest/internal/render"
	"github.com/pbaille/digest/internal/reorder"
	"github.com/pbaille/digest/internal/store"
)

// Reorder regroups the entries of input by category and writes the result to
// output, or back to input when output is empty. A non-UTF-8 input is
// skipped like in the other batch commands.
func (r *Runner) Reorder(input, output string, engine *reorder.Engine) error {
	content, err := fileset.Read(input)
	if errors.Is(err, fileset.ErrNotUTF8) {
		r.printf("[skip] %s (encoding not utf-8)\n", input)
		r.Logger.Warn("Skipping file", zap.String("path", input), zap.Error(err))
		return nil
	}
	if err != nil {
		return err
	}
	doc, err := parser.Parse(content)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	reordered, results := engine.Document(doc)
	for _, res := range results {
		r.printf("%s -> %s\n", res.Section.Heading, reorder.Breakdown(res.Counts))
		r.Logger.Debug("Reordered section",
			zap.String("heading", res.Section.Heading),
			zap.Bool("verbatim", res.Verbatim),
			zap.Int("entries", len(res.Section.Entries)))
	}

	if output == "" {
		output = input
	}
	if r.DryRun {
		r.printf("Would write reordered content to: %s\n", output)
		return nil
	}
	if err := fileset.Write(output, render.Document(reordered)); err != nil {
		return err
	}
	r.printf("Wrote reordered content to: %s\n", output)
	return nil
}

// Sort orders the entries of every category in each file by importance,
// highest first. With backup set, each file is copied to its .bak before it
// is rewritten.
func (r *Runner) Sort(files []string, layout render.CountLayout, backup bool) Summary {
	var s Summary
	for _, path := range files {
		s.Scanned++
		r.printf("%s:\n", base(path))
		content, ok := r.read(path, &s)
		if !ok {
			continue
		}

		doc, err := parser.Parse(content)
		if err != nil {
			s.Failed++
			r.printf("  No categories found in %s\n", base(path))
			r.Logger.Error("Parsing file failed", zap.String("path", path), zap.Error(err))
			continue
		}
		col := store.FromDocument(doc)
		if col.Total() == 0 {
			s.Skipped++
			r.printf("  No entries found in %s\n", base(path))
			continue
		}

		sorted := importance.SortCollection(col)
		out := render.CountedDocument(doc.Header, sorted, layout)
		if out == content {
			r.printf("  Already sorted (%d entries)\n", sorted.Total())
			continue
		}
		if r.DryRun {
			s.Changed++
			r.printf("  Would sort %d entries\n", sorted.Total())
			continue
		}

		if backup {
			bak, err := fileset.Backup(path)
			if err != nil {
				s.Failed++
				r.printf("  Backup failed: %v\n", err)
				r.Logger.Error("Backup failed", zap.String("path", path), zap.Error(err))
				continue
			}
			r.printf("  Backup created: %s\n", base(bak))
		}
		if !r.write(path, out, &s) {
			continue
		}
		s.Changed++

		for _, label := range sorted.Labels() {
			entries := sorted.Entries(label)
			if len(entries) == 0 {
				continue
			}
			hi, lo := importance.Range(entries)
			r.printf("  ✓ %s: sorted %d entries: %d → %d\n", label, len(entries), hi, lo)
		}
	}
	return s
}

// Restore copies the backup of path back over it. A missing backup is
// reported and is not an error.
func (r *Runner) Restore(path string) error {
	err := fileset.Restore(path)
	switch {
	case err == nil:
		r.printf("Restored %s from %s\n", base(path), base(fileset.BackupPath(path)))
		return nil
	case errors.Is(err, fileset.ErrNoBackup):
		r.printf("No backup found for %s\n", base(path))
		r.Logger.Warn("Restore skipped", zap.String("path", path), zap.Error(err))
		return nil
	default:
		return err
	}
}
