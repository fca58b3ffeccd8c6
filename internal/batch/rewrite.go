package batch

import (
	"github.com/pbaille/digest/internal/cleanup"
	"github.com/pbaille/digest/internal/numbering"
)

// Number adds Chinese numbering to the titles of every file. It returns the
// summary and the number of titles that gained a number.
func (r *Runner) Number(files []string, opts numbering.Options) (Summary, int) {
	var (
		s     Summary
		total int
	)
	for _, path := range files {
		s.Scanned++
		content, ok := r.read(path, &s)
		if !ok {
			continue
		}

		out, added, changed := numbering.Text(content, opts)
		if !changed {
			r.printf("[ok]   %s (no change)\n", path)
			continue
		}
		if r.DryRun {
			s.Changed++
			total += added
			r.printf("[dry]  %s (would add numbers to %d item(s))\n", path, added)
			continue
		}
		if !r.write(path, out, &s) {
			continue
		}
		s.Changed++
		total += added
		r.printf("[edit] %s (added numbers to %d item(s))\n", path, added)
	}
	return s, total
}

// Replace applies the cleaner to every file
func (r *Runner) Replace(files []string, c *cleanup.Cleaner) Summary {
	var s Summary
	for _, path := range files {
		s.Scanned++
		content, ok := r.read(path, &s)
		if !ok {
			continue
		}

		out, changed := c.Apply(content)
		if !changed {
			r.printf("[ok]   %s (no change)\n", path)
			continue
		}
		if r.DryRun {
			s.Changed++
			r.printf("[dry]  %s (would update)\n", path)
			continue
		}
		if !r.write(path, out, &s) {
			continue
		}
		s.Changed++
		r.printf("[edit] %s (updated)\n", path)
	}
	return s
}
