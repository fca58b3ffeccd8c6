package store

// MergeFresh concatenates the entries of every source per label, in source
// order. Duplicates across sources are kept; segments of a fresh merge are
// assumed clean.
func MergeFresh(sources ...*Collection) *Collection {
	out := New()
	for _, src := range sources {
		if src == nil {
			continue
		}
		for i, l := range src.labels {
			out.Append(l, src.entries[i]...)
		}
	}
	return out
}

// MergeIncremental appends the entries of sources onto a copy of base. An
// entry is skipped when its trimmed text is already stored under its label,
// which makes re-running the same merge a no-op. Labels new to base are added
// at the end in the order they are first encountered, once they receive an
// entry. base itself is not modified.
func MergeIncremental(base *Collection, sources ...*Collection) (*Collection, int) {
	out := New()
	if base != nil {
		out = base.Clone()
	}

	added := 0
	for _, src := range sources {
		if src == nil {
			continue
		}
		for i, l := range src.labels {
			for _, e := range src.entries[i] {
				if out.AppendUnique(l, e) {
					added++
				}
			}
		}
	}
	return out, added
}
