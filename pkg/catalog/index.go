package catalog

import (
	"iter"
	"sort"
	"strings"
)

// Index is an immutable alias-sorted view over a set of entries. Build a new
// one with FromEntries whenever the catalog changes; never mutate it.
type Index struct {
	keys    []string
	entries []Entry
}

// FromEntries builds an index. When two entries share an alias the one that
// appears later in entries wins, so callers order input by ascending priority.
func FromEntries(entries []Entry) *Index {
	byAlias := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byAlias[e.Alias] = e
	}

	keys := make([]string, 0, len(byAlias))
	for k := range byAlias {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := &Index{
		keys:    keys,
		entries: make([]Entry, len(keys)),
	}
	for i, k := range keys {
		idx.entries[i] = byAlias[k]
	}
	return idx
}

// Empty returns an index with no entries.
func Empty() *Index {
	return &Index{}
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.keys)
}

func (idx *Index) Lookup(alias string) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	i := sort.SearchStrings(idx.keys, alias)
	if i < len(idx.keys) && idx.keys[i] == alias {
		return idx.entries[i], true
	}
	return Entry{}, false
}

// SearchPrefix yields the entries whose alias starts with prefix in ascending
// alias order. An empty prefix yields the whole index.
func (idx *Index) SearchPrefix(prefix string) iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if idx == nil {
			return
		}
		for i := sort.SearchStrings(idx.keys, prefix); i < len(idx.keys); i++ {
			if !strings.HasPrefix(idx.keys[i], prefix) {
				return
			}
			if !yield(idx.entries[i]) {
				return
			}
		}
	}
}

// Ranked returns the prefix matches with an exact alias match first, then
// the rest by shorter display name, then alias.
func (idx *Index) Ranked(prefix string) []Entry {
	var out []Entry
	for e := range idx.SearchPrefix(prefix) {
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ei, ej := out[i].Alias == prefix, out[j].Alias == prefix
		if ei != ej {
			return ei
		}
		if len(out[i].Name) != len(out[j].Name) {
			return len(out[i].Name) < len(out[j].Name)
		}
		return out[i].Alias < out[j].Alias
	})
	return out
}

// Collect drains a sequence into a slice.
func Collect(seq iter.Seq[Entry]) []Entry {
	var out []Entry
	for e := range seq {
		out = append(out, e)
	}
	return out
}
