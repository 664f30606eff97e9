package catalog

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []Entry {
	return []Entry{
		NewEntry("Firefox", "Application", Launch{Path: "/usr/share/applications/firefox.desktop"}),
		NewEntry("Files", "Application", Launch{Path: "/usr/share/applications/nautilus.desktop"}),
		NewEntry("Foot", "Application", Launch{Path: "/usr/bin/foot"}),
		NewEntry("Calculator", "Application", Launch{Path: "/usr/bin/gnome-calculator"}),
		NewEntry("Quit Runa", "Utility", Builtin{Op: OpQuit}).WithAlias("quit"),
		NewEntry("Fire up htop", "Shell Command", ShellCommand{Command: "foot htop", Alias: "fire"}).WithAlias("fire"),
	}
}

func aliases(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Alias
	}
	return out
}

func TestSearchPrefixMatchesExactlyAndInOrder(t *testing.T) {
	entries := sampleEntries()
	idx := FromEntries(entries)

	for _, prefix := range []string{"", "f", "fi", "fir", "fire", "firefox", "q", "x", "firefoxx"} {
		got := Collect(idx.SearchPrefix(prefix))

		var want []string
		for _, e := range entries {
			if strings.HasPrefix(e.Alias, prefix) {
				want = append(want, e.Alias)
			}
		}
		sort.Strings(want)

		assert.Equal(t, want, aliases(got), "prefix %q", prefix)
		assert.True(t, sort.StringsAreSorted(aliases(got)), "prefix %q", prefix)
	}
}

func TestSearchPrefixEmptyIndex(t *testing.T) {
	assert.Empty(t, Collect(Empty().SearchPrefix("")))
	assert.Empty(t, Collect(Empty().SearchPrefix("a")))

	var nilIdx *Index
	assert.Empty(t, Collect(nilIdx.SearchPrefix("a")))
	assert.Equal(t, 0, nilIdx.Len())
}

func TestSearchPrefixStopsEarly(t *testing.T) {
	idx := FromEntries(sampleEntries())

	var seen int
	for range idx.SearchPrefix("f") {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestFromEntriesLastWriterWins(t *testing.T) {
	first := NewEntry("Terminal", "Application", Launch{Path: "/usr/bin/xterm"})
	second := NewEntry("Terminal", "Shell Command", ShellCommand{Command: "foot", Alias: "terminal"})

	idx := FromEntries([]Entry{first, second})
	require.Equal(t, 1, idx.Len())

	got, ok := idx.Lookup("terminal")
	require.True(t, ok)
	assert.Equal(t, "Shell Command", got.Description)
	assert.Equal(t, ShellCommand{Command: "foot", Alias: "terminal"}, got.Action)
}

func TestLookupMissing(t *testing.T) {
	idx := FromEntries(sampleEntries())
	_, ok := idx.Lookup("fir")
	assert.False(t, ok)
}

func TestRankedPutsExactAliasFirst(t *testing.T) {
	idx := FromEntries([]Entry{
		NewEntry("Code", "Application", Launch{Path: "/usr/bin/code"}),
		NewEntry("Code - OSS", "Application", Launch{Path: "/usr/bin/code-oss"}).WithAlias("code-oss"),
		NewEntry("Codium", "Application", Launch{Path: "/usr/bin/codium"}),
		NewEntry("Cod", "Application", Launch{Path: "/usr/bin/cod"}),
	})

	got := idx.Ranked("code")
	assert.Equal(t, []string{"code", "code-oss"}, aliases(got))

	got = idx.Ranked("cod")
	assert.Equal(t, []string{"cod", "code", "codium", "code-oss"}, aliases(got))
}

func TestWithAliasLowercases(t *testing.T) {
	e := NewEntry("Emoji Picker", "Utility", Builtin{Op: OpSwitchToEmoji}).WithAlias("EMOJI")
	assert.Equal(t, "emoji", e.Alias)
	assert.Equal(t, "Emoji Picker", e.Name)
}

func TestBuiltinOpString(t *testing.T) {
	assert.Equal(t, "quit", OpQuit.String())
	assert.Equal(t, "reload", OpReload.String())
	assert.Equal(t, "unknown", BuiltinOp(42).String())
}
