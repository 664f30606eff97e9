package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hoppxi/runa/pkg/catalog"
)

// IndexDir is a directory searched for executables down to MaxDepth levels.
type IndexDir struct {
	Path     string
	MaxDepth int
}

// ParseIndexDir reads "path" or "path:depth". The depth defaults to 1.
func ParseIndexDir(s string) (IndexDir, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return IndexDir{}, fmt.Errorf("empty index dir")
	}
	dir := IndexDir{Path: s, MaxDepth: 1}
	if i := strings.LastIndex(s, ":"); i >= 0 {
		if n, err := strconv.Atoi(s[i+1:]); err == nil {
			if n < 0 {
				return IndexDir{}, fmt.Errorf("invalid depth in %q", s)
			}
			dir = IndexDir{Path: s[:i], MaxDepth: n}
		}
	}
	if dir.Path == "" {
		return IndexDir{}, fmt.Errorf("missing path in %q", s)
	}
	dir.Path = expandHome(dir.Path)
	return dir, nil
}

func (d IndexDir) String() string {
	return d.Path + ":" + strconv.Itoa(d.MaxDepth)
}

// Patterns decides which paths an index-dir scan keeps: a path matching an
// exclude pattern is dropped unless an include pattern matches it too.
type Patterns struct {
	Exclude []string
	Include []string
}

// Validate reports the first malformed glob.
func (p Patterns) Validate() error {
	for _, pat := range append(append([]string(nil), p.Exclude...), p.Include...) {
		if _, err := filepath.Match(pat, ""); err != nil {
			return fmt.Errorf("bad pattern %q: %w", pat, err)
		}
	}
	return nil
}

func (p Patterns) Keep(path string) bool {
	return !matchAny(p.Exclude, path) || matchAny(p.Include, path)
}

func matchAny(patterns []string, path string) bool {
	base := filepath.Base(path)
	for _, pat := range patterns {
		pat = expandHome(pat)
		if ok, _ := filepath.Match(pat, path); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
	}
	return false
}

// ScanDir indexes executables under dir. Depth 1 means direct children.
func ScanDir(dir IndexDir, patterns Patterns) ([]catalog.Entry, error) {
	if !exists(dir.Path) {
		return nil, fmt.Errorf("index dir %s: %w", dir.Path, fs.ErrNotExist)
	}
	root := filepath.Clean(dir.Path)
	rootDepth := strings.Count(root, string(filepath.Separator))

	var out []catalog.Entry
	err := filepath.WalkDir(root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		depth := strings.Count(path, string(filepath.Separator)) - rootDepth
		if de.IsDir() {
			if path != root && depth >= dir.MaxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if depth > dir.MaxDepth || !isExecutable(path) || !patterns.Keep(path) {
			return nil
		}
		name := displayName(filepath.Base(path))
		if name == "" {
			return nil
		}
		out = append(out, catalog.NewEntry(name, "Application", catalog.Launch{Path: path}))
		return nil
	})
	if err != nil {
		return out, fmt.Errorf("walk %s: %w", root, err)
	}
	return out, nil
}

func displayName(file string) string {
	ext := filepath.Ext(file)
	switch strings.ToLower(ext) {
	case ".appimage", ".sh", ".exe":
		return strings.TrimSuffix(file, ext)
	}
	return file
}
