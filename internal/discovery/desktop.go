package discovery

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/hoppxi/runa/pkg/catalog"
)

// Field codes of the Exec key (%f, %U, ...) have no meaning for a launch
// without files, so they are dropped.
var placeholderRe = regexp.MustCompile(`%[fFuUdDnNickvm]`)

// DesktopEntry is the [Desktop Entry] group of a .desktop file.
type DesktopEntry struct {
	Path      string
	Type      string
	Name      string
	Comment   string
	Exec      string
	Icon      string
	Terminal  bool
	NoDisplay bool
	Hidden    bool
}

// Command returns Exec with field codes removed.
func (d DesktopEntry) Command() string {
	return strings.Join(strings.Fields(placeholderRe.ReplaceAllString(d.Exec, "")), " ")
}

// DefaultDataDirs lists the XDG data dirs to search for applications,
// user dir first, plus the Nix profile locations.
func DefaultDataDirs() []string {
	xdg := os.Getenv("XDG_DATA_DIRS")
	if xdg == "" {
		xdg = "/usr/local/share:/usr/share"
	}
	home := homeDir()
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	parts := append([]string{dataHome}, strings.Split(xdg, ":")...)
	parts = append(parts, filepath.Join(home, ".nix-profile", "share"))
	if exists("/run/current-system/sw/share") {
		parts = append(parts, "/run/current-system/sw/share")
	}

	seen := map[string]bool{}
	var dirs []string
	for _, p := range parts {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		dirs = append(dirs, p)
	}
	return dirs
}

// collectDesktopFiles walks <dir>/applications of every data dir, one
// goroutine per dir.
func collectDesktopFiles(ctx context.Context, dataDirs []string) []string {
	outCh := make(chan string, 512)
	var wg sync.WaitGroup
	for _, d := range dataDirs {
		wg.Add(1)
		go func(ad string) {
			defer wg.Done()
			filepath.WalkDir(ad, func(path string, de fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if ctx.Err() != nil {
					return fs.SkipAll
				}
				if de.IsDir() {
					return nil
				}
				if strings.HasSuffix(path, ".desktop") {
					outCh <- path
				}
				return nil
			})
		}(filepath.Join(d, "applications"))
	}

	go func() {
		wg.Wait()
		close(outCh)
	}()

	uniq := map[string]bool{}
	var out []string
	for p := range outCh {
		if !uniq[p] {
			uniq[p] = true
			out = append(out, p)
		}
	}
	return out
}

// ReadDesktopEntry parses the [Desktop Entry] group of path. Localized keys
// (Name[de]=...) are ignored.
func ReadDesktopEntry(path string) (DesktopEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DesktopEntry{}, fmt.Errorf("read desktop file: %w", err)
	}

	fields := map[string]string{}
	in := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if line == "[Desktop Entry]" {
			in = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			in = false
			continue
		}
		if !in {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return DesktopEntry{}, fmt.Errorf("scan desktop file: %w", err)
	}

	return DesktopEntry{
		Path:      path,
		Type:      fields["Type"],
		Name:      fields["Name"],
		Comment:   fields["Comment"],
		Exec:      fields["Exec"],
		Icon:      fields["Icon"],
		Terminal:  strings.EqualFold(fields["Terminal"], "true"),
		NoDisplay: strings.EqualFold(fields["NoDisplay"], "true"),
		Hidden:    strings.EqualFold(fields["Hidden"], "true"),
	}, nil
}

// DesktopApps turns the visible applications under dataDirs into entries.
// Entries that share a display name and command are reported once.
func DesktopApps(ctx context.Context, dataDirs []string) []catalog.Entry {
	var out []catalog.Entry
	seen := map[string]bool{}
	for _, p := range collectDesktopFiles(ctx, dataDirs) {
		d, err := ReadDesktopEntry(p)
		if err != nil {
			continue
		}
		if d.Type != "Application" || d.NoDisplay || d.Hidden {
			continue
		}

		name := d.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(p), ".desktop")
		}
		key := strings.ToLower(d.Command() + "|" + name)
		if seen[key] {
			continue
		}
		seen[key] = true

		desc := d.Comment
		if desc == "" {
			desc = "Application"
		}
		out = append(out, catalog.NewEntry(name, desc, catalog.Launch{Path: p}).WithIcon(d.Icon))
	}
	return out
}
