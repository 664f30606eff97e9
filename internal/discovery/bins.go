package discovery

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hoppxi/runa/pkg/catalog"
)

// DefaultBinDirs is $PATH plus the Nix profile bins.
func DefaultBinDirs() []string {
	paths := filepath.SplitList(os.Getenv("PATH"))
	if home := homeDir(); home != "" {
		paths = append(paths, filepath.Join(home, ".nix-profile", "bin"))
	}
	return append(paths, "/run/current-system/sw/bin")
}

// Binaries lists the executables found directly inside dirs. The first
// directory providing a name wins, as it would on $PATH.
func Binaries(dirs []string) []catalog.Entry {
	seen := map[string]bool{}
	var out []catalog.Entry

	for _, p := range dirs {
		if p == "" {
			continue
		}
		ents, err := os.ReadDir(p)
		if err != nil {
			continue
		}
		for _, e := range ents {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if seen[name] || strings.HasPrefix(name, ".") {
				continue
			}
			full := filepath.Join(p, name)
			if !isExecutable(full) {
				continue
			}
			seen[name] = true
			out = append(out, catalog.NewEntry(name, "Binary", catalog.Launch{Path: full}))
		}
	}
	return out
}
