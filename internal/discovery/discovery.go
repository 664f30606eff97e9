// Package discovery finds what the launcher can launch: desktop entries,
// executables in configured directories and on $PATH, user shell
// shortcuts, and the launcher's own commands.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/pkg/catalog"
)

type Options struct {
	// DataDirs are searched for applications/*.desktop. Nil means
	// DefaultDataDirs; an empty non-nil slice disables the scan.
	DataDirs []string
	// BinDirs are scanned when PathBins is set. Nil means DefaultBinDirs.
	BinDirs  []string
	PathBins bool

	IndexDirs []string
	Patterns  Patterns

	Shells  []Shell
	Version string
}

type class int

const (
	classApp class = iota
	classShell
	classBuiltin
)

type sourceResult struct {
	class   class
	entries []catalog.Entry
	err     error
}

// Build collects the main catalog. Sources run concurrently and a failing
// source only costs its own entries; its error is returned next to the
// rest. The result is ordered for catalog.FromEntries so that built-ins
// beat shell shortcuts, which beat discovered apps, when aliases collide.
func Build(ctx context.Context, opts Options) ([]catalog.Entry, []error) {
	start := time.Now()

	type source struct {
		name  string
		class class
		run   func() ([]catalog.Entry, error)
	}

	dataDirs := opts.DataDirs
	if dataDirs == nil {
		dataDirs = DefaultDataDirs()
	}
	sources := []source{
		{"desktop", classApp, func() ([]catalog.Entry, error) { return DesktopApps(ctx, dataDirs), nil }},
		{"shells", classShell, func() ([]catalog.Entry, error) { return Shells(opts.Shells), nil }},
		{"builtins", classBuiltin, func() ([]catalog.Entry, error) { return Builtins(opts.Version), nil }},
	}

	if opts.PathBins {
		binDirs := opts.BinDirs
		if binDirs == nil {
			binDirs = DefaultBinDirs()
		}
		sources = append(sources, source{"bins", classApp, func() ([]catalog.Entry, error) { return Binaries(binDirs), nil }})
	}

	var errs []error
	if err := opts.Patterns.Validate(); err != nil {
		errs = append(errs, err)
	} else {
		for _, raw := range opts.IndexDirs {
			dir, err := ParseIndexDir(raw)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			sources = append(sources, source{"dir " + dir.String(), classApp, func() ([]catalog.Entry, error) {
				return ScanDir(dir, opts.Patterns)
			}})
		}
	}

	results := make([]sourceResult, len(sources))
	var wg sync.WaitGroup
	for i, s := range sources {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = sourceResult{class: s.class, err: fmt.Errorf("%s: panic: %v", s.name, r)}
				}
			}()
			entries, err := s.run()
			if err != nil {
				err = fmt.Errorf("%s: %w", s.name, err)
			}
			results[i] = sourceResult{class: s.class, entries: entries, err: err}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		errs = append(errs, fmt.Errorf("discovery interrupted: %w", err))
	}

	var all []ranked
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
		}
		for _, e := range r.entries {
			all = append(all, ranked{class: r.class, entry: e})
		}
	}

	logger.Debugw("catalog discovered",
		"entries", len(all),
		"sources", len(sources),
		"errors", len(errs),
		"took", time.Since(start))

	return prioritize(all), errs
}

type ranked struct {
	class class
	entry catalog.Entry
}

// prioritize orders entries so the preferred one for an alias is inserted
// last: lower classes first, and within a class shorter names first.
func prioritize(all []ranked) []catalog.Entry {
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].class != all[j].class {
			return all[i].class < all[j].class
		}
		li, lj := len(all[i].entry.Name), len(all[j].entry.Name)
		if li != lj {
			return li < lj
		}
		return all[i].entry.Name < all[j].entry.Name
	})
	out := make([]catalog.Entry, len(all))
	for i, r := range all {
		out[i] = r.entry
	}
	return out
}
