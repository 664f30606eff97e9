package watchers

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hoppxi/runa/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// AppDirs returns a watcher that calls rebuild after files appear, change
// or disappear in dirs. Bursts (a package install touching dozens of
// .desktop files) collapse into one call. Directories that do not exist
// are skipped.
func AppDirs(dirs []string, debounce time.Duration, rebuild func()) func(stop <-chan struct{}) {
	return func(stop <-chan struct{}) {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			logger.Errorw("app dir watcher unavailable", "error", err)
			<-stop
			return
		}
		defer watcher.Close()

		watched := 0
		for _, dir := range dirs {
			if err := watcher.Add(dir); err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					logger.Warnw("cannot watch directory", "dir", dir, "error", err)
				}
				continue
			}
			watched++
		}
		logger.Debugw("watching app dirs", "count", watched)

		d := NewDebouncer(debounce, rebuild)
		defer d.Stop()

		for {
			select {
			case <-stop:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if relevant(event) {
					d.Trigger()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnw("app dir watcher error", "error", err)
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return true
}

// ApplicationDirs maps XDG data dirs to their applications/ subdirectory.
func ApplicationDirs(dataDirs []string) []string {
	out := make([]string, 0, len(dataDirs))
	for _, d := range dataDirs {
		out = append(out, filepath.Join(d, "applications"))
	}
	return out
}

// ExistingDirs drops paths that are not directories.
func ExistingDirs(dirs []string) []string {
	var out []string
	for _, d := range dirs {
		if fi, err := os.Stat(d); err == nil && fi.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
