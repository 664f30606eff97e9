package watchers

import (
	"time"

	"github.com/hoppxi/runa/internal/logger"
)

// ConfigReload adapts reload for a config change callback. Editors often
// write a file in several steps, so the calls are debounced.
func ConfigReload(delay time.Duration, reload func() error) func() {
	d := NewDebouncer(delay, func() {
		logger.Infow("config changed, reloading")
		if err := reload(); err != nil {
			logger.Warnw("reload finished with errors", "error", err)
		}
	})
	return d.Trigger
}
