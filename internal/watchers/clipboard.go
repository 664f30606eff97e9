package watchers

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/hoppxi/runa/internal/logger"
)

// Clipboard polls the system clipboard and hands every new text to push.
// The content present at start is recorded too.
func Clipboard(interval time.Duration, push func(text string) bool) func(stop <-chan struct{}) {
	poll := pollClipboard(interval, clipboard.ReadAll, push)
	return func(stop <-chan struct{}) {
		if clipboard.Unsupported {
			logger.Warnw("clipboard polling disabled: no clipboard utility found")
			<-stop
			return
		}
		poll(stop)
	}
}

func pollClipboard(interval time.Duration, read func() (string, error), push func(string) bool) func(stop <-chan struct{}) {
	if interval <= 0 {
		interval = time.Second
	}
	return func(stop <-chan struct{}) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := ""
		failing := false
		poll := func() {
			text, err := read()
			if err != nil {
				if !failing {
					logger.Debugw("clipboard read failed", "error", err)
				}
				failing = true
				return
			}
			failing = false
			if text == last {
				return
			}
			last = text
			if push(text) {
				logger.Debugw("clipboard item recorded", "length", len(text))
			}
		}

		poll()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				poll()
			}
		}
	}
}
