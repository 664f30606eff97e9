package watchers

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { calls.Add(1) })
	for range 5 {
		d.Trigger()
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerStop(t *testing.T) {
	var calls atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { calls.Add(1) })
	d.Trigger()
	d.Stop()
	d.Trigger()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestConfigReloadCallsReload(t *testing.T) {
	done := make(chan struct{})
	onChange := ConfigReload(10*time.Millisecond, func() error {
		close(done)
		return errors.New("partial")
	})
	onChange()
	onChange()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reload not called")
	}
}

type clipSource struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (c *clipSource) set(text string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texts = append(c.texts, text)
	c.err = err
}

func (c *clipSource) read() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	if len(c.texts) == 0 {
		return "", nil
	}
	return c.texts[len(c.texts)-1], nil
}

func TestPollClipboardPushesChanges(t *testing.T) {
	src := &clipSource{}
	src.set("first", nil)

	var mu sync.Mutex
	var pushed []string
	push := func(text string) bool {
		mu.Lock()
		defer mu.Unlock()
		pushed = append(pushed, text)
		return true
	}
	got := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), pushed...)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		pollClipboard(5*time.Millisecond, src.read, push)(stop)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(got()) == 1 }, time.Second, 5*time.Millisecond)
	src.set("second", nil)
	require.Eventually(t, func() bool { return len(got()) == 2 }, time.Second, 5*time.Millisecond)

	src.set("", errors.New("no owner"))
	time.Sleep(20 * time.Millisecond)
	close(stop)
	<-done

	assert.Equal(t, []string{"first", "second"}, got())
}

func TestAppDirsTriggersRebuild(t *testing.T) {
	dir := t.TempDir()
	rebuilt := make(chan struct{}, 1)

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		AppDirs([]string{dir, filepath.Join(dir, "missing")}, 20*time.Millisecond, func() {
			select {
			case rebuilt <- struct{}{}:
			default:
			}
		})(stop)
		close(done)
	}()

	// give the watcher time to register the directory
	require.Eventually(t, func() bool {
		path := filepath.Join(dir, "app.desktop")
		_ = os.WriteFile(path, []byte("[Desktop Entry]\n"), 0o644)
		select {
		case <-rebuilt:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	close(stop)
	<-done
}

func TestApplicationDirs(t *testing.T) {
	assert.Equal(t, []string{"/usr/share/applications", "/opt/applications"},
		ApplicationDirs([]string{"/usr/share", "/opt"}))
}

func TestExistingDirs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Equal(t, []string{dir}, ExistingDirs([]string{dir, file, filepath.Join(dir, "nope")}))
}
