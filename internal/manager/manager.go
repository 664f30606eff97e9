package manager

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/hoppxi/runa/internal/executor"
	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/pkg/search"
)

var ErrAlreadyRunning = errors.New("daemon already running")

const (
	ipcTimeout   = 2 * time.Second
	replyTimeout = 30 * time.Second
)

type AppManager struct {
	mu       sync.Mutex
	stops    []chan struct{}
	wg       sync.WaitGroup
	engine   *Engine
	listener net.Listener
	lock     *flock.Flock
	exit     func(code int)
}

var Manage = &AppManager{exit: os.Exit}

func runtimeDir() string {
	var baseDir string
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		baseDir = dir
	} else {
		baseDir = os.TempDir()
	}

	dir := filepath.Join(baseDir, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return os.TempDir()
	}
	return dir
}

func getSocketPath() string {
	return filepath.Join(runtimeDir(), "socket.sock")
}

func getLockPath() string {
	return filepath.Join(runtimeDir(), "daemon.lock")
}

// Lock takes the single-instance lock. It fails with ErrAlreadyRunning
// when another daemon holds it.
func (m *AppManager) Lock() error {
	l := flock.New(getLockPath())
	locked, err := l.TryLock()
	if err != nil {
		return fmt.Errorf("cannot acquire daemon lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w (lock: %s)", ErrAlreadyRunning, l.Path())
	}
	m.mu.Lock()
	m.lock = l
	m.mu.Unlock()
	return nil
}

func (m *AppManager) SetEngine(e *Engine) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.engine = e
}

// NewEngine builds an engine whose builtins act on this manager and
// attaches it, so Reload and Quit reach the engine that triggered them.
func (m *AppManager) NewEngine(s Settings, version string) *Engine {
	e := NewEngine(s, version, m.Hooks())
	m.SetEngine(e)
	return e
}

func (m *AppManager) Engine() *Engine {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.engine
}

// Hooks wires the daemon-level builtins into the executor.
func (m *AppManager) Hooks() executor.Hooks {
	return executor.Hooks{
		Quit: func() {
			go m.shutdown()
		},
		Reload: func() {
			go func() {
				if err := m.Reload(context.Background()); err != nil {
					logger.Errorw("reload failed", "error", err)
				}
			}()
		},
		OpenPreferences: func() {
			if err := exec.Command("xdg-open", Config.Path()).Start(); err != nil {
				logger.Errorw("failed to open preferences", "path", Config.Path(), "error", err)
			}
		},
	}
}

// Reload re-reads the config file, applies it and rebuilds the catalog.
func (m *AppManager) Reload(ctx context.Context) error {
	e := m.Engine()
	if e == nil {
		return errors.New("engine not started")
	}
	if err := Config.Reload(); err != nil {
		return err
	}
	s, err := Config.Settings()
	if err != nil {
		return err
	}
	e.Apply(s)
	return e.Rebuild(ctx)
}

// StartIPCServer accepts connections until the listener is closed.
func (m *AppManager) StartIPCServer() error {
	socketPath := getSocketPath()
	_ = os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("error listening on socket: %w", err)
	}
	m.mu.Lock()
	m.listener = listener
	m.mu.Unlock()
	defer listener.Close()

	logger.Infow("IPC server listening", "socket", socketPath)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			continue
		}
		go m.handleConnection(conn)
	}
}

func (m *AppManager) handleConnection(conn net.Conn) {
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(ipcTimeout))

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return
	}

	reply, after := m.Handle(line)
	_ = conn.SetWriteDeadline(time.Now().Add(ipcTimeout))
	_, _ = conn.Write([]byte(reply))
	if after != nil {
		// Close first so the client does not wait on shutdown.
		_ = conn.Close()
		after()
	}
}

// Handle runs one IPC command line. after, when set, runs once the reply
// has been written.
func (m *AppManager) Handle(line string) (reply string, after func()) {
	command, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	command = strings.ToUpper(command)

	switch command {
	case "STATUS":
		return "OK: running", nil
	case "STOP":
		logger.Infow("received STOP via IPC, shutting down")
		return "OK: Shutting down.", m.shutdown
	}

	e := m.Engine()
	if e == nil {
		return "ERR: engine not started", nil
	}
	session := e.Session()

	switch command {
	case "RELOAD":
		if err := m.Reload(context.Background()); err != nil {
			logger.Warnw("reload finished with errors", "error", err)
			return "ERR: " + oneLine(err), nil
		}
		return fmt.Sprintf("OK: reloaded %d entries", e.Main().Len()), nil
	case "STATE":
		return viewReply(session.State())
	case "TOGGLE":
		return viewReply(session.Toggle())
	case "HIDE":
		return viewReply(session.Hide())
	case "SHOW":
		page := search.Main
		if arg != "" {
			p, ok := search.ParsePage(arg)
			if !ok {
				return "ERR: unknown page " + arg, nil
			}
			page = p
		}
		return viewReply(session.Show(page))
	case "CLIPBOARD":
		return viewReply(session.Show(search.ClipboardHistory))
	case "PAGE":
		p, ok := search.ParsePage(arg)
		if !ok {
			return "ERR: unknown page " + arg, nil
		}
		return viewReply(session.SwitchPage(p))
	case "QUERY":
		return viewReply(session.SetQuery(arg))
	case "KEY":
		k, ok := search.ParseKey(arg)
		if !ok {
			return "ERR: unknown key " + arg, nil
		}
		return viewReply(session.Move(k))
	case "ACTIVATE":
		_, st, err := e.Activate()
		if err != nil {
			return "ERR: " + oneLine(err), nil
		}
		return viewReply(st)
	default:
		return "ERR: unknown command", nil
	}
}

func viewReply(st search.State) (string, func()) {
	data, err := json.Marshal(st.View())
	if err != nil {
		return "ERR: " + err.Error(), nil
	}
	return string(data), nil
}

func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}

func (m *AppManager) shutdown() {
	m.StopAll()
	time.Sleep(200 * time.Millisecond)
	m.exit(0)
}

func (m *AppManager) StartWatcher(f func(stop <-chan struct{})) {
	stop := make(chan struct{})
	m.mu.Lock()
	m.stops = append(m.stops, stop)
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Errorw("watcher panic", "panic", r)
					}
				}()
				f(stop)
			}()

			select {
			case <-stop:
				return
			case <-time.After(2 * time.Second):
				logger.Infow("restarting watcher")
			}
		}
	}()
}

// StopAll stops the watchers, closes the socket and drops the lock.
func (m *AppManager) StopAll() {
	m.mu.Lock()
	stops := m.stops
	listener := m.listener
	lock := m.lock
	m.stops = nil
	m.listener = nil
	m.lock = nil
	m.mu.Unlock()

	for _, s := range stops {
		close(s)
	}
	m.wg.Wait()

	if listener != nil {
		_ = listener.Close()
		_ = os.Remove(getSocketPath())
	}
	if lock != nil {
		_ = lock.Unlock()
	}
}

func (m *AppManager) ConnectIPC() (net.Conn, error) {
	return net.DialTimeout("unix", getSocketPath(), 500*time.Millisecond)
}

// SendIPCCommand sends one command line and returns the whole reply.
func (m *AppManager) SendIPCCommand(cmd string) (string, error) {
	conn, err := m.ConnectIPC()
	if err != nil {
		return "", err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(replyTimeout))

	if _, err := conn.Write([]byte(cmd + "\n")); err != nil {
		return "", err
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
