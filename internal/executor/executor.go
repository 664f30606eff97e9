// Package executor carries out the actions attached to catalog entries.
package executor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/hoppxi/runa/internal/discovery"
	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/search"
	"github.com/kballard/go-shellquote"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrEmptyCommand  = errors.New("empty command")
	ErrNoHook        = errors.New("builtin has no handler")
)

// Hooks are the builtins that reach outside the executor.
type Hooks struct {
	Quit            func()
	Reload          func()
	OpenPreferences func()
}

type Options struct {
	SearchURL string
	// Notify sends a desktop notification after a copy.
	Notify bool
	Hooks  Hooks
}

type Executor struct {
	mu   sync.RWMutex
	opts Options

	spawn  func(argv []string) error
	copy   func(text string) error
	notify func(summary, body string) error
}

func New(opts Options) *Executor {
	return &Executor{
		opts:   opts,
		spawn:  spawnDetached,
		copy:   clipboard.WriteAll,
		notify: Notify,
	}
}

// Configure replaces the options that follow the config file. Hooks are
// kept.
func (e *Executor) Configure(searchURL string, notify bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opts.SearchURL = searchURL
	e.opts.Notify = notify
}

func (e *Executor) options() Options {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.opts
}

// Execute runs action. rawQuery is the text that was typed when the entry
// was activated; shell shortcuts pass what follows their alias on.
func (e *Executor) Execute(action catalog.Action, rawQuery string) error {
	logger.Debugw("executing action", "kind", kindOf(action), "query", rawQuery)

	switch a := action.(type) {
	case catalog.Launch:
		argv, err := LaunchArgs(a.Path)
		if err != nil {
			return err
		}
		return e.spawn(argv)
	case catalog.ShellCommand:
		return e.spawn(ShellArgs(a, rawQuery))
	case catalog.OpenWebsite:
		return e.spawn(OpenArgs(search.WebsiteURL(a.URL)))
	case catalog.WebSearch:
		return e.spawn(OpenArgs(search.SearchURL(e.options().SearchURL, a.Query)))
	case catalog.CopyText:
		return e.copyText(a.Text)
	case catalog.Builtin:
		return e.builtin(a.Op)
	case catalog.DisplayOnly:
		return nil
	case nil:
		return fmt.Errorf("%w: nil", ErrUnknownAction)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func (e *Executor) copyText(text string) error {
	if err := e.copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	if e.options().Notify {
		if err := e.notify("Copied to clipboard", text); err != nil {
			logger.Warnw("notification failed", "error", err)
		}
	}
	return nil
}

func (e *Executor) builtin(op catalog.BuiltinOp) error {
	hooks := e.options().Hooks
	var hook func()
	switch op {
	case catalog.OpQuit:
		hook = hooks.Quit
	case catalog.OpReload:
		hook = hooks.Reload
	case catalog.OpOpenPreferences:
		hook = hooks.OpenPreferences
	case catalog.OpSwitchToEmoji, catalog.OpSwitchToClipboard:
		// page switches are applied by the session
		return nil
	}
	if hook == nil {
		return fmt.Errorf("%w: %s", ErrNoHook, op)
	}
	hook()
	return nil
}

// LaunchArgs turns an app path into an argv. Desktop files are read for
// their Exec line; anything else is run as is.
func LaunchArgs(path string) ([]string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".desktop") {
		return []string{path}, nil
	}

	entry, err := discovery.ReadDesktopEntry(path)
	if err != nil {
		return nil, err
	}
	argv, err := shellquote.Split(entry.Command())
	if err != nil {
		return nil, fmt.Errorf("parse Exec of %s: %w", path, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyCommand)
	}
	if entry.Terminal {
		argv = append([]string{terminal(), "-e"}, argv...)
	}
	return argv, nil
}

// ShellArgs builds `sh -c "<command> <rest>"` where rest is the query with
// the alias removed from its front.
func ShellArgs(cmd catalog.ShellCommand, rawQuery string) []string {
	rest, _ := cutAlias(strings.TrimSpace(rawQuery), cmd.Alias)
	line := strings.TrimSpace(cmd.Command + " " + strings.TrimSpace(rest))
	return []string{"sh", "-c", line}
}

// cutAlias removes a case-folded alias from the front of q. It cuts on
// rune boundaries since folding can change the byte length.
func cutAlias(q, alias string) (string, bool) {
	for i := range q {
		if strings.EqualFold(q[:i], alias) {
			return q[i:], true
		}
	}
	if strings.EqualFold(q, alias) {
		return "", true
	}
	return "", false
}

func OpenArgs(url string) []string {
	return []string{"xdg-open", url}
}

// CommandLine renders argv the way a shell would accept it back.
func CommandLine(argv []string) string {
	return shellquote.Join(argv...)
}

func terminal() string {
	if t := os.Getenv("TERMINAL"); t != "" {
		return t
	}
	return "xterm"
}

func spawnDetached(argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Stdin, cmd.Stdout, cmd.Stderr = nil, nil, nil

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", CommandLine(argv), err)
	}
	logger.Infow("spawned", "cmd", CommandLine(argv), "pid", cmd.Process.Pid)
	go func() { _ = cmd.Wait() }()
	return nil
}

func kindOf(a catalog.Action) string {
	if a == nil {
		return "none"
	}
	return a.Kind()
}
