package executor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	spawned  [][]string
	copied   []string
	notified []string
	copyErr  error
}

func newTestExecutor(opts Options) (*Executor, *recorder) {
	rec := &recorder{}
	e := New(opts)
	e.spawn = func(argv []string) error {
		rec.spawned = append(rec.spawned, argv)
		return nil
	}
	e.copy = func(text string) error {
		if rec.copyErr != nil {
			return rec.copyErr
		}
		rec.copied = append(rec.copied, text)
		return nil
	}
	e.notify = func(summary, body string) error {
		rec.notified = append(rec.notified, body)
		return nil
	}
	return e, rec
}

func TestShellArgs(t *testing.T) {
	cmd := catalog.ShellCommand{Command: "echo hello", Alias: "eh"}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"alias only", "eh", "echo hello"},
		{"with rest", "eh world", "echo hello world"},
		{"case insensitive alias", "EH there", "echo hello there"},
		{"query without alias", "other", "echo hello"},
		{"surrounding space", "  eh  a b ", "echo hello a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{"sh", "-c", tt.want}, ShellArgs(cmd, tt.query))
		})
	}
}

func TestShellArgsMultibyteAlias(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		query string
		want  string
	}{
		{"cyrillic upper case", "ёж", "ЁЖ hi", "run hi"},
		// KELVIN SIGN folds to k but is three bytes long
		{"fold changes byte length", "kb", "\u212Ab 4", "run 4"},
		{"multibyte rune past alias", "ab", "aé x", "run"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := catalog.ShellCommand{Command: "run", Alias: tt.alias}
			assert.Equal(t, []string{"sh", "-c", tt.want}, ShellArgs(cmd, tt.query))
		})
	}
}

func TestLaunchArgsPlainPath(t *testing.T) {
	argv, err := LaunchArgs("/usr/bin/foot")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/foot"}, argv)
}

func TestLaunchArgsDesktopFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "editor.desktop")
	content := "[Desktop Entry]\nType=Application\nName=Editor\nExec=editor --new-window \"My File\" %U\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	argv, err := LaunchArgs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"editor", "--new-window", "My File"}, argv)
}

func TestLaunchArgsTerminalApp(t *testing.T) {
	t.Setenv("TERMINAL", "foot")
	dir := t.TempDir()
	path := filepath.Join(dir, "top.desktop")
	content := "[Desktop Entry]\nType=Application\nName=Top\nExec=htop\nTerminal=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	argv, err := LaunchArgs(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"foot", "-e", "htop"}, argv)
}

func TestLaunchArgsEmptyExec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.desktop")
	require.NoError(t, os.WriteFile(path, []byte("[Desktop Entry]\nName=Broken\nExec=%U\n"), 0o644))

	_, err := LaunchArgs(path)
	assert.ErrorIs(t, err, ErrEmptyCommand)
}

func TestExecuteDispatch(t *testing.T) {
	e, rec := newTestExecutor(Options{SearchURL: "https://duckduckgo.com/?q=%s"})

	require.NoError(t, e.Execute(catalog.OpenWebsite{URL: "example.com"}, "example.com"))
	require.NoError(t, e.Execute(catalog.WebSearch{Query: "go generics?"}, "go generics?"))
	require.NoError(t, e.Execute(catalog.ShellCommand{Command: "notify-send", Alias: "ns"}, "ns hi"))
	require.NoError(t, e.Execute(catalog.DisplayOnly{}, ""))

	assert.Equal(t, [][]string{
		{"xdg-open", "https://example.com"},
		{"xdg-open", "https://duckduckgo.com/?q=go+generics"},
		{"sh", "-c", "notify-send hi"},
	}, rec.spawned)
}

func TestExecuteCopyNotifies(t *testing.T) {
	e, rec := newTestExecutor(Options{Notify: true})

	require.NoError(t, e.Execute(catalog.CopyText{Text: "24"}, "12 + 12"))
	assert.Equal(t, []string{"24"}, rec.copied)
	assert.Equal(t, []string{"24"}, rec.notified)
}

func TestExecuteCopyError(t *testing.T) {
	e, rec := newTestExecutor(Options{Notify: true})
	rec.copyErr = errors.New("no clipboard utility")

	err := e.Execute(catalog.CopyText{Text: "x"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no clipboard utility")
	assert.Empty(t, rec.notified)
}

func TestExecuteBuiltins(t *testing.T) {
	var quit, reload int
	e, _ := newTestExecutor(Options{Hooks: Hooks{
		Quit:   func() { quit++ },
		Reload: func() { reload++ },
	}})

	require.NoError(t, e.Execute(catalog.Builtin{Op: catalog.OpQuit}, ""))
	require.NoError(t, e.Execute(catalog.Builtin{Op: catalog.OpReload}, ""))
	require.NoError(t, e.Execute(catalog.Builtin{Op: catalog.OpSwitchToEmoji}, ""))
	assert.Equal(t, 1, quit)
	assert.Equal(t, 1, reload)

	err := e.Execute(catalog.Builtin{Op: catalog.OpOpenPreferences}, "")
	assert.ErrorIs(t, err, ErrNoHook)
}

func TestExecuteNilAction(t *testing.T) {
	e, _ := newTestExecutor(Options{})
	assert.ErrorIs(t, e.Execute(nil, ""), ErrUnknownAction)
}

func TestCommandLineQuotes(t *testing.T) {
	assert.Equal(t, `sh -c 'echo hello world'`, CommandLine([]string{"sh", "-c", "echo hello world"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcd", 2))
}

func TestConfigureKeepsHooks(t *testing.T) {
	var quit int
	e, rec := newTestExecutor(Options{Hooks: Hooks{Quit: func() { quit++ }}})
	e.Configure("https://search.example/?q=%s", false)

	require.NoError(t, e.Execute(catalog.WebSearch{Query: "a b"}, "a b"))
	require.NoError(t, e.Execute(catalog.Builtin{Op: catalog.OpQuit}, ""))
	assert.Equal(t, []string{"xdg-open", "https://search.example/?q=a+b"}, rec.spawned[0])
	assert.Equal(t, 1, quit)
}
