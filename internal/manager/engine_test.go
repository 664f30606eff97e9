package manager

import (
	"context"
	"errors"
	"testing"

	"github.com/hoppxi/runa/internal/discovery"
	"github.com/hoppxi/runa/internal/executor"
	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	actions []catalog.Action
	queries []string
	err     error
}

func (f *fakeRunner) Execute(a catalog.Action, q string) error {
	f.actions = append(f.actions, a)
	f.queries = append(f.queries, q)
	return f.err
}

func newTestEngine(t *testing.T, s Settings) (*Engine, *fakeRunner) {
	t.Helper()
	e := NewEngine(s, "1.2.3", executor.Hooks{})
	runner := &fakeRunner{}
	e.runner = runner
	e.discover = func(_ context.Context, opts discovery.Options) ([]catalog.Entry, []error) {
		entries := []catalog.Entry{
			catalog.NewEntry("Firefox", "Application", catalog.Launch{Path: "/apps/firefox.desktop"}),
			catalog.NewEntry("Files", "Application", catalog.Launch{Path: "/apps/files.desktop"}),
		}
		entries = append(entries, discovery.Shells(opts.Shells)...)
		entries = append(entries, discovery.Builtins(opts.Version)...)
		return entries, []error{errors.New("dir /nowhere: missing")}
	}
	e.emojis = func() ([]catalog.Entry, error) {
		return []catalog.Entry{
			catalog.NewEntry("🍋", "lemon", catalog.CopyText{Text: "🍋"}).WithAlias("lemon"),
		}, nil
	}
	return e, runner
}

func TestEngineRebuildSwapsCatalogs(t *testing.T) {
	e, _ := newTestEngine(t, Defaults())
	assert.Equal(t, 0, e.Main().Len())

	err := e.Rebuild(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nowhere")

	_, ok := e.Main().Lookup("firefox")
	assert.True(t, ok)
	_, ok = e.Main().Lookup("version")
	assert.True(t, ok)
	assert.Equal(t, 1, e.Emoji().Len())
}

func TestEngineRebuildRefreshesQuery(t *testing.T) {
	e, _ := newTestEngine(t, Defaults())
	st := e.Session().SetQuery("fi")
	assert.Empty(t, st.Results)

	_ = e.Rebuild(context.Background())
	st = e.Session().State()
	require.Len(t, st.Results, 2)
	assert.Equal(t, "Files", st.Results[0].Name)
}

func TestEngineActivateRunsAction(t *testing.T) {
	e, runner := newTestEngine(t, Defaults())
	_ = e.Rebuild(context.Background())

	e.Session().SetQuery("fire")
	_, st, err := e.Activate()
	require.NoError(t, err)
	require.Len(t, runner.actions, 1)
	assert.Equal(t, catalog.Launch{Path: "/apps/firefox.desktop"}, runner.actions[0])
	assert.Equal(t, []string{"fire"}, runner.queries)
	assert.Equal(t, "", st.Raw)
}

func TestEngineActivatePageSwitchSkipsRunner(t *testing.T) {
	e, runner := newTestEngine(t, Defaults())
	_ = e.Rebuild(context.Background())

	e.Session().SetQuery("emoji")
	_, st, err := e.Activate()
	require.NoError(t, err)
	assert.Empty(t, runner.actions)
	assert.Equal(t, search.EmojiSearch, st.Page)
}

func TestEngineActivateNothingFocused(t *testing.T) {
	e, _ := newTestEngine(t, Defaults())
	_, _, err := e.Activate()
	assert.ErrorIs(t, err, ErrNothingFocused)
}

func TestEngineApplyShells(t *testing.T) {
	e, runner := newTestEngine(t, Defaults())
	s := Defaults()
	s.Shells = []ShellConfig{{Command: "foot -e btop", Alias: "Top"}}
	e.Apply(s)
	_ = e.Rebuild(context.Background())

	e.Session().SetQuery("top")
	_, _, err := e.Activate()
	require.NoError(t, err)
	require.Len(t, runner.actions, 1)
	assert.Equal(t, catalog.ShellCommand{Command: "foot -e btop", Alias: "top"}, runner.actions[0])
}

func TestEngineApplyKeepsQueryWithoutClearOnEnter(t *testing.T) {
	e, _ := newTestEngine(t, Defaults())
	s := Defaults()
	s.BufferRules.ClearOnEnter = false
	e.Apply(s)
	_ = e.Rebuild(context.Background())

	e.Session().SetQuery("files")
	_, st, err := e.Activate()
	require.NoError(t, err)
	assert.Equal(t, "files", st.Raw)
}
