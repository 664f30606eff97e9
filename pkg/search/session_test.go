package search

import (
	"sync"
	"testing"

	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(rules BufferRules) *Session {
	h := NewHistory(10)
	cats := testCatalogs()
	cats.main = catalog.FromEntries([]catalog.Entry{
		catalog.NewEntry("Firefox", "Application", catalog.Launch{Path: "firefox.desktop"}),
		catalog.NewEntry("Files", "Application", catalog.Launch{Path: "nautilus.desktop"}),
		catalog.NewEntry("Emoji", "Utility", catalog.Builtin{Op: catalog.OpSwitchToEmoji}),
		catalog.NewEntry("Clipboard History", "Utility", catalog.Builtin{Op: catalog.OpSwitchToClipboard}).WithAlias("clipboard"),
	})
	return NewSession(NewResolver(cats, h, Options{}), h, Navigator{}, rules)
}

func TestSessionQueryResetsFocus(t *testing.T) {
	s := newTestSession(BufferRules{})
	s.SetQuery("fi")
	st := s.Move(Down)
	assert.Equal(t, 1, st.Focus)

	st = s.SetQuery("fi")
	assert.Equal(t, 0, st.Focus)
	assert.Equal(t, Scroll{}, st.Scroll)
}

func TestSessionActivateReturnsFocusedAction(t *testing.T) {
	s := newTestSession(BufferRules{ClearOnEnter: true})
	s.SetQuery("fi")
	s.Move(Down)

	act, ok := s.Activate()
	require.True(t, ok)
	assert.False(t, act.Handled)
	assert.Equal(t, catalog.Launch{Path: "firefox.desktop"}, act.Action)
	assert.Equal(t, "fi", act.Query)

	st := s.State()
	assert.Equal(t, "", st.Raw)
	assert.Empty(t, st.Results)
}

func TestSessionActivateWithoutResults(t *testing.T) {
	s := newTestSession(BufferRules{})
	_, ok := s.Activate()
	assert.False(t, ok)
}

func TestSessionActivateSwitchesPage(t *testing.T) {
	s := newTestSession(BufferRules{})
	s.SetQuery("emoji")

	act, ok := s.Activate()
	require.True(t, ok)
	assert.True(t, act.Handled)

	st := s.State()
	assert.Equal(t, EmojiSearch, st.Page)
	assert.Equal(t, "", st.Raw)
	assert.Empty(t, st.Results)

	st = s.SetQuery("grin")
	require.Len(t, st.Results, 1)
	assert.Equal(t, "😀", st.Results[0].Name)
}

func TestSessionClipboardPageListsHistory(t *testing.T) {
	s := newTestSession(BufferRules{})
	s.PushClipboard("first")
	s.PushClipboard("second")

	s.SetQuery("clipboard")
	act, ok := s.Activate()
	require.True(t, ok)
	require.True(t, act.Handled)

	st := s.State()
	assert.Equal(t, ClipboardHistory, st.Page)
	assert.Equal(t, []string{"second", "first"}, names(st.Results))

	assert.True(t, s.PushClipboard("third"))
	st = s.Move(Down)
	assert.Equal(t, []string{"third", "second", "first"}, names(st.Results))
	assert.Equal(t, 1, st.Focus)

	act, ok = s.Activate()
	require.True(t, ok)
	assert.Equal(t, catalog.CopyText{Text: "second"}, act.Action)
}

func TestSessionToggleHides(t *testing.T) {
	s := newTestSession(BufferRules{ClearOnHide: false})
	st := s.Toggle()
	assert.True(t, st.Visible)

	s.SwitchPage(EmojiSearch)
	s.SetQuery("grin")
	st = s.Toggle()
	assert.False(t, st.Visible)
	assert.Equal(t, Main, st.Page)
	assert.Equal(t, "grin", st.Raw)
	assert.Empty(t, st.Results)

	s = newTestSession(BufferRules{ClearOnHide: true})
	s.Show(Main)
	s.SetQuery("fi")
	st = s.Hide()
	assert.Equal(t, "", st.Raw)
}

func TestSessionConcurrentEvents(t *testing.T) {
	s := newTestSession(BufferRules{})
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				s.SetQuery("fi")
			} else {
				s.Move(Down)
			}
		}()
	}
	wg.Wait()

	st := s.State()
	assert.Equal(t, "fi", st.Raw)
	assert.GreaterOrEqual(t, st.Focus, 0)
	assert.Less(t, st.Focus, len(st.Results))
}

func TestSessionReconfigureKeepsQuery(t *testing.T) {
	s := newTestSession(BufferRules{})
	s.SetQuery("fi")
	s.Move(Down)

	h := NewHistory(10)
	st := s.Reconfigure(NewResolver(testCatalogs(), h, Options{}), Navigator{}, BufferRules{ClearOnHide: true})
	assert.Equal(t, "fi", st.Raw)
	assert.Equal(t, 0, st.Focus)

	st = s.Hide()
	assert.Equal(t, "", st.Raw)
}
