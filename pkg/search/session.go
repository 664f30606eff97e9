package search

import (
	"sync"

	"github.com/hoppxi/runa/pkg/catalog"
)

// State is what a presentation layer renders after each reducer step.
type State struct {
	Raw        string
	Normalized string
	Page       Page
	Results    []Candidate
	Focus      int
	Size       SizeHint
	Scroll     Scroll
	Visible    bool
}

type BufferRules struct {
	ClearOnHide  bool
	ClearOnEnter bool
}

// Activation is the outcome of pressing enter on the focused result.
// Handled is set when the session applied the action itself (page
// switches); otherwise Action goes to an executor along with Query.
type Activation struct {
	Action  catalog.Action
	Query   string
	Handled bool
}

// Session owns one query's state and applies events to it one at a time.
type Session struct {
	mu       sync.Mutex
	resolver *Resolver
	history  *History
	nav      Navigator
	rules    BufferRules
	state    State
}

func NewSession(resolver *Resolver, history *History, nav Navigator, rules BufferRules) *Session {
	s := &Session{resolver: resolver, history: history, nav: nav, rules: rules}
	s.state = State{Page: Main, Size: Collapsed()}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) SetQuery(raw string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolve(raw, s.state.Page)
	return s.snapshot()
}

// Refresh re-runs the current query, e.g. after a catalog swap.
func (s *Session) Refresh() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolve(s.state.Raw, s.state.Page)
	return s.snapshot()
}

// Reconfigure swaps in settings from a config reload and re-runs the
// current query with them.
func (s *Session) Reconfigure(resolver *Resolver, nav Navigator, rules BufferRules) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolver, s.nav, s.rules = resolver, nav, rules
	if s.state.Visible || s.state.Raw != "" {
		s.resolve(s.state.Raw, s.state.Page)
	}
	return s.snapshot()
}

func (s *Session) Move(key Key) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Focus, s.state.Scroll = s.nav.Move(s.state.Focus, len(s.state.Results), s.state.Page, key)
	return s.snapshot()
}

func (s *Session) SwitchPage(page Page) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.switchPage(page)
	return s.snapshot()
}

func (s *Session) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resolve("", s.state.Page)
	return s.snapshot()
}

// Toggle flips visibility. Hiding returns to the main page and drops the
// results; the query survives unless ClearOnHide is set.
func (s *Session) Toggle() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Visible {
		s.hide()
	} else {
		s.state.Visible = true
	}
	return s.snapshot()
}

// Show makes the session visible on page, used by the clipboard hotkey.
func (s *Session) Show(page Page) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Visible = true
	s.switchPage(page)
	return s.snapshot()
}

func (s *Session) Hide() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hide()
	return s.snapshot()
}

// PushClipboard records a copied item and refreshes the list when the
// clipboard page is showing.
func (s *Session) PushClipboard(text string) bool {
	if !s.history.Push(text) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Page == ClipboardHistory {
		s.resolve(s.state.Raw, ClipboardHistory)
	}
	return true
}

// Activate returns the focused result's action. Page-switch builtins are
// applied here and come back Handled. ok is false when nothing is focused.
func (s *Session) Activate() (act Activation, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.state.Results) == 0 {
		return Activation{}, false
	}
	c := s.state.Results[wrap(s.state.Focus, len(s.state.Results))]
	act = Activation{Action: c.Action, Query: s.state.Raw}

	if b, isBuiltin := c.Action.(catalog.Builtin); isBuiltin {
		switch b.Op {
		case catalog.OpSwitchToEmoji:
			s.switchPage(EmojiSearch)
			act.Handled = true
			return act, true
		case catalog.OpSwitchToClipboard:
			s.switchPage(ClipboardHistory)
			act.Handled = true
			return act, true
		}
	}

	if _, display := c.Action.(catalog.DisplayOnly); display {
		return act, true
	}
	if s.rules.ClearOnEnter {
		s.hide()
		s.resolve("", Main)
	}
	return act, true
}

func (s *Session) switchPage(page Page) {
	s.resolve("", page)
}

func (s *Session) hide() {
	s.state.Visible = false
	raw := s.state.Raw
	if s.rules.ClearOnHide {
		raw = ""
	}
	s.state.Page = Main
	s.state.Raw = raw
	s.state.Normalized = Normalize(raw)
	s.state.Results = nil
	s.state.Focus = 0
	s.state.Scroll = Scroll{}
	s.state.Size = Collapsed()
}

func (s *Session) resolve(raw string, page Page) {
	res := s.resolver.Resolve(raw, page)
	s.state.Raw = res.Raw
	s.state.Normalized = res.Normalized
	s.state.Page = res.Page
	s.state.Results = res.Results
	if res.Page == ClipboardHistory {
		s.state.Results = s.history.Candidates()
	}
	s.state.Size = res.Size
	s.state.Focus = 0
	s.state.Scroll = Scroll{}
}

func (s *Session) snapshot() State {
	st := s.state
	st.Results = append([]Candidate(nil), s.state.Results...)
	return st
}
