package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoppxi/runa/internal/discovery"
	"github.com/hoppxi/runa/internal/executor"
	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/search"
)

var ErrNothingFocused = errors.New("no result to activate")

// Runner executes activated actions.
type Runner interface {
	Execute(action catalog.Action, rawQuery string) error
}

// Engine holds the catalog snapshots and the session that reads them.
// Rebuilds swap whole indexes, so a query sees the old or the new catalog,
// never a mix.
type Engine struct {
	version string

	main     atomic.Pointer[catalog.Index]
	emoji    atomic.Pointer[catalog.Index]
	settings atomic.Pointer[Settings]

	history *search.History
	session *search.Session
	exec    *executor.Executor
	runner  Runner

	buildMu  sync.Mutex
	discover func(ctx context.Context, opts discovery.Options) ([]catalog.Entry, []error)
	emojis   func() ([]catalog.Entry, error)
}

func NewEngine(s Settings, version string, hooks executor.Hooks) *Engine {
	e := &Engine{
		version:  version,
		history:  search.NewHistory(s.Clipboard.MaxItems),
		discover: discovery.Build,
		emojis:   discovery.Emoji,
	}
	e.main.Store(catalog.Empty())
	e.emoji.Store(catalog.Empty())
	e.settings.Store(&s)

	e.exec = executor.New(executor.Options{SearchURL: s.SearchURL, Notify: s.Notifications, Hooks: hooks})
	e.runner = e.exec
	e.session = search.NewSession(
		search.NewResolver(e, e.history, s.SearchOptions()),
		e.history,
		search.Navigator{EmojiColumns: s.Emoji.Columns},
		s.Rules(),
	)
	return e
}

func (e *Engine) Main() *catalog.Index { return e.main.Load() }
func (e *Engine) Emoji() *catalog.Index { return e.emoji.Load() }

func (e *Engine) Settings() Settings { return *e.settings.Load() }
func (e *Engine) Session() *search.Session { return e.session }
func (e *Engine) History() *search.History { return e.history }
func (e *Engine) Version() string { return e.version }

// Apply switches to new settings without dropping the session state.
// The caller rebuilds the catalog when discovery settings changed.
func (e *Engine) Apply(s Settings) {
	e.settings.Store(&s)
	e.exec.Configure(s.SearchURL, s.Notifications)
	e.session.Reconfigure(
		search.NewResolver(e, e.history, s.SearchOptions()),
		search.Navigator{EmojiColumns: s.Emoji.Columns},
		s.Rules(),
	)
}

// Rebuild runs discovery and swaps in the new catalogs. Source failures
// are logged and returned joined; whatever was found is still used.
func (e *Engine) Rebuild(ctx context.Context) error {
	e.buildMu.Lock()
	defer e.buildMu.Unlock()

	start := time.Now()
	s := e.Settings()
	entries, errs := e.discover(ctx, s.DiscoveryOptions(e.version))
	for _, err := range errs {
		logger.Warnw("discovery source failed", "error", err)
	}
	main := catalog.FromEntries(entries)
	e.main.Store(main)

	if e.emoji.Load().Len() == 0 {
		emojis, err := e.emojis()
		if err != nil {
			logger.Warnw("emoji catalog unavailable", "error", err)
			errs = append(errs, err)
		} else {
			e.emoji.Store(catalog.FromEntries(emojis))
		}
	}

	e.session.Refresh()
	logger.Infow("catalog rebuilt",
		"entries", main.Len(),
		"emoji", e.emoji.Load().Len(),
		"took", time.Since(start))
	return errors.Join(errs...)
}

// SeedClipboard fills the history from cliphist when it is installed.
func (e *Engine) SeedClipboard() error {
	items, err := search.LoadCliphist()
	if err != nil {
		return fmt.Errorf("seed clipboard history: %w", err)
	}
	e.history.Seed(items)
	return nil
}

// Activate runs the focused result. Page switches stay inside the
// session; everything else is handed to the executor.
func (e *Engine) Activate() (search.Activation, search.State, error) {
	act, ok := e.session.Activate()
	if !ok {
		return act, e.session.State(), ErrNothingFocused
	}
	if !act.Handled {
		if err := e.runner.Execute(act.Action, act.Query); err != nil {
			return act, e.session.State(), err
		}
	}
	return act, e.session.State(), nil
}
