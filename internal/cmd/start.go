package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hoppxi/runa/internal/discovery"
	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/internal/manager"
	"github.com/hoppxi/runa/internal/watchers"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the launcher daemon",
	Run: func(cmd *cobra.Command, args []string) {
		if reply, err := manager.Manage.SendIPCCommand("STATUS"); err == nil {
			fmt.Printf("Daemon already running (%s)\n", reply)
			return
		}

		if err := manager.Manage.Lock(); err != nil {
			fmt.Println("Error:", err)
			if errors.Is(err, manager.ErrAlreadyRunning) {
				fmt.Println("Hint: run `runa kill` to stop the other instance")
			}
			os.Exit(1)
		}

		settings, err := manager.Config.Settings()
		if err != nil {
			fmt.Println("Error:", err)
			fmt.Printf("Hint: fix %s or run `runa setup`\n", manager.Config.Path())
			manager.Manage.StopAll()
			os.Exit(1)
		}

		engine, err := newEngine(settings, manager.Manage)
		if err != nil {
			logger.Warnw("catalog built with errors", "error", err)
		}

		startWatchers(engine, settings)

		serveErr := make(chan error, 1)
		go func() { serveErr <- manager.Manage.StartIPCServer() }()

		fmt.Printf("Daemon started with %d entries. Press Ctrl+C to stop.\n", engine.Main().Len())

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sigChan:
			fmt.Println("\nReceived shutdown signal, stopping watchers...")
		case err := <-serveErr:
			if err != nil {
				fmt.Println("Error:", err)
			}
		}
		manager.Manage.StopAll()
	},
}

// newEngine builds an engine and its first catalog. The returned error
// only reports failed discovery sources; the engine is usable either way.
func newEngine(s manager.Settings, m *manager.AppManager) (*manager.Engine, error) {
	engine := m.NewEngine(s, Version)
	return engine, engine.Rebuild(context.Background())
}

func startWatchers(engine *manager.Engine, s manager.Settings) {
	if s.Clipboard.SeedCliphist {
		if err := engine.SeedClipboard(); err != nil {
			logger.Debugw("cliphist seed skipped", "error", err)
		}
	}
	manager.Manage.StartWatcher(watchers.Clipboard(s.Clipboard.PollInterval, engine.Session().PushClipboard))

	if s.DesktopEntries {
		dirs := watchers.ExistingDirs(watchers.ApplicationDirs(discovery.DefaultDataDirs()))
		manager.Manage.StartWatcher(watchers.AppDirs(dirs, watchers.DefaultDebounce, func() {
			if err := engine.Rebuild(context.Background()); err != nil {
				logger.Warnw("rebuild finished with errors", "error", err)
			}
		}))
	}

	manager.Config.Watch(watchers.ConfigReload(watchers.DefaultDebounce, func() error {
		return manager.Manage.Reload(context.Background())
	}))
}
