package cmd

import (
	"fmt"
	"os"

	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/internal/manager"
	"github.com/hoppxi/runa/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the launcher in the terminal",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := manager.Config.Settings()
		if err != nil {
			fmt.Println("Error:", err)
			fmt.Printf("Hint: fix %s or run `runa setup`\n", manager.Config.Path())
			os.Exit(1)
		}

		engine, err := newEngine(settings, manager.Manage)
		if err != nil {
			logger.Debugw("catalog built with errors", "error", err)
		}
		if settings.Clipboard.SeedCliphist {
			_ = engine.SeedClipboard()
		}

		act, launched, err := tui.Run(engine, settings.Placeholder, settings.Emoji.Columns)
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if launched {
			logger.Infow("launched from tui", "kind", act.Action.Kind(), "query", act.Query)
		}
	},
}
