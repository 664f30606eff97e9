package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/internal/manager"
	"github.com/spf13/cobra"
)

var Version = "0.3.0"

var (
	logLevel string
	jsonLogs bool
)

// daemonOnly lists the commands that talk to a running daemon and have no
// local fallback.
var daemonOnly = []string{"kill", "reload", "toggle", "clipboard", "show", "hide"}

var rootCmd = &cobra.Command{
	Use:          "runa",
	Version:      Version,
	Short:        "Runa is a keystroke launcher engine",
	Long:         "Runa resolves typed queries into apps, shell shortcuts, calculations, unit conversions and web searches",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(cmd)

		if !slices.Contains(daemonOnly, cmd.Name()) {
			return
		}
		conn, err := manager.Manage.ConnectIPC()
		if err != nil {
			fmt.Println("Error:", err)
			fmt.Println("Hint: run `runa start` first")
			os.Exit(1)
		}
		conn.Close()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

// setupLogger applies the log settings from the config file, with the
// command line flags taking precedence.
func setupLogger(cmd *cobra.Command) {
	s := manager.Defaults()
	if loaded, err := manager.Config.Settings(); err == nil {
		s = loaded
	}
	level := s.Log.Level
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}
	jsonOut := s.Log.JSON
	if cmd.Flags().Changed("json-logs") {
		jsonOut = jsonLogs
	}
	if err := logger.Initialize(jsonOut, level); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "emit logs as JSON")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(killCmd)
	rootCmd.AddCommand(reloadCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(hideCmd)
	rootCmd.AddCommand(clipboardCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(versionCmd)
}
