package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/internal/manager"
	"github.com/hoppxi/runa/pkg/search"
	"github.com/spf13/cobra"
)

var (
	localOnly  bool
	localQuery string
	localPage  string
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Resolve a query and print the results as JSON",
	Long: `Resolve a query and print the results as JSON.

The running daemon answers when there is one, so its session state (page,
focus) is shared with other front-ends. Without a daemon the catalog is
built in-process for this one call.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")
		if daemonAvailable() {
			sendAndPrint("QUERY " + text)
			return
		}
		runLocal(func(e *manager.Engine) (search.State, error) {
			return e.Session().SetQuery(text), nil
		})
	},
}

var keyCmd = &cobra.Command{
	Use:       "key <up|down|left|right>",
	Short:     "Move the focus and print the new state as JSON",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"up", "down", "left", "right"},
	Run: func(cmd *cobra.Command, args []string) {
		key, ok := search.ParseKey(args[0])
		if !ok {
			fmt.Printf("Error: unknown key %q\n", args[0])
			fmt.Println("Hint: use up, down, left or right")
			os.Exit(1)
		}
		if daemonAvailable() {
			sendAndPrint("KEY " + key.String())
			return
		}
		runLocal(func(e *manager.Engine) (search.State, error) {
			return e.Session().Move(key), nil
		})
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Run the focused result",
	Run: func(cmd *cobra.Command, args []string) {
		if daemonAvailable() {
			sendAndPrint("ACTIVATE")
			return
		}
		runLocal(func(e *manager.Engine) (search.State, error) {
			_, st, err := e.Activate()
			return st, err
		})
	},
}

func daemonAvailable() bool {
	if localOnly {
		return false
	}
	conn, err := manager.Manage.ConnectIPC()
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// runLocal builds a throwaway engine, seeds it with --query and --page,
// applies step and prints the resulting view.
func runLocal(step func(e *manager.Engine) (search.State, error)) {
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
	if localPage != "" {
		page, ok := search.ParsePage(localPage)
		if !ok {
			fmt.Printf("Error: unknown page %q\n", localPage)
			os.Exit(1)
		}
		engine.Session().SwitchPage(page)
	}
	if localQuery != "" {
		engine.Session().SetQuery(localQuery)
	}

	st, err := step(engine)
	if err != nil {
		fmt.Println("Error:", err)
		if errors.Is(err, manager.ErrNothingFocused) {
			fmt.Println("Hint: pass --query so there is something to activate")
		}
		os.Exit(1)
	}
	if err := search.WriteJSON(os.Stdout, st.View()); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func init() {
	for _, c := range []*cobra.Command{queryCmd, keyCmd, activateCmd} {
		c.Flags().BoolVar(&localOnly, "local", false, "ignore a running daemon")
		c.Flags().StringVar(&localPage, "page", "", "page to start from without a daemon (main, clipboard, emoji)")
	}
	keyCmd.Flags().StringVar(&localQuery, "query", "", "query to start from without a daemon")
	activateCmd.Flags().StringVar(&localQuery, "query", "", "query to start from without a daemon")
}
