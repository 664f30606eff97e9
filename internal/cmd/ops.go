package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hoppxi/runa/internal/manager"
	"github.com/spf13/cobra"
)

// sendAndPrint forwards command to the daemon and prints its reply. ERR
// replies exit non-zero.
func sendAndPrint(command string) {
	response, err := manager.Manage.SendIPCCommand(command)
	if err != nil {
		fmt.Println("Error:", err)
		fmt.Println("Hint: run `runa start` first")
		os.Exit(1)
	}
	fmt.Println(response)
	if strings.HasPrefix(response, "ERR") {
		os.Exit(1)
	}
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Show or hide the launcher",
	Run: func(cmd *cobra.Command, args []string) {
		sendAndPrint("TOGGLE")
	},
}

var showCmd = &cobra.Command{
	Use:       "show [main|clipboard|emoji]",
	Short:     "Show the launcher on a page",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"main", "clipboard", "emoji"},
	Run: func(cmd *cobra.Command, args []string) {
		sendAndPrint(strings.TrimSpace("SHOW " + strings.Join(args, " ")))
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the launcher",
	Run: func(cmd *cobra.Command, args []string) {
		sendAndPrint("HIDE")
	},
}

var clipboardCmd = &cobra.Command{
	Use:   "clipboard",
	Short: "Open the clipboard history page",
	Run: func(cmd *cobra.Command, args []string) {
		sendAndPrint("CLIPBOARD")
	},
}
