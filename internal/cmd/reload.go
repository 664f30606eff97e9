package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/hoppxi/runa/internal/manager"
	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-read runa.yaml and rebuild the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		response, err := manager.Manage.SendIPCCommand("RELOAD")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			fmt.Println("Hint: is the daemon running?")
			os.Exit(1)
		}

		fmt.Printf("Server response: %s\n", response)
		if !strings.HasPrefix(response, "OK") {
			fmt.Printf("Hint: check %s and the daemon log\n", manager.Config.Path())
			os.Exit(1)
		}
	},
}
