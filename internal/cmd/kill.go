package cmd

import (
	"fmt"
	"strings"

	"github.com/hoppxi/runa/internal/manager"
	"github.com/spf13/cobra"
)

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemon and its watchers",
	Run: func(cmd *cobra.Command, args []string) {
		response, err := manager.Manage.SendIPCCommand("STOP")
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			fmt.Println("Hint: is the daemon running?")
			return
		}

		fmt.Printf("Server response: %s\n", response)

		if strings.HasPrefix(response, "OK") {
			fmt.Println("Runa daemon successfully shut down.")
		}
	},
}
