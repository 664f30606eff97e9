package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hoppxi/runa/config"
	"github.com/hoppxi/runa/internal/discovery"
	"github.com/hoppxi/runa/internal/manager"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var setupDefaults bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Write runa.yaml, asking for the common settings",
	Run: func(cmd *cobra.Command, args []string) {
		reader := bufio.NewReader(os.Stdin)
		path := manager.Config.Path()

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Warning: config already exists at %s\n", path)
			if !confirm(reader, os.Stdout, "Overwrite it?") {
				return
			}
		}

		var data []byte
		if setupDefaults {
			data = config.DefaultYAML()
		} else {
			s := askSettings(reader, os.Stdout)
			if err := s.Validate(); err != nil {
				fmt.Println("Error:", err)
				fmt.Println("Hint: run `runa setup --defaults` and edit the file by hand")
				os.Exit(1)
			}
			out, err := yaml.Marshal(&s)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			data = out
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
	},
}

func askSettings(r *bufio.Reader, w io.Writer) manager.Settings {
	s := manager.Defaults()
	s.SearchURL = prompt(r, w, "Search URL (%s is the query)", s.SearchURL)
	s.Placeholder = prompt(r, w, "Placeholder", s.Placeholder)
	s.Ranking = prompt(r, w, "Ranking (alphabetical, exact-first)", s.Ranking)
	s.PathBins = confirm(r, w, "Index executables on $PATH?")

	if dir := prompt(r, w, "Extra app directory, path[:depth]", ""); dir != "" {
		s.IndexDirs = append(s.IndexDirs, dir)
	}
	if command := prompt(r, w, "Shell shortcut command", ""); command != "" {
		alias := prompt(r, w, "Alias for it", strings.Fields(command)[0])
		s.Shells = append(s.Shells, manager.ShellConfig{Command: command, Alias: alias})
	}
	return s
}

func prompt(r *bufio.Reader, w io.Writer, label, defaultValue string) string {
	fmt.Fprintf(w, "%s [%s]: ", label, defaultValue)
	input, _ := r.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func confirm(r *bufio.Reader, w io.Writer, message string) bool {
	fmt.Fprintf(w, "%s (y/N): ", message)
	input, _ := r.ReadString('\n')
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and where runa looks for things",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("runa %s\n", Version)
		fmt.Printf("config:    %s\n", manager.Config.Path())
		fmt.Printf("data dirs: %s\n", strings.Join(discovery.DefaultDataDirs(), ":"))
	},
}

func init() {
	setupCmd.Flags().BoolVar(&setupDefaults, "defaults", false, "write the commented default config without asking")
}
