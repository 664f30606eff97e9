package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hoppxi/runa/internal/logger"
	"github.com/hoppxi/runa/internal/manager"
	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/search"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"
)

const promptTitle = "Runa"

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Ask for a query with a native dialog and run the chosen result",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := manager.Config.Settings()
		if err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		engine, err := newEngine(settings, manager.Manage)
		if err != nil {
			logger.Debugw("catalog built with errors", "error", err)
		}

		if err := runPrompt(engine, settings.Placeholder); err != nil {
			if errors.Is(err, zenity.ErrCanceled) {
				fmt.Println("Input cancelled.")
				return
			}
			_ = zenity.Error(err.Error(), zenity.Title(promptTitle))
			fmt.Println("Error:", err)
			os.Exit(1)
		}
	},
}

func runPrompt(engine *manager.Engine, placeholder string) error {
	session := engine.Session()
	query, err := zenity.Entry(placeholder, zenity.Title(promptTitle))
	if err != nil {
		return err
	}

	st := session.SetQuery(query)
	for {
		if len(st.Results) == 0 {
			return zenity.Info("No results for "+query, zenity.Title(promptTitle))
		}

		labels := promptLabels(st.Results)
		choice, err := zenity.List("Results for "+query, labels, zenity.Title(promptTitle))
		if err != nil {
			return err
		}
		index := slices.Index(labels, choice)
		if index < 0 {
			return fmt.Errorf("unknown choice %q", choice)
		}
		for range index {
			session.Move(search.Down)
		}

		act, next, err := engine.Activate()
		if err != nil {
			return err
		}
		if _, display := act.Action.(catalog.DisplayOnly); display {
			return zenity.Info(st.Results[index].Name, zenity.Title(promptTitle))
		}
		if !act.Handled {
			return nil
		}

		// a page switch: ask again on the new page
		query, err = zenity.Entry("Search "+next.Page.String(), zenity.Title(promptTitle))
		if err != nil {
			return err
		}
		st = session.SetQuery(query)
	}
}

// promptLabels renders results as unique list rows.
func promptLabels(results []search.Candidate) []string {
	labels := make([]string, len(results))
	seen := map[string]int{}
	for i, c := range results {
		base := c.Name
		if c.Description != "" {
			base = fmt.Sprintf("%s  (%s)", c.Name, c.Description)
		}
		label := base
		if n := seen[base]; n > 0 {
			label = fmt.Sprintf("%s #%d", base, n+1)
		}
		seen[base]++
		labels[i] = label
	}
	return labels
}
