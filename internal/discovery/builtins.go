package discovery

import (
	"strings"

	"github.com/hoppxi/runa/pkg/catalog"
)

const utilityDesc = "Utility"

// Builtins are the launcher's own commands.
func Builtins(version string) []catalog.Entry {
	if version == "" {
		version = "Unknown Version"
	}
	return []catalog.Entry{
		catalog.NewEntry("Quit Runa", utilityDesc, catalog.Builtin{Op: catalog.OpQuit}).WithAlias("quit"),
		catalog.NewEntry("Open Runa Preferences", utilityDesc, catalog.Builtin{Op: catalog.OpOpenPreferences}).WithAlias("settings"),
		catalog.NewEntry("Search for an Emoji", utilityDesc, catalog.Builtin{Op: catalog.OpSwitchToEmoji}).WithAlias("emoji"),
		catalog.NewEntry("Clipboard History", utilityDesc, catalog.Builtin{Op: catalog.OpSwitchToClipboard}).WithAlias("clipboard"),
		catalog.NewEntry("Reload Runa", utilityDesc, catalog.Builtin{Op: catalog.OpReload}).WithAlias("refresh"),
		catalog.NewEntry("Current Runa Version: "+version, utilityDesc, catalog.DisplayOnly{}).WithAlias("version"),
	}
}

// Shell is a user-defined shortcut: typing Alias runs Command, with
// whatever follows the alias appended as arguments.
type Shell struct {
	Command  string
	IconPath string
	Alias    string
	AliasLC  string
}

func (s Shell) Entry() catalog.Entry {
	key := s.AliasLC
	if key == "" {
		key = s.Alias
	}
	key = strings.ToLower(key)
	return catalog.Entry{
		Name:        s.Alias,
		Alias:       key,
		Description: "Shell Command",
		Action:      catalog.ShellCommand{Command: s.Command, Alias: key},
		Icon:        expandHome(s.IconPath),
	}
}

func Shells(shells []Shell) []catalog.Entry {
	var out []catalog.Entry
	for _, s := range shells {
		if strings.TrimSpace(s.Command) == "" || strings.TrimSpace(s.Alias+s.AliasLC) == "" {
			continue
		}
		out = append(out, s.Entry())
	}
	return out
}
