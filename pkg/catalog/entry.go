package catalog

import "strings"

// Entry is one searchable action. Entries are values: the index is keyed by
// Alias, so an entry is replaced wholesale rather than edited.
type Entry struct {
	Name        string
	Alias       string
	Description string
	Action      Action
	Icon        string
}

// NewEntry builds an entry whose alias is the lowercased display name.
func NewEntry(name, description string, action Action) Entry {
	return Entry{
		Name:        name,
		Alias:       strings.ToLower(name),
		Description: description,
		Action:      action,
	}
}

// WithAlias returns a copy of e keyed by alias instead.
func (e Entry) WithAlias(alias string) Entry {
	e.Alias = strings.ToLower(alias)
	return e
}

func (e Entry) WithIcon(icon string) Entry {
	e.Icon = icon
	return e
}
