package search

import "github.com/hoppxi/runa/pkg/catalog"

// Kind tells where a candidate came from. Everything except Catalog is
// synthesized for a single query and never enters an index.
type Kind int

const (
	Catalog Kind = iota
	Calculation
	Conversion
	Website
	WebSearch
	EasterEgg
	ClipboardItem
)

func (k Kind) String() string {
	switch k {
	case Catalog:
		return "catalog"
	case Calculation:
		return "calculation"
	case Conversion:
		return "conversion"
	case Website:
		return "website"
	case WebSearch:
		return "websearch"
	case EasterEgg:
		return "easteregg"
	case ClipboardItem:
		return "clipboard"
	}
	return "unknown"
}

type Candidate struct {
	Kind Kind
	catalog.Entry
}

func synthesized(kind Kind, name, description string, action catalog.Action) Candidate {
	return Candidate{
		Kind: kind,
		Entry: catalog.Entry{
			Name:        name,
			Description: description,
			Action:      action,
		},
	}
}

func fromCatalog(entries []catalog.Entry) []Candidate {
	out := make([]Candidate, len(entries))
	for i, e := range entries {
		out[i] = Candidate{Kind: Catalog, Entry: e}
	}
	return out
}
