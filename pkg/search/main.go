// Package search turns each edit of the launcher query into a ranked,
// bounded result list, and moves keyboard focus through it.
package search

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/hoppxi/runa/pkg/calc"
	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/hoppxi/runa/pkg/units"
)

// Catalogs hands out the current index snapshot for the searchable pages.
// Implementations swap snapshots atomically; a nil index means empty.
type Catalogs interface {
	Main() *catalog.Index
	Emoji() *catalog.Index
}

type Ranking int

const (
	Alphabetical Ranking = iota
	ExactFirst
)

func ParseRanking(s string) Ranking {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact-first", "exact_first", "exact":
		return ExactFirst
	}
	return Alphabetical
}

type Options struct {
	Ranking      Ranking
	EmojiColumns int
	// Intn backs the "randomvar" trigger. Defaults to math/rand/v2.
	Intn func(n int) int
}

type Resolver struct {
	catalogs Catalogs
	history  *History
	opts     Options
}

func NewResolver(catalogs Catalogs, history *History, opts Options) *Resolver {
	if opts.Intn == nil {
		opts.Intn = rand.IntN
	}
	return &Resolver{catalogs: catalogs, history: history, opts: opts}
}

// Resolution is the outcome of one query edit.
type Resolution struct {
	Raw        string
	Normalized string
	Page       Page
	Results    []Candidate
	Size       SizeHint
}

func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Resolve runs the fallback chain for raw on page. The returned page differs
// from the input when the query is a page-switch keyword.
func (r *Resolver) Resolve(raw string, page Page) Resolution {
	norm := Normalize(raw)
	res := Resolution{Raw: raw, Normalized: norm, Page: page}

	if norm == "" && page != ClipboardHistory {
		res.Size = Collapsed()
		return res
	}

	if c, ok := r.literal(norm); ok {
		res.Results = []Candidate{c}
		res.Size = r.size(page, 1)
		return res
	}

	if strings.HasSuffix(norm, "?") {
		res.Results = []Candidate{webSearch(raw)}
		res.Size = r.size(page, 1)
		return res
	}

	switch norm {
	case "cbhist":
		res.Page = ClipboardHistory
	case "main":
		res.Page = Main
	}

	results := r.search(norm, res.Page)
	answered := false
	if len(results) == 0 {
		query := strings.TrimSpace(raw)
		if c, ok := calculation(query); ok {
			results, answered = []Candidate{c}, true
		} else if cs, ok := conversions(query); ok {
			results, answered = cs, true
		} else if LooksLikeURL(query) {
			results, answered = []Candidate{website(query)}, true
		}
	}
	if !answered && len(strings.Fields(norm)) > 1 {
		results = append(results, webSearch(raw))
	}

	res.Results = results
	res.Size = r.size(res.Page, len(results))
	return res
}

func (r *Resolver) search(norm string, page Page) []Candidate {
	var idx *catalog.Index
	switch page {
	case Main:
		if r.catalogs != nil {
			idx = r.catalogs.Main()
		}
	case EmojiSearch:
		if r.catalogs != nil {
			idx = r.catalogs.Emoji()
		}
	case ClipboardHistory:
		return nil
	}

	if r.opts.Ranking == ExactFirst {
		return fromCatalog(idx.Ranked(norm))
	}
	return fromCatalog(catalog.Collect(idx.SearchPrefix(norm)))
}

func (r *Resolver) size(page Page, count int) SizeHint {
	if page == ClipboardHistory {
		count = r.history.Len()
	}
	return LayoutOf(page, r.opts.EmojiColumns).Size(count)
}

func (r *Resolver) literal(norm string) (Candidate, bool) {
	switch norm {
	case "randomvar":
		return easterEgg(r.opts.Intn(100)), true
	case "67":
		return easterEgg(67), true
	case "lemon":
		return synthesized(EasterEgg, "Lemon", "Easter Egg", catalog.DisplayOnly{}), true
	}
	return Candidate{}, false
}

func easterEgg(n int) Candidate {
	s := strconv.Itoa(n)
	return synthesized(EasterEgg, s, "Easter egg", catalog.CopyText{Text: s})
}

func webSearch(raw string) Candidate {
	return synthesized(WebSearch, "Search for: "+raw, "Web Search", catalog.WebSearch{Query: raw})
}

func website(raw string) Candidate {
	return synthesized(Website, "Open Website: "+raw, "Web Browsing", catalog.OpenWebsite{URL: raw})
}

// calculation only answers when the expression both parses and evaluates.
func calculation(query string) (Candidate, bool) {
	expr, err := calc.Parse(query)
	if err != nil {
		return Candidate{}, false
	}
	v, ok := expr.Eval()
	if !ok {
		return Candidate{}, false
	}
	answer := calc.FormatResult(v)
	return synthesized(Calculation, answer, "Utility", catalog.CopyText{Text: answer}), true
}

func conversions(query string) ([]Candidate, bool) {
	convs, ok := units.Convert(query)
	if !ok {
		return nil, false
	}
	out := make([]Candidate, len(convs))
	for i, c := range convs {
		target := c.Label()
		out[i] = synthesized(Conversion, target, c.SourceLabel(), catalog.CopyText{Text: target})
	}
	return out, true
}
