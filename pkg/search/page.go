package search

import "strings"

type Page int

const (
	Main Page = iota
	ClipboardHistory
	EmojiSearch
)

func (p Page) String() string {
	switch p {
	case Main:
		return "main"
	case ClipboardHistory:
		return "clipboard"
	case EmojiSearch:
		return "emoji"
	}
	return "unknown"
}

func ParsePage(s string) (Page, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "main", "":
		return Main, true
	case "clipboard", "cbhist":
		return ClipboardHistory, true
	case "emoji":
		return EmojiSearch, true
	}
	return Main, false
}

const (
	BaseHeight   = 80
	FooterHeight = 35

	DefaultEmojiColumns = 6
)

// Layout describes how a page renders its results: rows of RowHeight
// pixels, Columns results per row, at most MaxRows rows visible.
type Layout struct {
	RowHeight int
	Columns   int
	MaxRows   int
}

// LayoutOf returns the layout of page. columns only applies to the emoji
// grid; values below 1 fall back to DefaultEmojiColumns.
func LayoutOf(page Page, columns int) Layout {
	switch page {
	case ClipboardHistory:
		return Layout{RowHeight: 55, Columns: 1, MaxRows: 7}
	case EmojiSearch:
		if columns < 1 {
			columns = DefaultEmojiColumns
		}
		return Layout{RowHeight: 110, Columns: columns, MaxRows: 3}
	}
	return Layout{RowHeight: 55, Columns: 1, MaxRows: 5}
}

// Row is the row index holding the item at position i.
func (l Layout) Row(i int) int {
	if l.Columns <= 1 {
		return i
	}
	return i / l.Columns
}

// SizeHint tells a presentation layer how much vertical space the result
// list needs. Rows is min(rows needed, MaxRows).
type SizeHint struct {
	Rows   int `json:"rows"`
	Height int `json:"height"`
}

func Collapsed() SizeHint {
	return SizeHint{Height: BaseHeight}
}

// Size computes the hint for count results. It grows monotonically with
// count up to the page cap.
func (l Layout) Size(count int) SizeHint {
	if count <= 0 {
		return Collapsed()
	}
	rows := (count + l.Columns - 1) / l.Columns
	rows = min(rows, l.MaxRows)
	return SizeHint{
		Rows:   rows,
		Height: BaseHeight + FooterHeight + rows*l.RowHeight,
	}
}
