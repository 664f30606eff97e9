package search

import "strings"

type Key int

const (
	Up Key = iota
	Down
	Left
	Right
)

func (k Key) String() string {
	return [...]string{"up", "down", "left", "right"}[k]
}

func ParseKey(s string) (Key, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "k":
		return Up, true
	case "down", "j":
		return Down, true
	case "left", "h":
		return Left, true
	case "right", "l":
		return Right, true
	}
	return Up, false
}

// Scroll is where the viewport should move so the focused row stays
// visible. Direction is +1 when focus moved forward, -1 backward, 0 when it
// stayed put.
type Scroll struct {
	Offset    int `json:"offset"`
	Direction int `json:"direction"`
}

type Navigator struct {
	EmojiColumns int
}

// Move computes the next focus for key. Every move wraps modulo length, so
// Left from 0 on the emoji grid lands on length-1, not the end of the row.
// A zero length makes every move a no-op.
func (n Navigator) Move(focus, length int, page Page, key Key) (int, Scroll) {
	if length <= 0 {
		return focus, Scroll{}
	}
	layout := LayoutOf(page, n.EmojiColumns)

	vertical := 1
	horizontal := 0
	if page == EmojiSearch {
		vertical = layout.Columns
		horizontal = 1
	}

	step := 0
	switch key {
	case Up:
		step = -vertical
	case Down:
		step = vertical
	case Left:
		step = -horizontal
	case Right:
		step = horizontal
	}

	cur := wrap(focus, length)
	next := wrap(cur+step, length)

	dir := 0
	switch {
	case next > cur:
		dir = 1
	case next < cur:
		dir = -1
	}
	return next, Scroll{Offset: layout.Row(next) * layout.RowHeight, Direction: dir}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
