package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveWrapsOnList(t *testing.T) {
	var nav Navigator

	next, scroll := nav.Move(4, 5, Main, Down)
	assert.Equal(t, 0, next)
	assert.Equal(t, Scroll{Offset: 0, Direction: -1}, scroll)

	next, scroll = nav.Move(0, 5, Main, Up)
	assert.Equal(t, 4, next)
	assert.Equal(t, Scroll{Offset: 4 * 55, Direction: 1}, scroll)

	next, scroll = nav.Move(1, 5, Main, Down)
	assert.Equal(t, 2, next)
	assert.Equal(t, Scroll{Offset: 2 * 55, Direction: 1}, scroll)
}

func TestMoveRepeatedCyclesThrough(t *testing.T) {
	var nav Navigator
	focus := 0
	for range 5 {
		focus, _ = nav.Move(focus, 5, ClipboardHistory, Down)
	}
	assert.Equal(t, 0, focus)
}

func TestMoveLeftRightIgnoredOnList(t *testing.T) {
	var nav Navigator
	next, scroll := nav.Move(2, 5, Main, Left)
	assert.Equal(t, 2, next)
	assert.Equal(t, 0, scroll.Direction)

	next, _ = nav.Move(2, 5, Main, Right)
	assert.Equal(t, 2, next)
}

func TestMoveEmojiGrid(t *testing.T) {
	nav := Navigator{EmojiColumns: 6}

	next, _ := nav.Move(0, 13, EmojiSearch, Left)
	assert.Equal(t, 12, next)

	next, scroll := nav.Move(1, 13, EmojiSearch, Down)
	assert.Equal(t, 7, next)
	assert.Equal(t, Scroll{Offset: 110, Direction: 1}, scroll)

	next, _ = nav.Move(12, 13, EmojiSearch, Right)
	assert.Equal(t, 0, next)

	next, _ = nav.Move(10, 13, EmojiSearch, Down)
	assert.Equal(t, 3, next)
}

func TestMoveEmptyIsNoop(t *testing.T) {
	var nav Navigator
	for _, k := range []Key{Up, Down, Left, Right} {
		next, scroll := nav.Move(0, 0, EmojiSearch, k)
		assert.Equal(t, 0, next)
		assert.Equal(t, Scroll{}, scroll)
	}
}

func TestParseKey(t *testing.T) {
	k, ok := ParseKey(" DOWN ")
	assert.True(t, ok)
	assert.Equal(t, Down, k)

	_, ok = ParseKey("sideways")
	assert.False(t, ok)
}
