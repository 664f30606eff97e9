package discovery

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/hoppxi/runa/pkg/catalog"
)

//go:embed emoji.json
var emojiJSON []byte

var (
	emojiCache []EmojiItem
	emojiErr   error
	emojiOnce  sync.Once
)

type EmojiItem struct {
	Emoji    string   `json:"emoji"`
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

func loadEmoji() ([]EmojiItem, error) {
	emojiOnce.Do(func() {
		if err := json.Unmarshal(emojiJSON, &emojiCache); err != nil {
			emojiErr = fmt.Errorf("parse emoji.json: %w", err)
		}
	})
	return emojiCache, emojiErr
}

// Emoji returns the emoji page catalog: one entry per emoji keyed by its
// name, plus one per keyword that no name or earlier emoji claims. Every
// entry copies the character on activation.
func Emoji() ([]catalog.Entry, error) {
	items, err := loadEmoji()
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool, len(items))
	for _, it := range items {
		names[strings.ToLower(it.Text)] = true
	}

	var keywords []catalog.Entry
	claimed := make(map[string]bool)
	for _, it := range items {
		for _, kw := range it.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" || names[kw] || claimed[kw] {
				continue
			}
			claimed[kw] = true
			keywords = append(keywords, newEmojiEntry(it).WithAlias(kw))
		}
	}

	// names go last so they win any alias collision in the index
	out := make([]catalog.Entry, 0, len(keywords)+len(items))
	out = append(out, keywords...)
	for _, it := range items {
		out = append(out, newEmojiEntry(it).WithAlias(it.Text))
	}
	return out, nil
}

func newEmojiEntry(it EmojiItem) catalog.Entry {
	return catalog.NewEntry(it.Emoji, it.Text, catalog.CopyText{Text: it.Emoji})
}
