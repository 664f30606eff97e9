package search

import (
	"bufio"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hoppxi/runa/pkg/catalog"
)

const DefaultHistorySize = 100

type ClipItem struct {
	ID   string    `json:"id"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// History backs the clipboard page: newest first, consecutive duplicates
// collapsed, bounded. It is safe for concurrent use since the poller and
// the daemon's connections both touch it.
type History struct {
	mu    sync.RWMutex
	items []ClipItem
	max   int
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max}
}

// Push records text as the newest item. It reports false when text is
// blank or equal to the current newest item.
func (h *History) Push(text string) bool {
	if h == nil || strings.TrimSpace(text) == "" {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) > 0 && h.items[0].Text == text {
		return false
	}
	item := ClipItem{ID: uuid.NewString(), Text: text, At: time.Now()}
	h.items = append([]ClipItem{item}, h.items...)
	if len(h.items) > h.max {
		h.items = h.items[:h.max]
	}
	return true
}

// Seed fills the history from an external newest-first listing. Existing
// items stay in front.
func (h *History) Seed(newestFirst []string) {
	for _, text := range newestFirst {
		h.appendOldest(text)
	}
}

func (h *History) appendOldest(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.items) >= h.max {
		return
	}
	if n := len(h.items); n > 0 && h.items[n-1].Text == text {
		return
	}
	h.items = append(h.items, ClipItem{ID: uuid.NewString(), Text: text, At: time.Now()})
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

func (h *History) Items() []ClipItem {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]ClipItem(nil), h.items...)
}

// Candidates renders the history as activatable results that copy the
// item back to the clipboard.
func (h *History) Candidates() []Candidate {
	items := h.Items()
	out := make([]Candidate, len(items))
	for i, it := range items {
		out[i] = synthesized(ClipboardItem, truncateString(firstLine(it.Text), 160), "Clipboard", catalog.CopyText{Text: it.Text})
	}
	return out
}

// LoadCliphist reads the listing of cliphist when it is installed. Lines
// come as "<id>\t<content>", newest first.
func LoadCliphist() ([]string, error) {
	path, err := exec.LookPath("cliphist")
	if err != nil {
		return nil, err
	}
	out, err := runCapture(path, "list")
	if err != nil {
		return nil, err
	}

	var entries []string
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) == 2 {
			entries = append(entries, parts[1])
		}
	}
	return entries, sc.Err()
}
