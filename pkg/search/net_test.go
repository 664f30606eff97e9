package search

import (
	"testing"

	"github.com/hoppxi/runa/pkg/catalog"
	"github.com/stretchr/testify/assert"
)

func TestLooksLikeURL(t *testing.T) {
	for _, s := range []string{"example.com", "go.dev", "https://x.org/a?b=c", "http://localhost:8080", "news.ycombinator.com"} {
		assert.True(t, LooksLikeURL(s), s)
	}
	for _, s := range []string{"", "hello", "example dot com", ".com", "https://", "file.txt"} {
		assert.False(t, LooksLikeURL(s), s)
	}
}

func TestWebsiteURL(t *testing.T) {
	assert.Equal(t, "https://example.com", WebsiteURL("example.com"))
	assert.Equal(t, "http://example.com", WebsiteURL("http://example.com"))
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://google.com/search?q=open+finder+please", SearchURL("", "open finder please"))
	assert.Equal(t, "https://ddg.gg/?q=what+is+go", SearchURL("https://ddg.gg/?q=%s", "what is go?"))
	assert.Equal(t, "https://s.example/q=a%26b", SearchURL("https://s.example/q=", "a&b"))
}

func TestCandidateResult(t *testing.T) {
	c := Candidate{Kind: Catalog, Entry: catalog.NewEntry("Firefox", "Web Browser", catalog.Launch{Path: "/a/firefox.desktop"}).WithIcon("firefox")}
	assert.Equal(t, Result{
		Name:    "Firefox",
		GUI:     true,
		Type:    "app",
		Source:  "catalog",
		Command: "/a/firefox.desktop",
		Icon:    "firefox",
		Comment: "Web Browser",
	}, c.Result())

	w := website("go.dev")
	assert.Equal(t, "https://go.dev", w.Result().Command)
	assert.Equal(t, "url", w.Result().Type)
}
