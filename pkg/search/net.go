package search

import (
	"net/url"
	"strings"
)

const DefaultSearchURL = "https://google.com/search?q=%s"

var urlSuffixes = []string{".com", ".net", ".org", ".edu", ".gov", ".io", ".co", ".me", ".app", ".dev"}

// LooksLikeURL is the heuristic behind "Open Website" results: an explicit
// http(s) scheme with a host, or a bare name ending in a known domain.
func LooksLikeURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" || strings.ContainsAny(s, " \t") {
		return false
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		u, err := url.ParseRequestURI(s)
		return err == nil && u.Host != ""
	}
	for _, suffix := range urlSuffixes {
		if strings.HasSuffix(lower, suffix) && len(lower) > len(suffix) {
			return true
		}
	}
	return false
}

// WebsiteURL adds https:// when raw carries no scheme.
func WebsiteURL(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(strings.ToLower(s), "http") {
		return s
	}
	return "https://" + s
}

// SearchURL fills the %s placeholder of template with query, words joined
// by '+'. A trailing '?' on the query is dropped.
func SearchURL(template, query string) string {
	if template == "" {
		template = DefaultSearchURL
	}
	q := strings.TrimSpace(query)
	q = strings.TrimSpace(strings.TrimSuffix(q, "?"))
	q = url.QueryEscape(strings.Join(strings.Fields(q), " "))
	if !strings.Contains(template, "%s") {
		return template + q
	}
	return strings.ReplaceAll(template, "%s", q)
}
