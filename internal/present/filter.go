// Package present turns loaded items into the view model the terminal UI
// and the CLI draw: filtered, ranked cards with derived labels.
package present

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/vidyasagar/devnews/internal/hn"
)

// Normalize canonicalises a search query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Matches reports whether item matches an already normalised query: the
// title, author or link domain contains it, ignoring case.
func Matches(item hn.Item, query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.By), query) ||
		strings.Contains(Domain(item.URL), query)
}

// Filter returns the items matching query, in input order. The query is
// normalised first.
func Filter(items []hn.Item, query string) []hn.Item {
	q := Normalize(query)
	out := make([]hn.Item, 0, len(items))
	for _, it := range items {
		if Matches(it, q) {
			out = append(out, it)
		}
	}
	return out
}

// Domain returns the lower-cased host of rawURL without a leading "www.",
// or "" if rawURL is empty or has no host.
func Domain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

var ageUnits = []struct {
	seconds int64
	suffix  string
}{
	{31536000, "y"},
	{2592000, "mo"},
	{604800, "w"},
	{86400, "d"},
	{3600, "h"},
	{60, "m"},
}

// RelativeAge renders the age of a unix timestamp, e.g. "4h ago". A zero
// timestamp yields "".
func RelativeAge(unix int64, now time.Time) string {
	if unix == 0 {
		return ""
	}
	elapsed := now.Unix() - unix
	for _, u := range ageUnits {
		if n := elapsed / u.seconds; n >= 1 {
			return fmt.Sprintf("%d%s ago", n, u.suffix)
		}
	}
	return "just now"
}
