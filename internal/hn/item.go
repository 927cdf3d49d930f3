package hn

import "time"

// Item is a story, job, poll or comment as returned by the item endpoint.
// Every field except ID may be absent; absent numbers decode as zero.
type Item struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	By          string `json:"by"`
	URL         string `json:"url"`  // empty for self-hosted discussions
	Text        string `json:"text"` // HTML body for Ask HN etc.
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"` // comment count
	Time        int64  `json:"time"`
	Kids        []int  `json:"kids"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

// Posted returns the submission time, or the zero time if unknown.
func (i Item) Posted() time.Time {
	if i.Time == 0 {
		return time.Time{}
	}
	return time.Unix(i.Time, 0)
}

// SelfHosted reports whether the item has no external link.
func (i Item) SelfHosted() bool {
	return i.URL == ""
}

// Comment is a top-level reply shown in the discussion reader.
type Comment struct {
	ID   int
	By   string
	Text string // HTML
	Time int64
}
