package hn

// Feed identifies one of the ranked story lists.
type Feed string

const (
	Top  Feed = "top"
	Best Feed = "best"
	New  Feed = "new"
	Ask  Feed = "ask"
	Show Feed = "show"
	Job  Feed = "job"
)

type feedInfo struct {
	title    string
	icon     string
	endpoint string
}

var feedCatalogue = map[Feed]feedInfo{
	Top:  {"Top Stories", "🔥", "topstories"},
	Best: {"Best Stories", "⭐", "beststories"},
	New:  {"New Stories", "🆕", "newstories"},
	Ask:  {"Ask HN", "❓", "askstories"},
	Show: {"Show HN", "🎯", "showstories"},
	Job:  {"Jobs", "💼", "jobstories"},
}

// Feeds returns every feed in navigation order.
func Feeds() []Feed {
	return []Feed{Top, Best, New, Ask, Show, Job}
}

// ParseFeed maps a user-supplied name to a Feed. The "<name>stories" form
// used by the API is accepted too.
func ParseFeed(name string) (Feed, bool) {
	f := Feed(name)
	if _, ok := feedCatalogue[f]; ok {
		return f, true
	}
	for f, info := range feedCatalogue {
		if info.endpoint == name {
			return f, true
		}
	}
	return "", false
}

// Valid reports whether f is part of the catalogue.
func (f Feed) Valid() bool {
	_, ok := feedCatalogue[f]
	return ok
}

// Title is the display title, e.g. "Top Stories".
func (f Feed) Title() string {
	return feedCatalogue[f].title
}

// Icon is the emoji shown next to the title.
func (f Feed) Icon() string {
	return feedCatalogue[f].icon
}

func (f Feed) endpoint() string {
	return feedCatalogue[f].endpoint
}
