// Package reader shows what "open" points at inside the terminal: external
// articles reduced to their readable content, and self-hosted discussions
// with their top-level comments.
package reader

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	readability "github.com/go-shiori/go-readability"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/logging"
	"github.com/vidyasagar/devnews/internal/present"
)

const (
	cacheSize       = 64
	commentLimit    = 20
	defaultWidth    = 80
	minContentWidth = 20
	maxContentWidth = 100
)

// Commenter fetches the top-level comments of an item.
type Commenter interface {
	FetchComments(ctx context.Context, item hn.Item, limit int) []hn.Comment
	DiscussionURL(id int) string
}

// Document is a converted page, independent of terminal width.
type Document struct {
	Title    string
	URL      string
	Markdown string
	Links    []Link
	Fetched  time.Duration
}

// Page is a Document rendered for a given width.
type Page struct {
	*Document
	Content string
}

// Reader loads and renders documents. Converted documents are cached by
// address, so reopening an item does not refetch it.
type Reader struct {
	client   *http.Client
	comments Commenter
	cache    *lru.Cache[string, *Document]
	now      func() time.Time

	mu            sync.Mutex
	renderer      *glamour.TermRenderer
	rendererWidth int
}

// New creates a Reader. timeout bounds each article fetch.
func New(comments Commenter, timeout time.Duration) *Reader {
	cache, _ := lru.New[string, *Document](cacheSize)
	return &Reader{
		client:   newHTTPClient(timeout),
		comments: comments,
		cache:    cache,
		now:      time.Now,
	}
}

// Open loads the target of item: its article, or its discussion when it
// has no external link.
func (r *Reader) Open(ctx context.Context, item hn.Item, width int) (*Page, error) {
	if item.SelfHosted() {
		return r.Discussion(ctx, item, width)
	}
	return r.Article(ctx, item.URL, width)
}

// Article fetches rawURL and renders its readable content.
func (r *Reader) Article(ctx context.Context, rawURL string, width int) (*Page, error) {
	if doc, ok := r.cache.Get(rawURL); ok {
		return r.render(doc, width), nil
	}

	resp, err := fetch(ctx, r.client, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := extract(resp)
	if err != nil {
		return nil, err
	}
	logging.Debug("article loaded", "url", rawURL, "took", resp.Duration, "links", len(doc.Links))
	r.cache.Add(rawURL, doc)
	return r.render(doc, width), nil
}

// Discussion renders the item's own text followed by its top-level
// comments.
func (r *Reader) Discussion(ctx context.Context, item hn.Item, width int) (*Page, error) {
	key := "item:" + strconv.Itoa(item.ID)
	if doc, ok := r.cache.Get(key); ok {
		return r.render(doc, width), nil
	}

	start := time.Now()
	comments := r.comments.FetchComments(ctx, item, commentLimit)
	doc, err := r.discussion(item, comments)
	if err != nil {
		return nil, err
	}
	doc.Fetched = time.Since(start)
	r.cache.Add(key, doc)
	return r.render(doc, width), nil
}

func (r *Reader) discussion(item hn.Item, comments []hn.Comment) (*Document, error) {
	now := r.now()
	conv := &converter{}
	var md strings.Builder

	title := item.Title
	if title == "" {
		title = fmt.Sprintf("Item %d", item.ID)
	}
	md.WriteString("# " + title + "\n\n")

	meta := fmt.Sprintf("%d points by %s", item.Score, item.By)
	if age := present.RelativeAge(item.Time, now); age != "" {
		meta += " · " + age
	}
	md.WriteString("*" + meta + "*\n\n")

	if item.Text != "" {
		body, err := conv.convert(item.Text)
		if err != nil {
			return nil, err
		}
		md.WriteString(body + "\n")
	}

	md.WriteString("---\n\n")
	if len(comments) == 0 {
		md.WriteString("*No comments yet.*\n")
	} else {
		fmt.Fprintf(&md, "## Comments (%d of %d)\n\n", len(comments), item.Descendants)
	}
	for _, cm := range comments {
		body, err := conv.convert(cm.Text)
		if err != nil {
			logging.Debug("skipping unparseable comment", "id", cm.ID, "err", err)
			continue
		}
		header := "**" + cm.By + "**"
		if age := present.RelativeAge(cm.Time, now); age != "" {
			header += " · " + age
		}
		md.WriteString(header + "\n\n" + body + "\n")
	}

	return &Document{
		Title:    title,
		URL:      r.comments.DiscussionURL(item.ID),
		Markdown: md.String(),
		Links:    conv.links,
	}, nil
}

// extract reduces an HTML response to its readable article. Other content
// types are shown verbatim in a code block.
func extract(resp *response) (*Document, error) {
	if !isHTML(resp.ContentType) {
		return &Document{
			Title:    resp.FinalURL,
			URL:      resp.FinalURL,
			Markdown: "```\n" + strings.TrimRight(string(resp.Body), "\n") + "\n```\n",
			Fetched:  resp.Duration,
		}, nil
	}

	base, err := url.Parse(resp.FinalURL)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}

	article, err := readability.FromReader(bytes.NewReader(resp.Body), base)
	if err != nil {
		return nil, fmt.Errorf("extracting article: %w", err)
	}

	body, links, err := toMarkdown(article.Content, base)
	if err != nil {
		return nil, err
	}

	var md strings.Builder
	title := article.Title
	if title == "" {
		title = resp.FinalURL
	}
	md.WriteString("# " + title + "\n\n")
	if article.Byline != "" {
		md.WriteString("*" + article.Byline + "*\n\n")
	}
	md.WriteString("---\n\n" + body)

	return &Document{
		Title:    title,
		URL:      resp.FinalURL,
		Markdown: md.String(),
		Links:    links,
		Fetched:  resp.Duration,
	}, nil
}

// Render styles an already loaded document for a new width.
func (r *Reader) Render(doc *Document, width int) *Page {
	return r.render(doc, width)
}

// wrapWidth is the word-wrap column for a pane of the given width.
func wrapWidth(width int) int {
	if width <= 0 {
		width = defaultWidth
	}
	return max(min(width-4, maxContentWidth), minContentWidth)
}

// render styles doc with glamour. The renderer is rebuilt only when the
// width changes; on failure the raw markdown is shown.
func (r *Reader) render(doc *Document, width int) *Page {
	width = wrapWidth(width)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderer == nil || r.rendererWidth != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logging.Warn("markdown renderer unavailable", "err", err)
			return &Page{Document: doc, Content: doc.Markdown}
		}
		r.renderer = tr
		r.rendererWidth = width
	}

	out, err := r.renderer.Render(doc.Markdown)
	if err != nil {
		logging.Warn("markdown render failed", "title", doc.Title, "err", err)
		return &Page{Document: doc, Content: doc.Markdown}
	}
	return &Page{Document: doc, Content: out}
}
