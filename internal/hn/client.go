// Package hn is the client for the Hacker News firebase API: ranked
// identifier lists per feed and individual items by identifier.
package hn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/vidyasagar/devnews/internal/logging"
)

const (
	DefaultBaseURL        = "https://hacker-news.firebaseio.com/v0"
	DefaultDiscussionBase = "https://news.ycombinator.com/item?id="
	DefaultTimeout        = 10 * time.Second
	DefaultMaxConcurrent  = 20

	maxListBytes = 4 * 1024 * 1024
	maxItemBytes = 1 * 1024 * 1024
)

var (
	// ErrNetwork means an identifier list could not be fetched or parsed.
	// It is fatal to the feed load that requested it.
	ErrNetwork = errors.New("network error")

	// ErrNotFound means a single item is missing, deleted or unreadable.
	// Callers drop the item and carry on.
	ErrNotFound = errors.New("item not found")
)

// Options configures a Client. Zero values select the defaults.
type Options struct {
	BaseURL           string
	DiscussionBase    string
	Timeout           time.Duration
	MaxConcurrent     int
	RequestsPerSecond float64 // 0 = unlimited
	HTTPClient        *http.Client
}

// Client fetches identifier lists and items.
type Client struct {
	http           *http.Client
	baseURL        string
	discussionBase string
	maxConcurrent  int
	limiter        *rate.Limiter
	log            *log.Logger
}

// NewClient creates an API client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.DiscussionBase == "" {
		opts.DiscussionBase = DefaultDiscussionBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(opts.Timeout)
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = opts.MaxConcurrent
	}

	return &Client{
		http:           httpClient,
		baseURL:        opts.BaseURL,
		discussionBase: opts.DiscussionBase,
		maxConcurrent:  opts.MaxConcurrent,
		limiter:        rate.NewLimiter(limit, burst),
		log:            logging.WithPrefix("hn"),
	}
}

// DiscussionURL is the native comment-thread address for an item.
func (c *Client) DiscussionURL(id int) string {
	return c.discussionBase + strconv.Itoa(id)
}

// OpenURL is where "open" navigates: the external link if present,
// otherwise the discussion thread.
func (c *Client) OpenURL(item Item) string {
	if item.URL != "" {
		return item.URL
	}
	return c.DiscussionURL(item.ID)
}

// ListIDs fetches the ranked identifier list of a feed. Any transport,
// status or decoding failure is reported as ErrNetwork.
func (c *Client) ListIDs(ctx context.Context, feed Feed) ([]int, error) {
	if !feed.Valid() {
		return nil, fmt.Errorf("%w: unknown feed %q", ErrNetwork, feed)
	}

	url := fmt.Sprintf("%s/%s.json", c.baseURL, feed.endpoint())
	body, err := c.get(ctx, url, maxListBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrNetwork, feed.endpoint(), err)
	}

	var ids *[]int
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrNetwork, feed.endpoint(), err)
	}
	if ids == nil {
		return nil, fmt.Errorf("%w: %s returned null", ErrNetwork, feed.endpoint())
	}
	return *ids, nil
}

// FetchItem fetches one item. Every failure, including a null body or a
// deleted item, is reported as ErrNotFound.
func (c *Client) FetchItem(ctx context.Context, id int) (Item, error) {
	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	body, err := c.get(ctx, url, maxItemBytes)
	if err != nil {
		return Item{}, fmt.Errorf("%w: item %d: %v", ErrNotFound, id, err)
	}

	var item *Item
	if err := json.Unmarshal(body, &item); err != nil {
		return Item{}, fmt.Errorf("%w: item %d: %v", ErrNotFound, id, err)
	}
	if item == nil || item.Deleted {
		return Item{}, fmt.Errorf("%w: item %d", ErrNotFound, id)
	}
	if item.ID == 0 {
		item.ID = id
	}
	return *item, nil
}

// FetchItems resolves ids concurrently and returns the items that resolved,
// in the order of ids. Items that fail are logged and omitted.
func (c *Client) FetchItems(ctx context.Context, ids []int) []Item {
	if len(ids) == 0 {
		return nil
	}

	results := make([]*Item, len(ids))

	var g errgroup.Group
	g.SetLimit(c.maxConcurrent)
	for i, id := range ids {
		g.Go(func() error {
			item, err := c.FetchItem(ctx, id)
			if err != nil {
				c.log.Debug("dropping item", "id", id, "err", err)
				return nil
			}
			results[i] = &item
			return nil
		})
	}
	_ = g.Wait()

	items := make([]Item, 0, len(ids))
	for _, r := range results {
		if r != nil {
			items = append(items, *r)
		}
	}
	return items
}

// FetchComments returns up to limit live top-level comments of item.
func (c *Client) FetchComments(ctx context.Context, item Item, limit int) []Comment {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	kids := item.Kids
	if len(kids) > limit {
		kids = kids[:limit]
	}

	var comments []Comment
	for _, it := range c.FetchItems(ctx, kids) {
		if it.Dead || it.Text == "" {
			continue
		}
		comments = append(comments, Comment{
			ID:   it.ID,
			By:   it.By,
			Text: it.Text,
			Time: it.Time,
		})
	}
	return comments
}

func (c *Client) get(ctx context.Context, url string, limit int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}
