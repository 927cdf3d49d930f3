package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasagar/devnews/internal/controller"
	"github.com/vidyasagar/devnews/internal/hn"
)

// fakeAPI serves 25 top stories and fails the new feed.
func fakeAPI(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, ".json")
		switch {
		case path == "/topstories":
			ids := make([]string, 25)
			for i := range ids {
				ids[i] = fmt.Sprint(i + 1)
			}
			fmt.Fprint(w, "["+strings.Join(ids, ",")+"]")
		case path == "/newstories":
			http.Error(w, "down", http.StatusBadGateway)
		case strings.HasPrefix(path, "/item/"):
			var id int
			fmt.Sscanf(strings.TrimPrefix(path, "/item/"), "%d", &id)
			fmt.Fprintf(w, `{"id":%d,"title":"Story %d","by":"alice","score":%d,"url":"https://www.example.com/%d","time":1700000000}`, id, id, id*10, id)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

type harness struct {
	t    *testing.T
	dir  string
	base string
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, dir: t.TempDir(), base: fakeAPI(t)}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand("test")
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(h.dir, "config.json"),
		"--data-dir", h.dir,
		"--storage", "json",
		"--api-base", h.base,
	}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.0.0")
	assert.Equal(t, "devnews", cmd.Use)
	assert.Equal(t, "1.0.0", cmd.Version)

	for _, name := range []string{"config", "theme", "feed", "page-size", "storage", "data-dir", "api-base"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
	for _, sub := range []string{"feed", "bookmarks", "history", "toggle", "clear-history"} {
		found, _, err := cmd.Find([]string{sub})
		require.NoError(t, err)
		assert.Equal(t, sub, found.Name())
	}
}

func TestFeedCommandPages(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("feed", "top", "--page-size", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Top Stories")
	assert.Contains(t, out, "10 stories")
	assert.Contains(t, out, "  1.   Story 1 (example.com)")
	assert.Contains(t, out, "10 points by alice")
	assert.Contains(t, out, "More stories available")
	assert.NotContains(t, out, "Story 11")

	out, err = h.run("feed", "top", "--page-size", "10", "--pages", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "25 stories")
	assert.Contains(t, out, "Story 25")
	assert.NotContains(t, out, "More stories available")
}

func TestFeedCommandQuery(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("feed", "--query", "  STORY 2", "--page-size", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "7 stories") // 2, 20-25
	assert.NotContains(t, out, "Story 1 ")
}

func TestFeedCommandErrors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("feed", "nope")
	assert.ErrorIs(t, err, controller.ErrUnknownFeed)

	_, err = h.run("feed", "new")
	assert.ErrorIs(t, err, hn.ErrNetwork)

	_, err = h.run("toggle", "abc")
	assert.Error(t, err)
}

func TestBookmarksPersistAcrossRuns(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("bookmarks")
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing here.")

	out, err = h.run("toggle", "3")
	require.NoError(t, err)
	assert.Equal(t, "Added to bookmarks: 3 (1 bookmarked)\n", out)

	out, err = h.run("bookmarks")
	require.NoError(t, err)
	assert.Contains(t, out, "1 story")
	assert.Contains(t, out, "★ Story 3")

	out, err = h.run("toggle", "3")
	require.NoError(t, err)
	assert.Equal(t, "Removed from bookmarks: 3 (0 bookmarked)\n", out)
}

func TestHistoryCommands(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("history")
	require.NoError(t, err)
	assert.Contains(t, out, "History")
	assert.Contains(t, out, "Nothing here.")

	out, err = h.run("clear-history")
	require.NoError(t, err)
	assert.Equal(t, "History cleared\n", out)
}
