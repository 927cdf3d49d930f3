package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vidyasagar/devnews/internal/controller"
	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/present"
)

func newFeedCommand(opts *globalOptions) *cobra.Command {
	var (
		pages int
		query string
	)

	cmd := &cobra.Command{
		Use:   "feed [name]",
		Short: "Print a feed",
		Long:  "Print the first pages of a feed (top, best, new, ask, show, job) as text.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.Close()

			feed := e.feed
			if len(args) == 1 {
				f, ok := hn.ParseFeed(args[0])
				if !ok {
					return fmt.Errorf("%w: %q", controller.ErrUnknownFeed, args[0])
				}
				feed = f
			}

			ctx := commandContext(cmd)
			t, err := e.ctl.ActivateFeed(feed)
			if err != nil {
				return err
			}
			u := controller.Drive(ctx, e.ctl, t)
			if err := failure(u); err != nil {
				return err
			}
			for i := 1; i < pages; i++ {
				t, err := e.ctl.LoadMore()
				if err != nil {
					return err
				}
				if t == nil {
					break
				}
				u = controller.Drive(ctx, e.ctl, t)
			}
			if query != "" {
				u = e.ctl.SetQuery(query)
			}

			printPage(cmd.OutOrStdout(), u.Page)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to load")
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show stories matching title, author or domain")
	return cmd
}

func newBookmarksCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bookmarks",
		Short: "Print bookmarked stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollection(cmd, opts, (*controller.Controller).ShowBookmarks)
		},
	}
}

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Print recently read stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollection(cmd, opts, (*controller.Controller).ShowHistory)
		},
	}
}

func runCollection(cmd *cobra.Command, opts *globalOptions, show func(*controller.Controller) *controller.Task) error {
	e, err := opts.open()
	if err != nil {
		return err
	}
	defer e.Close()

	u := controller.Drive(commandContext(cmd), e.ctl, show(e.ctl))
	printPage(cmd.OutOrStdout(), u.Page)
	return nil
}

func newToggleCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Add or remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid story id %q", args[0])
			}
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.Close()

			u := e.ctl.ToggleBookmark(id)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d (%d bookmarked)\n", u.Notice.Text, id, u.Page.BookmarkCount)
			return nil
		},
	}
}

func newClearHistoryCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-history",
		Short: "Forget every read story",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.open()
			if err != nil {
				return err
			}
			defer e.Close()

			u := e.ctl.ClearHistory()
			fmt.Fprintln(cmd.OutOrStdout(), u.Notice.Text)
			return nil
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// failure turns a failed load into an error so the process exits non-zero.
func failure(u controller.Update) error {
	if u.Notice != nil && u.Notice.Kind == controller.Failure {
		return fmt.Errorf("%s: %w", u.Notice.Text, hn.ErrNetwork)
	}
	return nil
}

// printPage writes p as plain text, one card per block.
func printPage(w io.Writer, p present.Page) {
	head := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(w, "%s  %s\n\n", head.Render(p.Title), p.CountLabel())

	if p.Empty {
		if p.Query != "" {
			fmt.Fprintf(w, "  No stories match %q.\n", p.Query)
		} else {
			fmt.Fprintln(w, "  Nothing here.")
		}
		return
	}

	for _, c := range p.Cards {
		mark := " "
		if c.Bookmarked {
			mark = "★"
		}
		fmt.Fprintf(w, "%3d. %s %s (%s)\n", c.Rank, mark, c.DisplayTitle(), c.DisplayDomain())
		fmt.Fprintf(w, "       %s\n", c.Meta())
		fmt.Fprintf(w, "       %s\n", c.OpenURL)
	}
	if p.CanLoadMore {
		fmt.Fprintln(w, "\n  More stories available (--pages N).")
	}
}
