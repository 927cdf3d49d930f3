// Package cli holds the devnews command tree: the TUI by default, plus
// plain-text subcommands that drive the same controller.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vidyasagar/devnews/internal/app"
	"github.com/vidyasagar/devnews/internal/controller"
	"github.com/vidyasagar/devnews/internal/hn"
	"github.com/vidyasagar/devnews/internal/logging"
	"github.com/vidyasagar/devnews/internal/personal"
	"github.com/vidyasagar/devnews/internal/reader"
	"github.com/vidyasagar/devnews/internal/storage"
	"github.com/vidyasagar/devnews/internal/theme"
)

// globalOptions are the persistent flags. Zero values leave the config
// file's setting alone.
type globalOptions struct {
	configPath string
	theme      string
	feed       string
	pageSize   int
	storage    string
	dataDir    string
	apiBase    string
	debug      bool
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "devnews",
		Short:         "devnews - Hacker News in your terminal",
		Long:          "devnews browses Hacker News feeds, bookmarks and reading history from the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: platform config dir)")
	flags.StringVar(&opts.theme, "theme", "", "color theme ("+strings.Join(theme.List(), ", ")+")")
	flags.StringVar(&opts.feed, "feed", "", "feed to open (top, best, new, ask, show, job)")
	flags.IntVar(&opts.pageSize, "page-size", 0, "stories per page")
	flags.StringVar(&opts.storage, "storage", "", "storage backend (sqlite, json, memory)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	flags.StringVar(&opts.apiBase, "api-base", "", "content API base URL")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")

	cmd.AddCommand(
		newFeedCommand(opts),
		newBookmarksCommand(opts),
		newHistoryCommand(opts),
		newToggleCommand(opts),
		newClearHistoryCommand(opts),
	)

	return cmd
}

// env is everything a command needs, built from config and flags.
type env struct {
	cfg    *storage.Config
	feed   hn.Feed
	client *hn.Client
	me     *personal.State
	ctl    *controller.Controller
	closer io.Closer
}

func (e *env) Close() {
	if err := e.closer.Close(); err != nil {
		logging.Warn("closing storage", "err", err)
	}
	logging.Close()
}

// open loads the config, applies flag overrides and wires the stack.
func (o *globalOptions) open() (*env, error) {
	var (
		cfg *storage.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = storage.LoadConfigFile(o.configPath)
	} else {
		cfg, err = storage.LoadConfig()
	}
	if err != nil {
		return nil, err
	}
	o.override(cfg)

	feed, ok := hn.ParseFeed(cfg.DefaultFeed)
	if !ok {
		return nil, fmt.Errorf("%w: %q", controller.ErrUnknownFeed, cfg.DefaultFeed)
	}
	if !theme.Set(cfg.Theme) {
		return nil, fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(theme.List(), ", "))
	}

	dataDir := o.dataDir
	if dataDir == "" {
		if dataDir, err = storage.DataDir(); err != nil {
			return nil, err
		}
	}

	level := log.InfoLevel
	if o.debug {
		level = log.DebugLevel
	}
	if err := logging.Init(dataDir, level); err != nil {
		return nil, err
	}

	kv, closer, err := storage.Open(cfg.Storage, dataDir)
	if err != nil {
		logging.Close()
		return nil, err
	}

	client := hn.NewClient(hn.Options{
		BaseURL:           cfg.APIBase,
		DiscussionBase:    cfg.DiscussionBase,
		Timeout:           cfg.Timeout(),
		MaxConcurrent:     cfg.MaxConcurrentFetches,
		RequestsPerSecond: cfg.RequestsPerSecond,
	})
	me := personal.Load(kv)
	ctl := controller.New(client, me, controller.Options{
		PageSize:     cfg.PageSize,
		HistoryLimit: cfg.HistoryViewLimit,
	})

	logging.Debug("environment ready", "storage", cfg.Storage, "data_dir", dataDir, "feed", feed)
	return &env{cfg: cfg, feed: feed, client: client, me: me, ctl: ctl, closer: closer}, nil
}

func (o *globalOptions) override(cfg *storage.Config) {
	if o.theme != "" {
		cfg.Theme = o.theme
	}
	if o.feed != "" {
		cfg.DefaultFeed = o.feed
	}
	if o.pageSize > 0 {
		cfg.PageSize = o.pageSize
	}
	if o.storage != "" {
		cfg.Storage = o.storage
	}
	if o.apiBase != "" {
		cfg.APIBase = strings.TrimSuffix(o.apiBase, "/")
	}
}

// runTUI starts the terminal interface.
func runTUI(ctx context.Context, opts *globalOptions) error {
	e, err := opts.open()
	if err != nil {
		return err
	}
	defer e.Close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := app.New(app.Options{
		Controller: e.ctl,
		Reader:     reader.New(e.client, e.cfg.Timeout()),
		Feed:       e.feed,
		Context:    ctx,
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
