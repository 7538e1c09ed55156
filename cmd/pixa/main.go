package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pixa/internal/config"
	"github.com/mmcdole/pixa/internal/domain"
	"github.com/mmcdole/pixa/internal/history"
	"github.com/mmcdole/pixa/internal/log"
	"github.com/mmcdole/pixa/internal/opener"
	"github.com/mmcdole/pixa/internal/paging"
	"github.com/mmcdole/pixa/internal/pixabay"
	"github.com/mmcdole/pixa/internal/trigger"
	"github.com/mmcdole/pixa/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// noticeBuffer is how many notices may queue before the TUI drains them
const noticeBuffer = 16

type options struct {
	plain   bool
	pages   int
	trigger string
	query   string
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&opts.plain, "plain", false, "print results as text instead of starting the TUI")
	flag.IntVar(&opts.pages, "pages", 1, "pages to print in plain mode")
	flag.StringVar(&opts.trigger, "trigger", "", "paging trigger: manual or auto (overrides config)")
	flag.Parse()

	if showVersion {
		fmt.Printf("pixa %s\n", Version)
		return
	}
	opts.query = strings.Join(flag.Args(), " ")

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.trigger != "" {
		cfg.UI.Trigger = opts.trigger
	}

	// Setup logger
	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting pixa", "version", Version)

	plain := opts.plain || !term.IsTerminal(int(os.Stdout.Fd()))

	// Check if configured
	if !cfg.IsConfigured() {
		if plain {
			return fmt.Errorf("%w: set PIXA_API_KEY or run pixa in a terminal", domain.ErrMissingAPIKey)
		}
		if err := runSetupFlow(cfg, logger); err != nil {
			return err
		}
	}

	client := newClient(cfg, logger)

	if plain {
		return runPlain(client, cfg, opts, logger)
	}
	return runTUI(client, cfg, opts, logger)
}

func newClient(cfg *config.Config, logger *slog.Logger) *pixabay.Client {
	return pixabay.NewClient(pixabay.Options{
		BaseURL:     cfg.API.BaseURL,
		Key:         cfg.API.Key,
		ImageType:   cfg.API.ImageType,
		Orientation: cfg.API.Orientation,
		SafeSearch:  cfg.API.SafeSearch,
		Timeout:     cfg.API.Timeout,
	}, logger)
}

func runTUI(client *pixabay.Client, cfg *config.Config, opts options, logger *slog.Logger) error {
	kind, err := trigger.ParseKind(cfg.UI.Trigger)
	if err != nil {
		return err
	}

	// Search history is optional; a broken store only loses suggestions
	store, err := history.Open(cfg.History.File, cfg.History.Limit)
	if err != nil {
		logger.Warn("history unavailable", "file", cfg.History.File, "error", err)
		store, _ = history.Open("", cfg.History.Limit)
	}
	defer store.Close()

	notices := make(chan domain.Notice, noticeBuffer)
	ctrl := paging.NewController(client, tui.NewChannelSink(notices), paging.Options{
		PerPage:        cfg.API.PerPage,
		EndNoticeDelay: cfg.UI.NoticeDelay(),
	}, logger)

	model := tui.NewModel(tui.Deps{
		Controller:   ctrl,
		Trigger:      trigger.New(kind, ctrl),
		Notices:      notices,
		History:      store,
		Opener:       opener.New(cfg.Viewer.Command, cfg.Viewer.Args, logger),
		FetchTimeout: cfg.API.Timeout,
		PrefetchRows: cfg.UI.PrefetchRows,
		InitialQuery: opts.query,
		Logger:       logger,
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "trigger", kind)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
