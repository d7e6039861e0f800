package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/examvault/internal/adapter"
	"github.com/mmcdole/examvault/internal/adapter/source"
	"github.com/mmcdole/examvault/internal/domain"
	"github.com/mmcdole/examvault/internal/library"
	"github.com/mmcdole/examvault/internal/metadata"
	"github.com/mmcdole/examvault/internal/store"
	"github.com/mmcdole/examvault/internal/tui"
	"github.com/mmcdole/examvault/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

type options struct {
	list       bool
	query      string
	clearCache bool
	saveConfig bool
}

func main() {
	var showVersion bool
	var opts options
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&opts.list, "list", false, "print the document list and exit")
	flag.StringVar(&opts.query, "q", "", "filter the printed list (with -list)")
	flag.BoolVar(&opts.clearCache, "clear-cache", false, "delete the saved document list and exit")
	flag.BoolVar(&opts.saveConfig, "save-config", false, "write the effective configuration to the config file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("examvault %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired components shared by both modes
type app struct {
	cfg      *adapter.Config
	logger   *slog.Logger
	store    *store.DocumentStore
	sync     *library.Synchronizer
	enricher *metadata.Enricher
}

func (a *app) Close() {
	a.enricher.Close()
	if err := a.store.Close(); err != nil {
		a.logger.Error("failed to close store", "error", err)
	}
}

func run(opts options) error {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting examvault", "version", Version, "server", cfg.Server.URL)

	if opts.saveConfig {
		if err := adapter.SaveConfig(cfg); err != nil {
			return err
		}
		fmt.Println("✓ Configuration saved!")
		return nil
	}

	if opts.clearCache {
		if err := adapter.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("✓ Saved files cleared")
		return nil
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	// Fall back to plain output when there is no terminal to draw on
	if opts.list || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runList(a, opts.query, os.Stdout)
	}
	return runTUI(a)
}

func newApp(cfg *adapter.Config, logger *slog.Logger) (*app, error) {
	client, err := source.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create source client: %w", err)
	}

	docStore, err := store.NewDocumentStore(cfg.Cache.Dir, cfg.Server.URL)
	if err != nil {
		// The list still works without a snapshot
		logger.Warn("cache unavailable, continuing without it", "error", err)
		docStore, _ = store.NewDocumentStore("", cfg.Server.URL)
	}

	prober := metadata.NewHTTPProber(cfg.Probe.Timeout, cfg.Probe.UserAgent, logger)
	enricher := metadata.NewEnricher(prober, logger)

	sync := library.NewSynchronizer(client, docStore, cfg.Sync.PageSize, logger)
	sync.Subscribe(enricher)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    docStore,
		sync:     sync,
		enricher: enricher,
	}, nil
}

func runTUI(a *app) error {
	listCh := make(chan domain.ListState, 16)
	sizeCh := make(chan string, 64)
	a.sync.Subscribe(tui.NewChannelObserver(listCh))
	a.enricher.SetUpdateFunc(tui.SizeNotifier(sizeCh))

	viewer := adapter.NewOpener(a.cfg.Viewer.Command, a.cfg.Viewer.Args, a.logger)
	model := tui.NewModel(a.sync, a.enricher, viewer, listCh, sizeCh, a.logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	a.logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// runList loads page 1, waits for size probes up to the probe timeout and
// prints the filtered list.
func runList(a *app, query string, w io.Writer) error {
	interactive := term.IsTerminal(int(os.Stderr.Fd()))

	err := withSpinner(interactive, "Fetching files...", func() error {
		ctx, cancel := listContext(a.cfg.Server)
		defer cancel()
		return a.sync.LoadInitial(ctx)
	})

	var notice *library.Notice
	switch {
	case err == nil:
	case errors.As(err, &notice):
		fmt.Fprintf(os.Stderr, "Warning: %v\n", notice)
	default:
		return err
	}

	docs := a.sync.Filtered(query)
	if len(docs) == 0 {
		fmt.Fprintln(w, "No files found")
		return nil
	}

	_ = withSpinner(interactive, "Checking file sizes...", func() error {
		waitForSizes(a.enricher, a.cfg.Probe.Timeout)
		return nil
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SUBJECT\tBRANCH\tTYPE\tSIZE\tURL")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.Subject, domain.BranchFullForm(d.Branch), d.Type, a.enricher.Label(d.URL), d.URL)
	}
	return tw.Flush()
}

// listContext bounds the first page fetch by every retry attempt
func listContext(cfg adapter.ServerConfig) (context.Context, context.CancelFunc) {
	if cfg.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), cfg.Timeout*time.Duration(cfg.RetryMax+1))
}

// waitForSizes blocks until every probe resolves or timeout elapses
func waitForSizes(e *metadata.Enricher, timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		e.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}

// withSpinner runs fn, animating a spinner on stderr when interactive
func withSpinner(interactive bool, label string, fn func() error) error {
	if !interactive {
		return fn()
	}

	resultCh := make(chan error, 1)
	go func() { resultCh <- fn() }()

	frame := 0
	fmt.Fprintf(os.Stderr, "\r%s %s", styles.SpinnerFrames[frame], label)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Fprint(os.Stderr, clearSpinnerLine)
			return err
		case <-ticker.C:
			frame++
			fmt.Fprintf(os.Stderr, "\r%s %s", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], label)
		}
	}
}
