package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"sheetgrip/internal/config"
	"sheetgrip/internal/domain"
	"sheetgrip/internal/eventbus"
	"sheetgrip/internal/i18n"
	"sheetgrip/internal/launcher"
	"sheetgrip/internal/report"
	"sheetgrip/internal/search"
	"sheetgrip/internal/ui"
	"sheetgrip/internal/workbook"
)

var version = "dev"

// AppSettings represents application settings and run execution
type AppSettings struct {
	configPath string
	lang       string
	plain      bool
	format     string
	noColor    bool
	logFile    string
	folder     string
	query      string
}

// Commandline creates the command line parser and parses args
func (a *AppSettings) Commandline(args []string) error {
	app := kingpin.New("sheetgrip", "Find which spreadsheets in a folder contain a value")
	app.Version(version)
	app.HelpFlag.Short('h')
	app.Flag("config", "Configuration file").Short('c').PlaceHolder("PATH").StringVar(&a.configPath)
	app.Flag("lang", "Interface language").Short('L').EnumVar(&a.lang, "en", "zh")
	app.Flag("plain", "Print results instead of starting the interactive interface").Short('p').BoolVar(&a.plain)
	app.Flag("format", "Plain output format").Short('f').Default(string(report.FormatText)).EnumVar(&a.format, report.Formats...)
	app.Flag("no-color", "Disable colored plain output").BoolVar(&a.noColor)
	app.Flag("log-file", "Diagnostic log file").PlaceHolder("PATH").StringVar(&a.logFile)
	app.Arg("folder", "Folder to search").StringVar(&a.folder)
	app.Arg("query", "Value to find").StringVar(&a.query)
	_, err := app.Parse(args)
	return err
}

// Run the application and return the process exit status
func (a *AppSettings) Run() int {
	closeLog := a.setupLogging()
	defer closeLog()

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(a.configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		// Use default config
		cfg = config.DefaultConfig()
	}
	stopRemember := config.RememberFolder(bus, configSvc, cfg)
	defer func() {
		// Deliver the queued events before waiting for the last save
		bus.Close()
		stopRemember()
	}()

	lang := cfg.Language
	if a.lang != "" {
		lang = a.lang
	}
	tr := i18n.New(i18n.FromEnvironment(lang))

	if a.plain {
		return a.runPlain(ctx, bus, cfg, tr)
	}
	return a.runTUI(ctx, bus, cfg, tr)
}

func (a *AppSettings) runPlain(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, tr *i18n.Translator) int {
	if a.noColor {
		color.NoColor = true
	}
	format, err := report.ParseFormat(a.format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return report.ExitFailed
	}

	printer := report.NewPrinter(os.Stdout, os.Stderr, format, tr)
	svc := search.NewService(
		search.MultiNotifier{printer, search.NewBusNotifier(bus)},
		search.WithExtensions(readableExtensions(cfg.Extensions, workbook.Default())),
	)
	defer svc.Shutdown()

	return report.Run(ctx, svc, domain.SearchRequest{Folder: a.folder, Query: a.query}, printer)
}

func (a *AppSettings) runTUI(ctx context.Context, bus eventbus.EventBus, cfg *config.Config, tr *i18n.Translator) int {
	opener, err := launcher.New(cfg.UISettings.OpenCommand)
	if err != nil {
		log.Printf("Ignoring open_command: %v", err)
		opener, _ = launcher.New("")
	}

	svc := search.NewService(
		search.NewBusNotifier(bus),
		search.WithExtensions(readableExtensions(cfg.Extensions, workbook.Default())),
	)
	defer svc.Shutdown()
	defer search.Listen(ctx, bus, svc)()

	model := ui.NewModel(bus, cfg, tr, opener)
	model.Prefill(a.folder, a.query, a.folder != "" && a.query != "")

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward search events to the UI; Send blocks until the loop takes
	// them, which keeps matches and progress in publish order
	for _, et := range eventbus.SearchEvents {
		unsubscribe := bus.Subscribe(et, func(e eventbus.DomainEvent) {
			p.Send(ui.EventMsg{Event: e})
		})
		defer unsubscribe()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return report.ExitInterrupted
		}
		fmt.Printf("Error running program: %v\n", err)
		return report.ExitFailed
	}
	return report.ExitOK
}

// readableExtensions drops configured extensions no workbook reader handles.
// An empty result falls back to the default extensions.
func readableExtensions(exts []string, readers *workbook.Registry) []string {
	var out []string
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !readers.Supports(ext) {
			log.Printf("Ignoring extension %s: no reader for it", ext)
			continue
		}
		out = append(out, ext)
	}
	return out
}

// setupLogging sends the log to a file; a terminal UI cannot log to the
// screen it draws on
func (a *AppSettings) setupLogging() func() {
	path := a.logFile
	if path == "" {
		path = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
		logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(logFile)
			return func() { logFile.Close() }
		}
	}
	if a.plain {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	return func() {}
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sheetgrip", "sheetgrip.log")
}
