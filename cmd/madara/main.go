package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/madara"
	"github.com/fwojciec/madara/extract"
	"github.com/fwojciec/madara/fs"
	"github.com/fwojciec/madara/goquery"
	madarahttp "github.com/fwojciec/madara/http"
	"github.com/fwojciec/madara/rod"
	"github.com/fwojciec/madara/runner"
	madaraslog "github.com/fwojciec/madara/slog"
	"github.com/fwojciec/madara/sqlite"
	"github.com/fwojciec/madara/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(); --db overrides it.
	DBPath string

	// SQLite database used by the library service.
	DB *sqlite.DB

	// Fetcher overrides the HTTP or browser fetcher when set.
	Fetcher madara.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Commands grouped by what they need wired.
var (
	siteCommands = map[string]bool{
		"popular": true, "latest": true, "search": true, "info": true,
		"chapters": true, "pages": true, "genres": true, "parse": true, "sync": true,
	}
	networkCommands = map[string]bool{
		"probe": true, "popular": true, "latest": true, "search": true, "info": true,
		"chapters": true, "pages": true, "genres": true, "sync": true,
	}
	libraryCommands = map[string]bool{
		"sync": true, "library": true, "export": true,
	}
)

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("madara"),
		kong.Description("Extract manga metadata from Madara theme sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'madara --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Site profiles
	deps.Sites = madara.NewRegistry(madara.BuiltinSites()...)
	if cli.SitesFile != "" {
		sites, err := yaml.LoadFile(cli.SitesFile)
		if err != nil {
			return fmt.Errorf("failed to load site profiles: %w", err)
		}
		for _, site := range sites {
			deps.Sites.Register(site)
		}
	}

	if siteCommands[cmd] {
		site, err := deps.Sites.Get(cli.Site)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Run 'madara sites' to see known profiles\n")
			return err
		}
		deps.Site = site
	}

	// Extraction
	loader := goquery.NewLoader()
	var p madara.Parser = extract.NewParser(loader)
	if cli.Verbose {
		p = madaraslog.NewLoggingParser(p, logger)
	}
	deps.Parser = p
	deps.Detector = goquery.NewDetector()

	// Transport
	if networkCommands[cmd] {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher, err = newFetcher(cli)
			if err != nil {
				return err
			}
			defer fetcher.Close()
		}
		if cli.Verbose {
			fetcher = madaraslog.WrapFetcher(fetcher, logger)
		}
		deps.Fetcher = fetcher

		if siteCommands[cmd] {
			var src madara.Source = &runner.Runner{
				Context: deps.Site,
				Fetcher: fetcher,
				Parser:  p,
				Loader:  loader,
				Log: func(format string, args ...any) {
					fmt.Fprintf(stderr, format+"\n", args...)
				},
			}
			if cli.Verbose {
				src = madaraslog.NewLoggingSource(src, logger)
			}
			deps.Source = src
		}
	}

	// Library
	if libraryCommands[cmd] {
		if cli.DB != "" {
			m.DBPath = cli.DB
		}
		if err := os.MkdirAll(filepath.Dir(m.DBPath), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MADARA_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.Library = sqlite.NewLibraryService(m.DB)
		deps.NewStore = func(dir, name string) madara.EntryStore {
			return fs.NewFileStore(dir, name)
		}
	}

	return kongCtx.Run(deps)
}

func newFetcher(cli *CLI) (madara.Fetcher, error) {
	if cli.Browser {
		fetcher, err := rod.NewFetcher()
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return fetcher, nil
	}
	return madarahttp.NewFetcher(
		madarahttp.WithLimiter(madarahttp.NewDomainLimiter(cli.RPS, 1)),
	), nil
}

func defaultDBPath() string {
	if path := os.Getenv("MADARA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "library.db"
	}
	return filepath.Join(home, ".madara", "library.db")
}
