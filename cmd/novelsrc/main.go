package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/classify"
	"github.com/fwojciec/novelsrc/finder"
	"github.com/fwojciec/novelsrc/goquery"
	nshttp "github.com/fwojciec/novelsrc/http"
	"github.com/fwojciec/novelsrc/rod"
	"github.com/fwojciec/novelsrc/scrape"
	nslog "github.com/fwojciec/novelsrc/slog"
	"github.com/fwojciec/novelsrc/sqlite"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx := context.Background()

	// A .env file in the working directory may set NOVELSRC_DB.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	SourceService novelsrc.SourceService
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

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("novelsrc"),
		kong.Description("Declarative web novel scraper."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'novelsrc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog := newLogger(cli, stderr)
	defer closeLog()
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NOVELSRC_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.SourceService = nslog.NewLoggingSourceService(sqlite.NewSourceService(m.DB), logger)
	deps.Sources = m.SourceService
	deps.Engine = newEngine(cli.Engine)
	deps.Detector = nslog.NewLoggingDetector(classify.NewDetector(), logger)
	deps.RateLimiter = scrape.NewDomainLimiter(1.0)
	deps.Concurrency = cli.Concurrency
	deps.Fetchers = func(browser bool) (novelsrc.Fetcher, error) {
		if !browser {
			return nslog.NewLoggingFetcher(nshttp.NewFetcher(nshttp.WithTimeout(cli.Timeout)), logger), nil
		}
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return nslog.NewLoggingFetcher(f, logger), nil
	}

	return kongCtx.Run(deps)
}

func newEngine(name string) novelsrc.QueryEngine {
	if name == "dom" {
		return goquery.NewEngine()
	}
	return finder.NewEngine()
}

// newLogger returns the command logger. Logs go to stderr unless a log file
// is set; requests and detection results are logged only with --verbose.
func newLogger(cli *CLI, stderr io.Writer) (*slog.Logger, func()) {
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if cli.LogFile == "" {
		return slog.New(slog.NewTextHandler(stderr, opts)), func() {}
	}
	w := &lumberjack.Logger{
		Filename:   cli.LogFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return slog.New(slog.NewJSONHandler(w, opts)), func() { _ = w.Close() }
}

func defaultDBPath() string {
	if path := os.Getenv("NOVELSRC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "novelsrc.db"
	}
	dir := filepath.Join(home, ".novelsrc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "novelsrc.db")
}
