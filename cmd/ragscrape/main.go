// Command ragscrape crawls a website and turns its pages into a local
// similarity index for retrieval-augmented generation.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/ragscrape"
	"github.com/fwojciec/ragscrape/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", message(err))
		stop()
		os.Exit(1)
	}
}

// message prefers the human-readable message of application errors and
// falls back to the raw error text for everything else, such as flag
// parsing errors.
func message(err error) string {
	var e *ragscrape.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Main represents the program.
type Main struct {
	// Stdin feeds the interactive page chooser.
	Stdin io.Reader

	// SQLite catalog opened for commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main reading from os.Stdin.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
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
		kong.Name("ragscrape"),
		kong.Description("Crawl a website and build a local similarity index of its content."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Configuration(TOML),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return ragscrape.Errorf(ragscrape.EINVALID, "no command specified. Run 'ragscrape --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel(cli.LogLevel)}))
	defer m.Close()

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "scrape":
		cfg := cli.Scrape.Config()
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := m.openCatalog(cfg, deps); err != nil {
			return err
		}
		deps.Robots = newRobotsLoader(cfg, deps.Logger)
		deps.Crawler = newCrawler(cfg, deps.Logger)
		if deps.Pipeline, err = newPipeline(ctx, cfg, cli.Scrape.CountTokens, deps.Logger); err != nil {
			return err
		}
		if cli.Scrape.Interactive {
			deps.Chooser = NewPrompt(m.Stdin, stdout)
		}

	case "process":
		cfg := cli.Process.Config()
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := m.openCatalog(cfg, deps); err != nil {
			return err
		}
		if deps.Pipeline, err = newPipeline(ctx, cfg, cli.Process.CountTokens, deps.Logger); err != nil {
			return err
		}

	case "pages":
		if err := m.openCatalog(ragscrape.DefaultConfig(cli.Pages.Domain, cli.Pages.OutputDir), deps); err != nil {
			return err
		}

	case "inspect":
		deps.Index = newIndexStore(ragscrape.DefaultConfig("", cli.Inspect.OutputDir), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// openCatalog opens the session catalog below the output directory.
func (m *Main) openCatalog(cfg ragscrape.Config, deps *Dependencies) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	m.DB = sqlite.NewDB(cfg.Storage.CatalogPath)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open catalog at %q: %w", cfg.Storage.CatalogPath, err)
	}
	deps.Catalog = sqlite.NewCatalogService(m.DB)
	return nil
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
