package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/engine"
	"github.com/pagelens/pagelens/gemini"
	"github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/htmltomarkdown"
	plhttp "github.com/pagelens/pagelens/http"
	plslog "github.com/pagelens/pagelens/slog"
	"github.com/pagelens/pagelens/sqlite"
	"github.com/pagelens/pagelens/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache database path. Set before calling Run().
	CachePath string

	// SQLite database backing the page cache.
	DB *sqlite.DB

	// Scraper assembled during Run, exposed for end-to-end testing.
	Scraper pagelens.Scraper
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		CachePath: defaultCachePath(),
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
		kong.Name("pagelens"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagelens --help' to see available commands")
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

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	cfg := pagelens.DefaultConfig()
	if cli.Config != "" {
		cfg, err = pagelens.LoadConfig(cli.Config)
		if err != nil {
			return err
		}
	}

	var cache pagelens.PageCache
	if cfg.CacheTTL > 0 {
		m.DB = sqlite.NewDB(m.CachePath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGELENS_CACHE to use a different cache path\n")
			return fmt.Errorf("failed to open cache at %q: %w", m.CachePath, err)
		}
		defer m.Close()
		cache = sqlite.NewPageCache(m.DB, cfg.CacheTTL.Std())
	}

	var enhancer pagelens.Enhancer
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return fmt.Errorf("failed to create gemini client: %w", err)
		}
		enhancer = gemini.NewEnhancer(client)
	}

	fetcher := plslog.NewLoggingFetcher(plhttp.NewFetcher(cfg), logger)
	defer fetcher.Close()

	eng := &engine.Engine{
		Config:  cfg,
		Fetcher: fetcher,
		NewFetcher: func(cfg pagelens.Config) pagelens.Fetcher {
			return plhttp.NewFetcher(cfg)
		},
		Cache:    cache,
		Schema:   goquery.NewSchemaExtractor(goquery.WithSchemaLogger(logger)),
		Platform: goquery.NewPlatformDetector(),
		Strategies: []pagelens.ProductStrategy{
			goquery.NewSchemaStrategy(),
			goquery.NewPlatformStrategy(),
			goquery.NewSemanticStrategy(),
			goquery.NewURLStrategy(),
			goquery.NewVisualStrategy(),
			goquery.NewTextStrategy(),
			goquery.NewLinkStrategy(),
			goquery.NewImageStrategy(),
		},
		Articles: goquery.NewArticleDetector(trafilatura.NewExtractor(), htmltomarkdown.NewConverter()),
		Contacts: goquery.NewContactExtractor(),
		Analyzer: goquery.NewPageAnalyzer(),
		Enhancer: enhancer,
		Logger:   logger,
	}

	m.Scraper = plslog.NewLoggingScraper(eng, logger)
	deps.Scraper = m.Scraper
	deps.Logger = logger

	return kongCtx.Run(deps)
}

// defaultCachePath returns the page cache location, honoring PAGELENS_CACHE.
func defaultCachePath() string {
	if path := os.Getenv("PAGELENS_CACHE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pagelens-cache.db"
	}
	return filepath.Join(home, ".pagelens", "cache.db")
}
