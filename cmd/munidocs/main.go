package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/openfiscal/munidocs"
	"github.com/openfiscal/munidocs/crawl"
	"github.com/openfiscal/munidocs/discover"
	"github.com/openfiscal/munidocs/fs"
	"github.com/openfiscal/munidocs/gemini"
	"github.com/openfiscal/munidocs/goquery"
	"github.com/openfiscal/munidocs/htmltomarkdown"
	munihttp "github.com/openfiscal/munidocs/http"
	"github.com/openfiscal/munidocs/pdftotext"
	"github.com/openfiscal/munidocs/pipeline"
	"github.com/openfiscal/munidocs/readability"
	"github.com/openfiscal/munidocs/rod"
	munislog "github.com/openfiscal/munidocs/slog"
	"github.com/openfiscal/munidocs/trafilatura"
	"github.com/openfiscal/munidocs/yaml"
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
	// Roster file and data directory. Set before calling Run().
	ConfigPath string
	DataDir    string

	// Services for end-to-end testing. When nil, Run wires the real
	// implementations.
	Entities munidocs.EntityService
	Cache    munidocs.CacheStore
	Store    munidocs.DocumentStore
	Ledger   munidocs.Ledger
	Runner   *pipeline.Runner
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
		DataDir:    defaultDataDir(),
	}
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
		kong.Name("munidocs"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'munidocs --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Wire core services.
	if m.Entities == nil {
		m.Entities, err = loadRoster(m.ConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set MUNIDOCS_CONFIG to point at your municipality roster\n")
			return err
		}
	}
	documentsDir := filepath.Join(m.DataDir, "documents")
	if m.Cache == nil {
		m.Cache = munislog.NewLoggingCacheStore(fs.NewCacheStore(filepath.Join(m.DataDir, "cache.json")), logger)
	}
	if m.Store == nil {
		m.Store = fs.NewDocumentStore(documentsDir)
	}
	if m.Ledger == nil {
		m.Ledger = fs.NewLedger(documentsDir)
	}
	deps.Entities = m.Entities
	deps.Cache = m.Cache
	deps.Store = m.Store
	deps.Ledger = m.Ledger

	// Wire the pipeline for commands that run it.
	if m.Runner == nil && (cmd == "fetch" || cmd == "rename") {
		classifier, err := newClassifier(ctx, logger, stderr)
		if err != nil {
			return err
		}

		runner := &pipeline.Runner{
			Cache:      m.Cache,
			Store:      m.Store,
			Ledger:     m.Ledger,
			Classifier: classifier,
			Extractor:  pdftotext.NewExtractor(os.Getenv("MUNIDOCS_PDFTOTEXT")),
			Downloader: munihttp.NewDownloader(logger),
			Logger:     logger,
		}

		if cmd == "fetch" {
			renderer, err := rod.NewRenderer()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer renderer.Close()

			fetcher := munislog.NewLoggingFetcher(munihttp.NewFetcher(), logger)
			defer fetcher.Close()

			anchors := goquery.NewParser()
			runner.Renderer = rod.NewLoggingRenderer(renderer, logger)
			runner.Discoverer = discover.NewEngine(anchors, logger)
			runner.Crawler = &crawl.Service{
				Fetcher:        fetcher,
				Parser:         anchors,
				Extractor:      trafilatura.NewExtractor(),
				Fallback:       readability.NewExtractor(),
				Converter:      htmltomarkdown.NewConverter(),
				Sitemaps:       munislog.NewLoggingSitemapService(munihttp.NewSitemapService(nil), logger),
				RateLimiter:    crawl.NewDomainLimiter(1.0),
				FollowKeywords: discover.BudgetKeywords,
				Logger:         logger,
			}
			runner.DryRun = cli.Fetch.DryRun
			runner.Concurrency = cli.Fetch.Concurrency
		}
		if cmd == "rename" {
			runner.DryRun = cli.Rename.DryRun
		}

		m.Runner = runner
	}
	deps.Runner = m.Runner

	return kongCtx.Run(deps)
}

// newClassifier connects to the Gemini API.
func newClassifier(ctx context.Context, logger *slog.Logger, stderr io.Writer) (munidocs.Classifier, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return munislog.NewLoggingClassifier(gemini.NewClassifier(client), logger), nil
}

// loadRoster reads the municipality roster, by extension: .csv loads the
// CSV format, anything else YAML.
func loadRoster(path string) (munidocs.EntityService, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return yaml.LoadRosterCSV(path)
	}
	return yaml.LoadRoster(path)
}

func defaultConfigPath() string {
	if path := os.Getenv("MUNIDOCS_CONFIG"); path != "" {
		return path
	}
	return "municipalities.yaml"
}

func defaultDataDir() string {
	if path := os.Getenv("MUNIDOCS_DATA"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "munidocs-data"
	}
	dir := filepath.Join(home, ".munidocs")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
