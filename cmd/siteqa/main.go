package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/mwestrik/siteqa"
	"github.com/mwestrik/siteqa/crawl"
	"github.com/mwestrik/siteqa/gemini"
	"github.com/mwestrik/siteqa/goquery"
	sqhttp "github.com/mwestrik/siteqa/http"
	"github.com/mwestrik/siteqa/ingest"
	"github.com/mwestrik/siteqa/retrieve"
	sqslog "github.com/mwestrik/siteqa/slog"
	"github.com/mwestrik/siteqa/sqlite"
	"github.com/mwestrik/siteqa/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// Listen address for the serve command.
	Addr string

	// SQLite database used by the chunk store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Addr:   defaultAddr(),
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
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
		DBPath: m.DBPath,
		Addr:   m.Addr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("siteqa"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'siteqa --help' to see available commands")
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

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SITEQA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Store = sqlite.NewChunkStore(m.DB)

	// Commands that call Gemini need a client; stats and reset don't.
	if cmd == "serve" || cmd == "ingest" || cmd == "ask" {
		client, err := newGeminiClient(ctx, stderr)
		if err != nil {
			return err
		}
		deps.Embedder = sqslog.NewLoggingEmbedder(gemini.NewEmbedder(client), deps.Logger)
		deps.Answerer = gemini.NewAnswerer(client)
		deps.Retriever = &retrieve.Retriever{
			Embedder: deps.Embedder,
			Store:    deps.Store,
			Answerer: deps.Answerer,
		}
	}

	if cmd == "serve" || cmd == "ingest" {
		fetcher := sqhttp.NewFetcher()
		defer fetcher.Close()

		deps.Crawler = &crawl.Crawler{
			Fetcher: sqslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: &siteqa.FallbackExtractor{
				Extractors: []siteqa.Extractor{
					trafilatura.NewExtractor(),
					goquery.NewExtractor(),
				},
			},
			Links:       goquery.NewLinkExtractor(),
			RateLimiter: crawl.NewDomainLimiter(1.0),
			Sitemaps:    sqhttp.NewSitemapService(nil),
			Logger:      deps.Logger,
		}
		deps.Pipeline = &ingest.Pipeline{
			Crawler:  deps.Crawler,
			Embedder: deps.Embedder,
			Store:    deps.Store,
			Logger:   deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

func newGeminiClient(ctx context.Context, stderr io.Writer) (*genai.Client, error) {
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
	return client, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SITEQA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "siteqa.db"
	}
	dir := filepath.Join(home, ".siteqa")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "siteqa.db")
}

func defaultAddr() string {
	if addr := os.Getenv("SITEQA_ADDR"); addr != "" {
		return addr
	}
	return ":8080"
}
