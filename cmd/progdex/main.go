package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/progdex/progdex"
	"github.com/progdex/progdex/fs"
	"github.com/progdex/progdex/gemini"
	"github.com/progdex/progdex/goquery"
	progdexhttp "github.com/progdex/progdex/http"
	"github.com/progdex/progdex/openai"
	"github.com/progdex/progdex/pipeline"
	progdexslog "github.com/progdex/progdex/slog"
	"github.com/progdex/progdex/trafilatura"
	goopenai "github.com/sashabaranov/go-openai"
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

	// Store backs the program service; exposed for end-to-end testing.
	Store *fs.Store

	// Programs is the (possibly decorated) program service.
	Programs progdex.ProgramService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
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
		kong.Name("progdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'progdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open the database. A corrupt database is recoverable only through
	// "clear --force", so that command proceeds with an unopened store.
	m.Store = fs.NewStore(m.DBPath)
	deps.Store = m.Store
	if err := m.Store.Open(); err != nil {
		if progdex.ErrorCode(err) == progdex.ECORRUPT && cmd == "clear" {
			fmt.Fprintf(stderr, "warning: %s\n", progdex.ErrorMessage(err))
		} else {
			if progdex.ErrorCode(err) == progdex.ECORRUPT {
				fmt.Fprintln(stderr, "Hint: run 'progdex clear --force' to reset the database, or restore it from a backup")
			}
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
	}

	m.Programs = m.Store
	logger := slog.New(slog.NewTextHandler(stderr, nil))
	if cmd == "scrape" && cli.Scrape.Verbose {
		m.Programs = progdexslog.NewLoggingProgramService(m.Store, logger)
	}
	deps.Programs = m.Programs

	// Wire the extraction pipeline only for scrape; every other command is
	// read-only and needs no network dependencies or API keys.
	if cmd == "scrape" {
		extractor, err := newExtractor(ctx, cli.Scrape.Provider, cli.Scrape.Model, stderr)
		if err != nil {
			return err
		}

		var fetcher progdex.Fetcher = progdexhttp.NewFetcher()
		if cli.Scrape.Verbose {
			fetcher = progdexslog.NewLoggingFetcher(fetcher, logger)
		}
		defer fetcher.Close()

		var cleaner progdex.Cleaner = goquery.NewCleaner()
		if cli.Scrape.Reader {
			cleaner = trafilatura.NewCleaner()
		}

		deps.Pipeline = &pipeline.Pipeline{
			Fetcher:     fetcher,
			Cleaner:     cleaner,
			Extractor:   extractor,
			Programs:    m.Programs,
			MaxTextLen:  cli.Scrape.MaxChars,
			Concurrency: cli.Scrape.Concurrency,
		}
	}

	return kongCtx.Run(deps)
}

// newExtractor builds the extraction client for the chosen provider.
// Credentials come from the environment and stay in this outer layer.
func newExtractor(ctx context.Context, provider, model string, stderr io.Writer) (progdex.Extractor, error) {
	switch provider {
	case "gemini":
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
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewExtractor(client, model), nil
	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set.")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return openai.NewExtractor(goopenai.NewClient(apiKey), model), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("PROGDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "programs.json"
	}
	dir := filepath.Join(home, ".progdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "programs.json")
}
