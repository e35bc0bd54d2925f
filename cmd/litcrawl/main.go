package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/crawl"
	"github.com/fwojciec/litcrawl/geoip"
	"github.com/fwojciec/litcrawl/goquery"
	litcrawlhttp "github.com/fwojciec/litcrawl/http"
	"github.com/fwojciec/litcrawl/pipeline"
	"github.com/fwojciec/litcrawl/robotstxt"
	litslog "github.com/fwojciec/litcrawl/slog"
	"github.com/fwojciec/litcrawl/sqlite"
	"github.com/fwojciec/litcrawl/whatlanggo"
	"github.com/fwojciec/litcrawl/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Locator and Classifier are opened by Run when nil. Set them before
	// calling Run to substitute implementations in end-to-end tests.
	Locator    litcrawl.HostLocator
	Classifier litcrawl.LanguageClassifier

	geo *geoip.Locator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.geo != nil {
		_ = m.geo.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("litcrawl"),
		kong.Description("Focused crawler for recent research articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'litcrawl --help' to see available commands")
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
	defer m.Close()

	cfg, err := loadConfig(cli, cmd)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", litcrawl.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cfg.LogLevel)

	if cmd == "crawl" || cmd == "list" {
		m.DB = sqlite.NewDB(cfg.DatabasePath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LITCRAWL_DB or --db to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DatabasePath, err)
		}
		deps.Articles = litslog.NewLoggingArticleService(sqlite.NewArticleService(m.DB), deps.Logger)
	}

	if cmd == "crawl" || cmd == "check" {
		if err := m.openClassifiers(cfg); err != nil {
			if litcrawl.ErrorCode(err) == litcrawl.ENOTFOUND {
				fmt.Fprintln(stderr, "Hint: Download GeoLite2-City.mmdb from MaxMind and set geoip_database or --geo-db")
			}
			return err
		}

		table := crawl.NewPopularityTable()
		p, err := pipeline.New(cfg, m.Locator, m.Classifier, table, pipeline.WithLogger(deps.Logger))
		if err != nil {
			return fmt.Errorf("failed to build pipeline: %w", err)
		}
		deps.Processor = litslog.NewLoggingProcessor(p, deps.Logger)
	}

	if cmd == "crawl" {
		deps.Crawler, err = newCrawler(cfg, deps)
		if err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// openClassifiers opens the geolocation database and language classifier
// unless they were provided.
func (m *Main) openClassifiers(cfg *litcrawl.Config) error {
	if m.Locator == nil {
		geo, err := geoip.Open(cfg.GeoIPDatabase)
		if err != nil {
			return err
		}
		m.geo = geo
		m.Locator = geo
	}
	if m.Classifier == nil {
		m.Classifier = whatlanggo.NewClassifier()
	}
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(cli *CLI, cmd string) (*litcrawl.Config, error) {
	cfg := litcrawl.DefaultConfig()
	if cli.ConfigPath != "" {
		var err error
		if cfg, err = yaml.LoadConfig(cli.ConfigPath); err != nil {
			return nil, err
		}
	}
	cli.Apply(cfg)
	if cmd == "crawl" {
		cli.Crawl.Apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newCrawler wires the crawl engine: HTTP fetching with logging and
// retries, robots.txt, per-host politeness and link selection.
func newCrawler(cfg *litcrawl.Config, deps *Dependencies) (*crawl.Crawler, error) {
	pattern, err := litcrawl.CompileURLPattern(cfg.AllowedURLPattern)
	if err != nil {
		return nil, err
	}
	filter, err := litcrawl.NewLinkFilter(cfg.LinkMode, cfg.AllowedDomain, pattern)
	if err != nil {
		return nil, err
	}

	var fetcher litcrawl.Fetcher = litcrawlhttp.NewFetcher(
		litcrawlhttp.WithTimeout(cfg.Crawl.RequestTimeout),
		litcrawlhttp.WithUserAgent(cfg.Crawl.UserAgent),
		litcrawlhttp.WithMaxBodySize(cfg.MaxPageSize),
	)
	fetcher = litslog.NewLoggingFetcher(fetcher, deps.Logger)
	if cfg.Crawl.RetryTimes > 0 {
		fetcher = crawl.NewRetryFetcher(fetcher,
			crawl.DefaultRetryDelays(cfg.Crawl.RetryTimes),
			cfg.Crawl.RetryHTTPCodes,
			deps.Logger,
		)
	}

	c := &crawl.Crawler{
		Fetcher:      fetcher,
		Processor:    deps.Processor,
		Articles:     deps.Articles,
		LinkSelector: goquery.NewFollowSelector(filter, cfg.AllowedDomain),
		RateLimiter:  crawl.NewDomainLimiter(cfg.Crawl.DownloadDelay),
		Logger:       deps.Logger,
		MaxDepth:     cfg.Crawl.MaxDepth,
		MaxPages:     cfg.Crawl.MaxPages,
		Concurrency:  cfg.Crawl.Concurrency,
	}
	if cfg.Crawl.ObeyRobots {
		client := &http.Client{Timeout: cfg.Crawl.RequestTimeout}
		c.Robots = robotstxt.NewPolicy(client, cfg.Crawl.UserAgent, deps.Logger)
	}
	return c, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
