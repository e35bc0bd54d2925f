package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *litcrawl.Config
	Logger    *slog.Logger
	Articles  litcrawl.ArticleService
	Processor litcrawl.ArticleProcessor
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	ConfigPath string `name:"config" short:"c" type:"path" help:"YAML config file (defaults apply when omitted)"`
	DB         string `name:"db" env:"LITCRAWL_DB" help:"SQLite database path (overrides database_path)"`
	GeoDB      string `name:"geo-db" env:"LITCRAWL_GEOIP_DB" help:"GeoLite2 City database path (overrides geoip_database)"`
	LogLevel   string `name:"log-level" help:"Log level: debug, info, warn, error (overrides log_level)"`

	Crawl      CrawlCmd  `cmd:"" help:"Crawl from the start URL and store qualifying articles"`
	List       ListCmd   `cmd:"" help:"List stored articles, most linked first"`
	Check      CheckCmd  `cmd:"" help:"Run a local HTML file through the qualification chain"`
	ShowConfig ConfigCmd `cmd:"" name:"show-config" help:"Print the effective configuration as YAML"`
}

// Apply copies global flag overrides into cfg.
func (c *CLI) Apply(cfg *litcrawl.Config) {
	if c.DB != "" {
		cfg.DatabasePath = c.DB
	}
	if c.GeoDB != "" {
		cfg.GeoIPDatabase = c.GeoDB
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	StartURL    string `name:"start-url" help:"URL to start from (overrides start_url)"`
	Concurrency int    `help:"Concurrent fetch limit (overrides crawl.concurrency)"`
	MaxPages    int    `name:"max-pages" help:"Page budget (overrides crawl.max_pages)"`
	MaxDepth    int    `name:"max-depth" default:"-1" help:"Link depth limit, 0 for unlimited (overrides crawl.max_depth)"`
}

// Apply copies crawl flag overrides into cfg.
func (c *CrawlCmd) Apply(cfg *litcrawl.Config) {
	if c.StartURL != "" {
		cfg.StartURL = c.StartURL
	}
	if c.Concurrency > 0 {
		cfg.Crawl.Concurrency = c.Concurrency
	}
	if c.MaxPages > 0 {
		cfg.Crawl.MaxPages = c.MaxPages
	}
	if c.MaxDepth >= 0 {
		cfg.Crawl.MaxDepth = c.MaxDepth
	}
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	MinPopularity int    `name:"min-popularity" help:"Only show articles linked at least this often"`
	Limit         int    `short:"n" default:"20" help:"Maximum number of articles, 0 for all"`
	Sort          string `enum:"popularity,crawled_at" default:"popularity" help:"Sort order: popularity or crawled_at"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	File string `arg:"" type:"existingfile" help:"HTML file to check"`
	URL  string `arg:"" help:"URL the page was served from"`
	Seed bool   `help:"Treat the page as the crawl's start page"`
}

// ConfigCmd is the "show-config" subcommand.
type ConfigCmd struct{}
