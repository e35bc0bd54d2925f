package litcrawl

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ContentCategory is a structural content signal used as a proxy for
// article richness.
type ContentCategory string

// Content categories recognized by the content detector.
const (
	ContentImage        ContentCategory = "image"
	ContentVideo        ContentCategory = "video"
	ContentPDF          ContentCategory = "pdf"
	ContentTable        ContentCategory = "table"
	ContentFigure       ContentCategory = "figure"
	ContentExternalLink ContentCategory = "external_link"
)

// Valid reports whether c is a known category.
func (c ContentCategory) Valid() bool {
	switch c {
	case ContentImage, ContentVideo, ContentPDF, ContentTable, ContentFigure, ContentExternalLink:
		return true
	}
	return false
}

// Marker is a required structural element: a bare tag name, or a tag with
// one attribute that must carry a given value.
type Marker struct {
	Tag   string `yaml:"tag"`
	Attr  string `yaml:"attr,omitempty"`
	Value string `yaml:"value,omitempty"`
}

// Selector returns the CSS selector matching the marker.
func (m Marker) Selector() string {
	if m.Attr == "" {
		return m.Tag
	}
	return m.Tag + "[" + m.Attr + "=" + quoteSelector(m.Value) + "]"
}

// String returns a human-readable form of the marker for logs.
func (m Marker) String() string {
	return m.Selector()
}

func quoteSelector(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Config holds every recognized option. It is created once at startup,
// passed by pointer into constructors, and never mutated afterwards.
type Config struct {
	// AllowedDomain restricts link following and popularity tracking.
	// Subdomains are considered part of the domain.
	AllowedDomain string `yaml:"allowed_domain"`

	// StartURL seeds the crawl.
	StartURL string `yaml:"start_url"`

	// Keywords are the topic keywords; a page must contain at least one.
	Keywords []string `yaml:"keywords"`

	// RequiredMarkers are structural elements every page must contain.
	RequiredMarkers []Marker `yaml:"required_markers"`

	// MaxPageSize is the largest accepted body, in bytes.
	MaxPageSize int `yaml:"max_page_size"`

	// AllowedLanguages are ISO 639-1 codes accepted by the language gate.
	AllowedLanguages []string `yaml:"allowed_languages"`

	// MaxAgeDays is the recency window for the publication date.
	MaxAgeDays int `yaml:"max_age_days"`

	// EarliestPublication optionally rejects anything published before it.
	// The zero value disables the check.
	EarliestPublication time.Time `yaml:"earliest_publication"`

	// RequiredContent lists the categories of which a page needs at least one.
	RequiredContent []ContentCategory `yaml:"required_content"`

	// LinkMode selects which discovered links the crawl engine follows.
	LinkMode LinkMode `yaml:"link_mode"`

	// AllowedLocation is the country (English name or ISO code) hosting
	// servers must resolve to.
	AllowedLocation string `yaml:"allowed_location"`

	// AllowedURLPattern is a regular expression followed links must match.
	AllowedURLPattern string `yaml:"allowed_url_pattern"`

	// AuthKeywords are URL substrings that mark authentication pages.
	AuthKeywords []string `yaml:"auth_keywords"`

	// GeoIPDatabase is the path of the GeoLite2 City database.
	GeoIPDatabase string `yaml:"geoip_database"`

	// DatabasePath is the SQLite file accepted articles are written to.
	DatabasePath string `yaml:"database_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Crawl CrawlConfig `yaml:"crawl"`
}

// CrawlConfig holds settings delegated to the crawl engine.
type CrawlConfig struct {
	MaxDepth       int           `yaml:"max_depth"`
	MaxPages       int           `yaml:"max_pages"`
	UserAgent      string        `yaml:"user_agent"`
	Concurrency    int           `yaml:"concurrency"`
	DownloadDelay  time.Duration `yaml:"download_delay"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RetryTimes     int           `yaml:"retry_times"`
	RetryHTTPCodes []int         `yaml:"retry_http_codes"`
	ObeyRobots     bool          `yaml:"obey_robots"`
}

// DefaultKeywords are the medical research topics matched by default.
var DefaultKeywords = []string{
	"randomized controlled trial", "systematic review", "meta-analysis", "clinical guidelines", "evidence-based practice",
	"treatment efficacy", "risk factors", "treatment outcome", "cohort study", "clinical trial", "cross-sectional study",
	"case-control study", "drug therapy", "surgical procedures", "pharmacological intervention", "cancer", "cardiovascular disease",
	"diabetes", "infectious diseases", "mental health", "prevalence", "incidence", "mortality", "population health",
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() *Config {
	return &Config{
		AllowedDomain: "pubmed.ncbi.nlm.nih.gov",
		StartURL:      "https://pubmed.ncbi.nlm.nih.gov",
		Keywords:      append([]string(nil), DefaultKeywords...),
		RequiredMarkers: []Marker{
			{Tag: "meta", Attr: "name", Value: "description"},
			{Tag: "h1"},
		},
		MaxPageSize:      2 << 20,
		AllowedLanguages: []string{"en"},
		MaxAgeDays:       180,
		RequiredContent: []ContentCategory{
			ContentImage, ContentVideo, ContentPDF, ContentTable, ContentFigure, ContentExternalLink,
		},
		LinkMode:          LinkInternal,
		AllowedLocation:   "United States",
		AllowedURLPattern: `.*pubmed.*`,
		AuthKeywords:      []string{"login", "signin", "register", "account", "auth"},
		GeoIPDatabase:     "GeoLite2-City.mmdb",
		DatabasePath:      "litcrawl.db",
		LogLevel:          "info",
		Crawl: CrawlConfig{
			MaxDepth:       4,
			MaxPages:       500,
			UserAgent:      "Mozilla/5.0 (compatible; MedCrawlerBot/1.0)",
			Concurrency:    16,
			DownloadDelay:  2 * time.Second,
			RequestTimeout: 15 * time.Second,
			RetryTimes:     3,
			RetryHTTPCodes: []int{500, 502, 503, 504, 408, 429},
			ObeyRobots:     true,
		},
	}
}

// Validate returns an error if the configuration cannot drive a crawl.
func (c *Config) Validate() error {
	if c.AllowedDomain == "" {
		return Errorf(EINVALID, "allowed domain required")
	}
	if c.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	if u, err := url.Parse(c.StartURL); err != nil || u.Host == "" {
		return Errorf(EINVALID, "invalid start URL %q", c.StartURL)
	}
	if len(c.Keywords) == 0 {
		return Errorf(EINVALID, "at least one keyword required")
	}
	for _, m := range c.RequiredMarkers {
		if m.Tag == "" {
			return Errorf(EINVALID, "required marker tag must not be empty")
		}
		if m.Attr == "" && m.Value != "" {
			return Errorf(EINVALID, "required marker %q has a value but no attribute", m.Tag)
		}
	}
	if c.MaxPageSize <= 0 {
		return Errorf(EINVALID, "max page size must be positive")
	}
	if len(c.AllowedLanguages) == 0 {
		return Errorf(EINVALID, "at least one allowed language required")
	}
	if c.MaxAgeDays < 0 {
		return Errorf(EINVALID, "max age days must not be negative")
	}
	if len(c.RequiredContent) == 0 {
		return Errorf(EINVALID, "at least one required content category required")
	}
	for _, cat := range c.RequiredContent {
		if !cat.Valid() {
			return Errorf(EINVALID, "unknown content category %q", cat)
		}
	}
	if !c.LinkMode.Valid() {
		return Errorf(EINVALID, "invalid link mode %q: must be internal, external or both", c.LinkMode)
	}
	if c.AllowedLocation == "" {
		return Errorf(EINVALID, "allowed location required")
	}
	if _, err := regexp.Compile(c.AllowedURLPattern); err != nil {
		return Errorf(EINVALID, "invalid URL pattern %q: %v", c.AllowedURLPattern, err)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return Errorf(EINVALID, "log level must be one of: debug, info, warn, error")
	}
	if c.Crawl.MaxDepth < 0 {
		return Errorf(EINVALID, "max depth must not be negative")
	}
	if c.Crawl.MaxPages <= 0 {
		return Errorf(EINVALID, "max pages must be positive")
	}
	if c.Crawl.Concurrency <= 0 {
		return Errorf(EINVALID, "concurrency must be positive")
	}
	if c.Crawl.RetryTimes < 0 {
		return Errorf(EINVALID, "retry times must not be negative")
	}
	return nil
}
