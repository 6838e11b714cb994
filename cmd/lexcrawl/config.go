package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/lexcrawl"
	lexhttp "github.com/fwojciec/lexcrawl/http"
	"gopkg.in/yaml.v3"
)

// DefaultStartURL is the portal's quick search result list.
const DefaultStartURL = "https://eur-lex.europa.eu/search.html?scope=EURLEX&lang=en&type=quick&qid=1748872546646"

// Built-in crawl defaults.
const (
	DefaultMaxPages    = 2
	DefaultMaxDocs     = 5
	DefaultDelay       = 2 * time.Second
	DefaultConcurrency = 4
	DefaultTimeout     = lexhttp.DefaultFetchTimeout
)

// Config is the effective crawl configuration. MaxPages and MaxDocs of
// zero mean no limit once resolved.
type Config struct {
	StartURLs   []string
	MaxPages    int
	MaxDocs     int
	Delay       time.Duration
	Concurrency int
	Timeout     time.Duration
	Out         string
	Markdown    string
	UserAgent   string
	Browser     bool
	Robots      bool
	Sitemap     bool
}

// FileConfig is the on-disk crawl configuration. Durations are Go
// duration strings such as "1500ms".
type FileConfig struct {
	StartURLs   []string `yaml:"start_urls" json:"start_urls"`
	MaxPages    int      `yaml:"max_pages" json:"max_pages"`
	MaxDocs     int      `yaml:"max_docs" json:"max_docs"`
	Delay       string   `yaml:"delay" json:"delay"`
	Concurrency int      `yaml:"concurrency" json:"concurrency"`
	Timeout     string   `yaml:"timeout" json:"timeout"`
	Out         string   `yaml:"out" json:"out"`
	Markdown    string   `yaml:"markdown" json:"markdown"`
	UserAgent   string   `yaml:"user_agent" json:"user_agent"`
	Browser     bool     `yaml:"browser" json:"browser"`
	Robots      bool     `yaml:"robots" json:"robots"`
	Sitemap     bool     `yaml:"sitemap" json:"sitemap"`
}

// LoadConfigFile reads a YAML or JSON config file. Files without a known
// extension are tried as YAML, then JSON.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, lexcrawl.Errorf(lexcrawl.EINVALID, "parse yaml %s: %v", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, lexcrawl.Errorf(lexcrawl.EINVALID, "parse json %s: %v", path, err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, lexcrawl.Errorf(lexcrawl.EINVALID, "parse config %s: %v (yaml) / %v (json)", path, err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig fills every field of cfg that is still zero from fc.
// Flags are parsed first, so explicit flags keep precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) error {
	if len(cfg.StartURLs) == 0 {
		cfg.StartURLs = fc.StartURLs
	}
	if cfg.MaxPages == 0 {
		cfg.MaxPages = fc.MaxPages
	}
	if cfg.MaxDocs == 0 {
		cfg.MaxDocs = fc.MaxDocs
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = fc.Concurrency
	}
	if cfg.Delay == 0 && fc.Delay != "" {
		d, err := time.ParseDuration(fc.Delay)
		if err != nil {
			return lexcrawl.Errorf(lexcrawl.EINVALID, "invalid delay %q", fc.Delay)
		}
		cfg.Delay = d
	}
	if cfg.Timeout == 0 && fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return lexcrawl.Errorf(lexcrawl.EINVALID, "invalid timeout %q", fc.Timeout)
		}
		cfg.Timeout = d
	}
	if cfg.Out == "" {
		cfg.Out = fc.Out
	}
	if cfg.Markdown == "" {
		cfg.Markdown = fc.Markdown
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = fc.UserAgent
	}
	cfg.Browser = cfg.Browser || fc.Browser
	cfg.Robots = cfg.Robots || fc.Robots
	cfg.Sitemap = cfg.Sitemap || fc.Sitemap
	return nil
}

// ApplyDefaults fills the remaining zero fields with the built-in defaults
// and turns negative limits into no limit.
func ApplyDefaults(cfg *Config) {
	if len(cfg.StartURLs) == 0 {
		cfg.StartURLs = []string{DefaultStartURL}
	}
	cfg.MaxPages = limit(cfg.MaxPages, DefaultMaxPages)
	cfg.MaxDocs = limit(cfg.MaxDocs, DefaultMaxDocs)
	if cfg.Delay == 0 {
		cfg.Delay = DefaultDelay
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = lexhttp.DefaultUserAgent
	}
}

func limit(n, def int) int {
	switch {
	case n == 0:
		return def
	case n < 0:
		return 0
	}
	return n
}

// Validate reports configuration errors as EINVALID.
func (c Config) Validate() error {
	if c.Concurrency < 0 {
		return lexcrawl.Errorf(lexcrawl.EINVALID, "concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Timeout < 0 {
		return lexcrawl.Errorf(lexcrawl.EINVALID, "timeout must be positive, got %s", c.Timeout)
	}
	for _, raw := range c.StartURLs {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return lexcrawl.Errorf(lexcrawl.EINVALID, "invalid start URL %q", raw)
		}
	}
	return nil
}

// Resolve merges flags, the config file and the defaults, in that order
// of precedence.
func (c *CrawlCmd) Resolve() (Config, error) {
	cfg := Config{
		StartURLs:   c.URLs,
		MaxPages:    c.MaxPages,
		MaxDocs:     c.MaxDocs,
		Delay:       c.Delay,
		Concurrency: c.Concurrency,
		Timeout:     c.Timeout,
		Out:         c.Out,
		Markdown:    c.Markdown,
		UserAgent:   c.UserAgent,
		Browser:     c.Browser,
		Robots:      c.Robots,
		Sitemap:     c.Sitemap,
	}
	if c.Config != "" {
		fc, err := LoadConfigFile(c.Config)
		if err != nil {
			return Config{}, err
		}
		if err := ApplyFileConfig(&cfg, fc); err != nil {
			return Config{}, err
		}
	}
	ApplyDefaults(&cfg)
	return cfg, cfg.Validate()
}

// siteOf returns the scheme and host of rawURL.
func siteOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s://%s", u.Scheme, u.Host)
}
