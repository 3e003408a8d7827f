package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDSN        = "root:password@tcp(127.0.0.1:3306)/articlekit?charset=utf8mb4&parseTime=True&loc=Local"
	defaultRedisURL   = "redis://localhost:6379/0"
	defaultMeiliHost  = "http://localhost:7700"
	defaultMeiliIndex = "articles"

	defaultTeaserWordLimit  = 75
	defaultLinkFetchTimeout = 10
	defaultLinkMaxRedirects = 5
	defaultLinkMaxBodyBytes = 512 * 1024
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int           `yaml:"port"`
	DSN            string        `yaml:"dsn"` // MySQL DSN
	RedisURL       string        `yaml:"redis_url"`
	Env            string        `yaml:"env"` // "development" | "production"
	StaticDir      string        `yaml:"static_dir"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	JWTSecret      string        `yaml:"jwt_secret"`
	Articles       ArticleConfig `yaml:"articles"`
	LinkTitles     LinkConfig    `yaml:"link_titles"`
	MeiliSearch    MeiliConfig   `yaml:"meilisearch"`
}

// ArticleConfig tunes the article derivation defaults.
type ArticleConfig struct {
	TeaserWordLimit int    `yaml:"teaser_word_limit"`
	AutoTag         *bool  `yaml:"auto_tag"`
	DefaultSiteID   string `yaml:"default_site_id"`

	UseAddThisButton   *bool  `yaml:"use_addthis_button"`
	AddThisUseAuthor   *bool  `yaml:"addthis_use_author"`
	DefaultAddThisUser string `yaml:"default_addthis_user"`
}

// LinkConfig bounds the outbound link-title lookups.
type LinkConfig struct {
	Lookup         *bool `yaml:"lookup"`
	TimeoutSeconds int   `yaml:"timeout_seconds"`
	MaxRedirects   int   `yaml:"max_redirects"`
	MaxBodyBytes   int64 `yaml:"max_body_bytes"`
}

// MeiliConfig configures the full-text index binding.
type MeiliConfig struct {
	Enable    bool   `yaml:"enable"`
	Host      string `yaml:"host"`
	APIKey    string `yaml:"api_key"`
	IndexName string `yaml:"index_name"`
}

// Load reads the YAML config at path and fills in defaults. A missing file is
// not an error; defaults apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.DSN) == "" {
		c.DSN = defaultDSN
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = defaultRedisURL
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.StaticDir) == "" {
		c.StaticDir = "static"
	}
	if c.Articles.TeaserWordLimit <= 0 {
		c.Articles.TeaserWordLimit = defaultTeaserWordLimit
	}
	if c.Articles.AutoTag == nil {
		c.Articles.AutoTag = boolPtr(true)
	}
	if c.Articles.UseAddThisButton == nil {
		c.Articles.UseAddThisButton = boolPtr(true)
	}
	if c.Articles.AddThisUseAuthor == nil {
		c.Articles.AddThisUseAuthor = boolPtr(true)
	}
	if c.LinkTitles.Lookup == nil {
		c.LinkTitles.Lookup = boolPtr(true)
	}
	if c.LinkTitles.TimeoutSeconds <= 0 {
		c.LinkTitles.TimeoutSeconds = defaultLinkFetchTimeout
	}
	if c.LinkTitles.MaxRedirects <= 0 {
		c.LinkTitles.MaxRedirects = defaultLinkMaxRedirects
	}
	if c.LinkTitles.MaxBodyBytes <= 0 {
		c.LinkTitles.MaxBodyBytes = defaultLinkMaxBodyBytes
	}
	if strings.TrimSpace(c.MeiliSearch.Host) == "" {
		c.MeiliSearch.Host = defaultMeiliHost
	}
	if strings.TrimSpace(c.MeiliSearch.IndexName) == "" {
		c.MeiliSearch.IndexName = defaultMeiliIndex
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

func boolPtr(b bool) *bool { return &b }
