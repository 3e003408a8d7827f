package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, defaultPort)
	}
	if cfg.Articles.TeaserWordLimit != defaultTeaserWordLimit {
		t.Errorf("TeaserWordLimit = %d, want %d", cfg.Articles.TeaserWordLimit, defaultTeaserWordLimit)
	}
	if cfg.Articles.AutoTag == nil || !*cfg.Articles.AutoTag {
		t.Error("AutoTag default should be true")
	}
	if cfg.LinkTitles.Lookup == nil || !*cfg.LinkTitles.Lookup {
		t.Error("link title lookup default should be true")
	}
	if !cfg.IsDev() {
		t.Error("default env should be development")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := `
port: 9000
env: production
articles:
  teaser_word_limit: 30
  auto_tag: false
  default_site_id: site-1
link_titles:
  lookup: false
  timeout_seconds: 3
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("production env should not be dev")
	}
	if cfg.Articles.TeaserWordLimit != 30 {
		t.Errorf("TeaserWordLimit = %d, want 30", cfg.Articles.TeaserWordLimit)
	}
	if cfg.Articles.AutoTag == nil || *cfg.Articles.AutoTag {
		t.Error("AutoTag override should be false")
	}
	if cfg.Articles.DefaultSiteID != "site-1" {
		t.Errorf("DefaultSiteID = %q", cfg.Articles.DefaultSiteID)
	}
	if cfg.LinkTitles.Lookup == nil || *cfg.LinkTitles.Lookup {
		t.Error("lookup override should be false")
	}
	if cfg.LinkTitles.TimeoutSeconds != 3 {
		t.Errorf("TimeoutSeconds = %d, want 3", cfg.LinkTitles.TimeoutSeconds)
	}
}
