package linktitle

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/articlekit/core/internal/config"
	"go.uber.org/zap"
)

// titleTTL is how long a resolved title (or its fallback) stays cached.
// Failed lookups are not retried until the entry expires.
const titleTTL = 7 * 24 * time.Hour

var titlePattern = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// Cache is the TTL key-value store backing the title cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service resolves hyperlink targets to human-readable titles. Outbound
// fetches are bounded: request timeout, redirect cap, and a body size cap,
// since target URLs come from untrusted article content.
type Service struct {
	cache   Cache
	client  *http.Client
	lookup  bool
	maxBody int64
	logger  *zap.Logger
}

func NewService(cache Cache, cfg config.LinkConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	maxRedirects := cfg.MaxRedirects
	client := &http.Client{
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	return &Service{
		cache:   cache,
		client:  client,
		lookup:  cfg.Lookup != nil && *cfg.Lookup,
		maxBody: cfg.MaxBodyBytes,
		logger:  logger.Named("LinkTitleService"),
	}
}

// TitleFor returns the title for url, consulting the cache first. On a miss
// with lookups enabled it fetches the target and scans for a <title> tag; any
// failure falls back to linkText. The result, fallback included, is cached
// for a week.
func (s *Service) TitleFor(ctx context.Context, url, linkText string) string {
	key := cacheKey(url)

	if title, err := s.cache.Get(ctx, key); err == nil && title != "" {
		return title
	}

	title := linkText
	if s.lookup {
		if fetched, err := s.fetchTitle(ctx, url); err == nil && fetched != "" {
			title = fetched
		} else if err != nil {
			s.logger.Debug("title lookup failed, using link text",
				zap.String("url", url), zap.Error(err))
		}
	}

	if err := s.cache.Set(ctx, key, title, titleTTL); err != nil {
		s.logger.Warn("failed to cache link title", zap.String("url", url), zap.Error(err))
	}
	return title
}

func (s *Service) fetchTitle(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody))
	if err != nil {
		return "", err
	}

	m := titlePattern.FindSubmatch(body)
	if m == nil {
		return "", nil
	}
	return string(m[1]), nil
}

func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return "href_title_" + hex.EncodeToString(sum[:])
}
