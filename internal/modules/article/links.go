package article

import (
	"context"
	"regexp"

	"github.com/articlekit/core/internal/models"
)

var anchorPattern = regexp.MustCompile(`(?is)<a[^>]*?href="(.*?)"[^>]*?>(.*?)</a>`)

// Link is a hyperlink found in an article with its resolved title.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// TitleResolver resolves a URL to a human title, falling back to the link's
// visible text. Implemented by the linktitle service.
type TitleResolver interface {
	TitleFor(ctx context.Context, url, linkText string) string
}

// Links scans the rendered content for anchor tags and resolves a title for
// each distinct URL. Order is document order of first occurrence; duplicate
// URLs keep the first occurrence.
func Links(ctx context.Context, a *models.ArticleModel, resolver TitleResolver) []Link {
	var links []Link
	seen := make(map[string]bool)

	for _, m := range anchorPattern.FindAllStringSubmatch(a.RenderedContent, -1) {
		url, text := m[1], m[2]
		if seen[url] {
			continue
		}
		seen[url] = true

		title := text
		if resolver != nil {
			title = resolver.TitleFor(ctx, url, text)
		}
		links = append(links, Link{URL: url, Title: title})
	}
	return links
}
