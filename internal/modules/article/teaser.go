package article

import (
	"regexp"
	"strings"

	"github.com/articlekit/core/internal/models"
)

var (
	htmlTokenPattern = regexp.MustCompile(`(?s)<[^>]*>|[^\s<]+`)
	tagNamePattern   = regexp.MustCompile(`^</?\s*([a-zA-Z][a-zA-Z0-9]*)`)
	tagStripPattern  = regexp.MustCompile(`(?s)<[^>]*?>`)
	// wide-character runs (CJK and friends) collapse to one placeholder
	// token before splitting, so the count stays a rough approximation for
	// CJK text rather than a per-character count.
	wideRunPattern = regexp.MustCompile(`[\x{1100}-\x{FFFD}]+`)
)

// void elements never open a tag that needs closing
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Teaser returns the short preview for the article: the description when
// non-blank, else the rendered content truncated to the configured word
// limit. Memoized per in-memory value.
func (s *Service) Teaser(a *models.ArticleModel) string {
	if t := a.CachedTeaser(); t != "" {
		return t
	}

	var t string
	if strings.TrimSpace(a.Description) != "" {
		t = a.Description
	} else {
		t = truncateHTMLWords(a.RenderedContent, s.cfg.TeaserWordLimit)
	}
	a.SetCachedTeaser(t)
	return t
}

// WordCount counts words in the rendered content with tags stripped. Runs of
// wide characters count as a single word.
func WordCount(a *models.ArticleModel) int {
	text := tagStripPattern.ReplaceAllString(a.RenderedContent, "")
	text = wideRunPattern.ReplaceAllString(text, " a ")
	return len(strings.Fields(text))
}

// truncateHTMLWords truncates html to at most limit words while keeping the
// markup balanced: tags left open at the cut point are closed in reverse
// order. Content within the limit is returned unchanged.
func truncateHTMLWords(html string, limit int) string {
	if limit <= 0 {
		return ""
	}

	var open []string
	words := 0
	end := 0

	for _, loc := range htmlTokenPattern.FindAllStringIndex(html, -1) {
		token := html[loc[0]:loc[1]]

		if strings.HasPrefix(token, "<") {
			if words >= limit {
				continue
			}
			name, closing := parseTagToken(token)
			if name != "" && !voidElements[name] && !strings.HasSuffix(token, "/>") {
				if closing {
					// pop the innermost matching open tag
					for i := len(open) - 1; i >= 0; i-- {
						if open[i] == name {
							open = append(open[:i], open[i+1:]...)
							break
						}
					}
				} else {
					open = append(open, name)
				}
			}
			end = loc[1]
			continue
		}

		if words >= limit {
			// at least one word was cut off
			result := strings.TrimRight(html[:end], " \t\n")
			result += " ..."
			for i := len(open) - 1; i >= 0; i-- {
				result += "</" + open[i] + ">"
			}
			return result
		}
		words++
		end = loc[1]
	}

	return html
}

// parseTagToken extracts the element name from a tag token and reports
// whether it is a closing tag. Comments and other non-element tags yield "".
func parseTagToken(token string) (name string, closing bool) {
	m := tagNamePattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return strings.ToLower(m[1]), strings.HasPrefix(token, "</")
}
