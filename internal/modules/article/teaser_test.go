package article

import (
	"testing"

	"github.com/articlekit/core/internal/config"
	"github.com/articlekit/core/internal/models"
)

func TestTruncateHTMLWords(t *testing.T) {
	tests := []struct {
		name  string
		html  string
		limit int
		want  string
	}{
		{
			name:  "within limit unchanged",
			html:  "<p>three little words</p>",
			limit: 3,
			want:  "<p>three little words</p>",
		},
		{
			name:  "plain text cut",
			html:  "one two three four",
			limit: 2,
			want:  "one two ...",
		},
		{
			name:  "open tags closed at cut",
			html:  "<p>one <em>two three</em> four</p>",
			limit: 2,
			want:  "<p>one <em>two ...</em></p>",
		},
		{
			name:  "closed tags not reclosed",
			html:  "<p>one two</p><p>three four</p>",
			limit: 3,
			want:  "<p>one two</p><p>three ...</p>",
		},
		{
			name:  "void elements ignored",
			html:  "one<br>two three",
			limit: 2,
			want:  "one<br>two ...",
		},
		{
			name:  "self closing ignored",
			html:  "one <img src=\"x\"/> two three",
			limit: 2,
			want:  "one <img src=\"x\"/> two ...",
		},
		{
			name:  "zero limit",
			html:  "anything",
			limit: 0,
			want:  "",
		},
		{
			name:  "empty input",
			html:  "",
			limit: 5,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateHTMLWords(tt.html, tt.limit); got != tt.want {
				t.Errorf("truncateHTMLWords(%q, %d) = %q, want %q", tt.html, tt.limit, got, tt.want)
			}
		})
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"plain", "one two three", 3},
		{"tags stripped", "<p>one <em>two</em></p>", 2},
		{"empty", "", 0},
		{"wide run counts once", "before 世界你好 after", 3},
		{"two wide runs", "世界 and 你好", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &models.ArticleModel{RenderedContent: tt.content}
			if got := WordCount(a); got != tt.want {
				t.Errorf("WordCount(%q) = %d, want %d", tt.content, got, tt.want)
			}
		})
	}
}

func teaserService(limit int) *Service {
	return &Service{cfg: config.ArticleConfig{TeaserWordLimit: limit}}
}

func TestTeaserPrefersDescription(t *testing.T) {
	s := teaserService(75)
	a := &models.ArticleModel{
		Description:     "the summary",
		RenderedContent: "long body that should not be used",
	}
	if got := s.Teaser(a); got != "the summary" {
		t.Errorf("got %q, want the description", got)
	}
}

func TestTeaserTruncatesContent(t *testing.T) {
	s := teaserService(2)
	a := &models.ArticleModel{RenderedContent: "<p>one two three</p>"}
	want := "<p>one two ...</p>"
	if got := s.Teaser(a); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTeaserMemoized(t *testing.T) {
	s := teaserService(2)
	a := &models.ArticleModel{RenderedContent: "one two three"}

	first := s.Teaser(a)
	a.RenderedContent = "completely different text now"
	if got := s.Teaser(a); got != first {
		t.Errorf("second call returned %q, want memoized %q", got, first)
	}
}
