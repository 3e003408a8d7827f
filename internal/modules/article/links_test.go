package article

import (
	"context"
	"reflect"
	"testing"

	"github.com/articlekit/core/internal/models"
)

type mapResolver map[string]string

func (m mapResolver) TitleFor(ctx context.Context, url, linkText string) string {
	if title, ok := m[url]; ok {
		return title
	}
	return linkText
}

func TestLinks(t *testing.T) {
	a := &models.ArticleModel{
		RenderedContent: `<p>See <a href="https://example.com/a">first</a> and
<a class="ext" href="https://example.com/b">second</a>, then
<a href="https://example.com/a">first again</a>.</p>`,
	}

	got := Links(context.Background(), a, nil)
	want := []Link{
		{URL: "https://example.com/a", Title: "first"},
		{URL: "https://example.com/b", Title: "second"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLinksResolverTitles(t *testing.T) {
	a := &models.ArticleModel{
		RenderedContent: `<a href="https://example.com/doc">read this</a>`,
	}
	resolver := mapResolver{"https://example.com/doc": "Example Documentation"}

	got := Links(context.Background(), a, resolver)
	if len(got) != 1 || got[0].Title != "Example Documentation" {
		t.Errorf("got %v, want resolved title", got)
	}
}

func TestLinksNoAnchors(t *testing.T) {
	a := &models.ArticleModel{RenderedContent: "<p>no links at all</p>"}
	if got := Links(context.Background(), a, nil); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}
