package article

import (
	"testing"

	"github.com/articlekit/core/internal/config"
)

func TestCreateDTODefaultsFromConfig(t *testing.T) {
	off := false
	on := true

	t.Run("config defaults apply when dto omits flags", func(t *testing.T) {
		cfg := config.ArticleConfig{
			AutoTag:          &off,
			UseAddThisButton: &off,
			AddThisUseAuthor: &off,
		}
		a := (&CreateArticleDTO{Title: "t"}).toModel("author-1", cfg)
		if a.AutoTag {
			t.Error("AutoTag = true, want configured false")
		}
		if a.UseAddThisButton {
			t.Error("UseAddThisButton = true, want configured false")
		}
		if a.AddThisUseAuthor {
			t.Error("AddThisUseAuthor = true, want configured false")
		}
	})

	t.Run("dto flags override config", func(t *testing.T) {
		cfg := config.ArticleConfig{
			AutoTag:          &off,
			UseAddThisButton: &off,
			AddThisUseAuthor: &off,
		}
		dto := &CreateArticleDTO{
			Title:            "t",
			AutoTag:          &on,
			UseAddThisButton: &on,
			AddThisUseAuthor: &on,
		}
		a := dto.toModel("author-1", cfg)
		if !a.AutoTag || !a.UseAddThisButton || !a.AddThisUseAuthor {
			t.Errorf("flags = %v/%v/%v, want all true",
				a.AutoTag, a.UseAddThisButton, a.AddThisUseAuthor)
		}
	})

	t.Run("unset config falls back to true", func(t *testing.T) {
		a := (&CreateArticleDTO{Title: "t"}).toModel("author-1", config.ArticleConfig{})
		if !a.AutoTag || !a.UseAddThisButton || !a.AddThisUseAuthor {
			t.Errorf("flags = %v/%v/%v, want all true",
				a.AutoTag, a.UseAddThisButton, a.AddThisUseAuthor)
		}
	})

	t.Run("author id carried", func(t *testing.T) {
		a := (&CreateArticleDTO{Title: "t"}).toModel("author-1", config.ArticleConfig{})
		if a.AuthorID != "author-1" {
			t.Errorf("AuthorID = %q, want author-1", a.AuthorID)
		}
		if !a.IsActive {
			t.Error("IsActive = false, want true")
		}
	})
}
