package tag

import (
	"testing"

	"github.com/articlekit/core/internal/models"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces to dashes", "Foo Bar", "foo-bar"},
		{"already clean", "foo-bar", "foo-bar"},
		{"trailing space", "foo-bar ", "foo-bar"},
		{"leading comma", ", python", "python"},
		{"trailing comma and space", "golang, ", "golang"},
		{"uppercase", "PYTHON", "python"},
		{"multiple words", "content management system", "content-management-system"},
		{"empty", "", ""},
		{"only separators", " , ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Foo Bar", "foo-bar ", ", Mixed Case Tag,", "cjk 标签"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeCaseSpaceInsensitive(t *testing.T) {
	if Normalize("Foo Bar") != Normalize("foo-bar ") {
		t.Errorf("Normalize(\"Foo Bar\") = %q, Normalize(\"foo-bar \") = %q; want equal",
			Normalize("Foo Bar"), Normalize("foo-bar "))
	}
}

func TestResolvedSlug(t *testing.T) {
	tests := []struct {
		name string
		tag  models.TagModel
		want string
	}{
		{"stored slug wins", models.TagModel{Name: "Foo Bar", Slug: "custom"}, "custom"},
		{"lazy fallback", models.TagModel{Name: "Foo Bar"}, "foo-bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.tag.Slug
			if got := ResolvedSlug(&tt.tag); got != tt.want {
				t.Errorf("ResolvedSlug = %q, want %q", got, tt.want)
			}
			if tt.tag.Slug != before {
				t.Error("ResolvedSlug must not mutate the tag")
			}
		})
	}
}
