package render

import (
	"strings"
	"testing"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"heading", "# Title", "<h1>Title</h1>"},
		{"emphasis", "some *em* text", "<em>em</em>"},
		{"link", "[go](https://go.dev)", `<a href="https://go.dev">go</a>`},
		{"strikethrough", "~~gone~~", "<del>gone</del>"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Markdown(tt.in)
			if tt.want == "" {
				if got != "" {
					t.Errorf("Markdown(%q) = %q, want empty", tt.in, got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("Markdown(%q) = %q, want substring %q", tt.in, got, tt.want)
			}
		})
	}
}
