package attachment

import (
	"strings"
	"testing"
)

func TestBuildFileName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		wantExt  string
	}{
		{"keeps extension", "photo.JPG", ".jpg"},
		{"no extension", "README", ".dat"},
		{"oversized extension", "weird.thisistoolongtokeep", ".dat"},
		{"trims whitespace", "  doc.pdf  ", ".pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildFileName(tt.original)
			if !strings.HasSuffix(got, tt.wantExt) {
				t.Errorf("buildFileName(%q) = %q, want suffix %q", tt.original, got, tt.wantExt)
			}
			base := strings.TrimSuffix(got, tt.wantExt)
			if len(base) != 18 {
				t.Errorf("base %q has length %d, want 18", base, len(base))
			}
		})
	}
}

func TestBuildFileNameUnique(t *testing.T) {
	a := buildFileName("x.png")
	b := buildFileName("x.png")
	if a == b {
		t.Errorf("two generated names collided: %q", a)
	}
}
