package models

import "testing"

func TestAttachmentFilename(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"attachments/abc123.pdf", "abc123.pdf"},
		{"plain.txt", "plain.txt"},
		{"a/b/c/deep.png", "deep.png"},
	}
	for _, tt := range tests {
		a := AttachmentModel{File: tt.file}
		if got := a.Filename(); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestAttachmentContentTypeClass(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"attachments/doc.pdf", "application_pdf"},
		{"attachments/pic.png", "image_png"},
		{"attachments/unknown.zzz", "text_plain"},
		{"attachments/noext", "text_plain"},
	}
	for _, tt := range tests {
		a := AttachmentModel{File: tt.file}
		if got := a.ContentTypeClass(); got != tt.want {
			t.Errorf("ContentTypeClass(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
