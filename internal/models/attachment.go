package models

import (
	"mime"
	"path/filepath"
	"strings"
)

// AttachmentModel stores file metadata for an article attachment. The file
// itself lives in the static dir; File holds its path relative to that dir.
type AttachmentModel struct {
	Base
	ArticleID string `json:"article_id" gorm:"type:char(36);index;not null"`
	File      string `json:"file"       gorm:"not null"`
	Caption   string `json:"caption"    gorm:"size:255"`
}

func (AttachmentModel) TableName() string { return "attachments" }

// Filename returns the bare filename of the stored file.
func (a AttachmentModel) Filename() string {
	parts := strings.Split(a.File, "/")
	return parts[len(parts)-1]
}

// ContentTypeClass returns the guessed mime type with "/" replaced by "_",
// suitable for use as a CSS class. Unknown types count as text_plain.
func (a AttachmentModel) ContentTypeClass() string {
	mt := mime.TypeByExtension(filepath.Ext(a.File))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = mt[:i]
	}
	if mt == "" {
		return "text_plain"
	}
	return strings.ReplaceAll(mt, "/", "_")
}
