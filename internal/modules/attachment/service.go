package attachment

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/articlekit/core/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service stores attachment files under <staticDir>/attachments and keeps a
// metadata row per file.
type Service struct {
	db        *gorm.DB
	staticDir string
}

func NewService(db *gorm.DB, staticDir string) *Service {
	return &Service{db: db, staticDir: staticDir}
}

// buildFileName generates a collision-resistant filename that preserves the
// original extension.
func buildFileName(original string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(original)))
	if ext == "" || len(ext) > 10 {
		ext = ".dat"
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:18] + ext
}

// ListForArticle returns the attachment rows for one article, oldest first.
func (s *Service) ListForArticle(ctx context.Context, articleID string) ([]models.AttachmentModel, error) {
	var attachments []models.AttachmentModel
	err := s.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at").
		Find(&attachments).Error
	return attachments, err
}

// GetByID returns (nil, nil) when absent.
func (s *Service) GetByID(ctx context.Context, id string) (*models.AttachmentModel, error) {
	var a models.AttachmentModel
	err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Store writes the uploaded file to disk and records the attachment row.
func (s *Service) Store(ctx context.Context, articleID, caption string, fh *multipart.FileHeader) (*models.AttachmentModel, error) {
	dir := filepath.Join(s.staticDir, "attachments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	name := buildFileName(fh.Filename)
	dst := filepath.Join(dir, name)

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return nil, err
	}

	a := &models.AttachmentModel{
		ArticleID: articleID,
		File:      "attachments/" + name,
		Caption:   caption,
	}
	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		os.Remove(dst)
		return nil, err
	}
	return a, nil
}

// UpdateCaption changes the caption of one attachment.
func (s *Service) UpdateCaption(ctx context.Context, id, caption string) error {
	return s.db.WithContext(ctx).Model(&models.AttachmentModel{}).
		Where("id = ?", id).
		Update("caption", caption).Error
}

// Delete removes the row and the stored file. A missing file on disk is not
// an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return nil
	}

	if err := s.db.WithContext(ctx).Delete(&models.AttachmentModel{}, "id = ?", id).Error; err != nil {
		return err
	}

	path := filepath.Join(s.staticDir, filepath.FromSlash(a.File))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves an attachment's on-disk location inside the static dir.
func (s *Service) Path(a *models.AttachmentModel) string {
	return filepath.Join(s.staticDir, filepath.FromSlash(a.File))
}
