package tag

import (
	"errors"
	"strings"

	"github.com/articlekit/core/internal/models"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrNameTaken is returned when a tag name or its derived slug collides with
// an existing tag.
var ErrNameTaken = errors.New("tag name or slug already taken")

// Service handles tag registry operations.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Normalize converts a tag name to its slug form: leading/trailing commas
// and spaces are stripped, the rest is lowercased, and interior spaces
// become dashes. Trimming runs first so edge whitespace never turns into a
// dash. Idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	slug := strings.ToLower(strings.Trim(name, ", "))
	return strings.ReplaceAll(slug, " ", "-")
}

// ResolvedSlug returns the stored slug if present, else the normalized name.
// Does not mutate the tag.
func ResolvedSlug(t *models.TagModel) string {
	if t.Slug != "" {
		return t.Slug
	}
	return Normalize(t.Name)
}

// Save recomputes the slug from the name unconditionally, then persists.
func (s *Service) Save(t *models.TagModel) error {
	t.Slug = Normalize(t.Name)
	if err := s.db.Save(t).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrNameTaken
		}
		return err
	}
	return nil
}

// GetOrCreate returns the tag with the given name, creating it on demand.
func (s *Service) GetOrCreate(name string) (*models.TagModel, error) {
	var t models.TagModel
	err := s.db.Where("name = ?", name).First(&t).Error
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	t = models.TagModel{Name: name}
	if err := s.Save(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all tags ordered by name.
func (s *Service) List() ([]models.TagModel, error) {
	var tags []models.TagModel
	err := s.db.Order("name").Find(&tags).Error
	return tags, err
}

// GetBySlug fetches a tag by slug. Returns (nil, nil) when absent.
func (s *Service) GetBySlug(slug string) (*models.TagModel, error) {
	var t models.TagModel
	if err := s.db.Where("slug = ?", slug).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// Delete removes a tag and its article associations.
func (s *Service) Delete(id string) error {
	if err := s.db.Exec("DELETE FROM article_tags WHERE tag_id = ?", id).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.TagModel{}, "id = ?", id).Error
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
