package status

import (
	"errors"

	"github.com/articlekit/core/internal/models"
	"gorm.io/gorm"
)

// Service handles the publication-status registry.
type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

// Default returns the first status ordered by (ordering, name), or nil when
// the registry is empty. New articles without an explicit status get this.
func (s *Service) Default() (*models.ArticleStatusModel, error) {
	var st models.ArticleStatusModel
	err := s.db.Order("ordering, name").First(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// List returns all statuses in registry order.
func (s *Service) List() ([]models.ArticleStatusModel, error) {
	var statuses []models.ArticleStatusModel
	err := s.db.Order("ordering, name").Find(&statuses).Error
	return statuses, err
}

// Create adds a status to the registry.
func (s *Service) Create(st *models.ArticleStatusModel) error {
	return s.db.Create(st).Error
}

// Update patches a status.
func (s *Service) Update(id string, updates map[string]interface{}) error {
	return s.db.Model(&models.ArticleStatusModel{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a status; articles referencing it keep a dangling pointer
// cleared to NULL by the FK.
func (s *Service) Delete(id string) error {
	if err := s.db.Model(&models.ArticleModel{}).Where("status_id = ?", id).
		Update("status_id", nil).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.ArticleStatusModel{}, "id = ?", id).Error
}
