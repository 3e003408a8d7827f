package site

import (
	"errors"

	"github.com/articlekit/core/internal/models"
	"gorm.io/gorm"
)

// Service handles the site registry. The derivation pipeline attaches the
// configured default site to articles saved without any site association.
type Service struct {
	db            *gorm.DB
	defaultSiteID string
}

func NewService(db *gorm.DB, defaultSiteID string) *Service {
	return &Service{db: db, defaultSiteID: defaultSiteID}
}

// Default returns the configured default site, or nil when unset or missing.
func (s *Service) Default() (*models.SiteModel, error) {
	if s.defaultSiteID == "" {
		return nil, nil
	}
	var site models.SiteModel
	err := s.db.First(&site, "id = ?", s.defaultSiteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// List returns all registered sites.
func (s *Service) List() ([]models.SiteModel, error) {
	var sites []models.SiteModel
	err := s.db.Order("name").Find(&sites).Error
	return sites, err
}

// Create registers a site.
func (s *Service) Create(site *models.SiteModel) error {
	return s.db.Create(site).Error
}
