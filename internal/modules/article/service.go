package article

import (
	"context"
	"errors"

	"github.com/articlekit/core/internal/config"
	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/modules/site"
	"github.com/articlekit/core/internal/modules/status"
	"github.com/articlekit/core/internal/pkg/keymutex"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrSlugConflict is returned when no free slug could be found within the
// collision-scan bound, or when the database unique constraint rejects the
// write after a race.
var ErrSlugConflict = errors.New("slug already in use for this publish year")

// Indexer receives article documents for full-text indexing. Calls are
// best-effort; indexing failures never fail a save.
type Indexer interface {
	IndexArticle(ctx context.Context, a *models.ArticleModel) error
	RemoveArticle(ctx context.Context, id string) error
}

// Service owns article persistence: the save-time derivation pipeline plus
// the read-side query operations.
type Service struct {
	db       *gorm.DB
	cfg      config.ArticleConfig
	statuses *status.Service
	sites    *site.Service
	logger   *zap.Logger

	indexer Indexer

	// locks serializes the attach/derive steps that run after the primary
	// write for a given article identity. The auto-tag scan itself runs
	// outside that lock, collapsed by autoTagGroup so concurrent saves of
	// one article share a single scan.
	locks        *keymutex.KeyMutex
	autoTagGroup singleflight.Group

	// scanTags finds auto-tag candidates; swapped in tests.
	scanTags func(ctx context.Context, a *models.ArticleModel) ([]models.TagModel, error)
}

func NewService(db *gorm.DB, cfg config.ArticleConfig, statuses *status.Service, sites *site.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		db:       db,
		cfg:      cfg,
		statuses: statuses,
		sites:    sites,
		logger:   logger.Named("ArticleService"),
		locks:    keymutex.New(),
	}
	s.scanTags = s.findMatchingTags
	return s
}

// SetIndexer wires up full-text index updates (optional).
func (s *Service) SetIndexer(idx Indexer) { s.indexer = idx }

// GetByID fetches an article with its associations. Returns (nil, nil) when
// absent.
func (s *Service) GetByID(ctx context.Context, id string) (*models.ArticleModel, error) {
	var a models.ArticleModel
	err := s.db.WithContext(ctx).
		Preload("Status").Preload("Author").Preload("Tags").Preload("Sites").
		First(&a, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// GetBySlug fetches an article by (publish year, slug), falling back to the
// slug-redirect table when an edit has since re-derived the slug.
func (s *Service) GetBySlug(ctx context.Context, year int, slug string) (*models.ArticleModel, error) {
	var a models.ArticleModel
	err := s.db.WithContext(ctx).
		Preload("Status").Preload("Author").Preload("Tags").Preload("Sites").
		Where("publish_year = ? AND slug = ?", year, slug).
		First(&a).Error
	if err == nil {
		return &a, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var redirect models.SlugRedirectModel
	err = s.db.WithContext(ctx).
		Where("year = ? AND slug = ?", year, slug).
		First(&redirect).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.GetByID(ctx, redirect.ArticleID)
}

// Delete removes an article, its attachment rows, slug redirects, and its
// search-index document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("article_id = ?", id).
		Delete(&models.AttachmentModel{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Where("article_id = ?", id).
		Delete(&models.SlugRedirectModel{}).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Select(clause.Associations).
		Delete(&models.ArticleModel{Base: models.Base{ID: id}}).Error; err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.RemoveArticle(ctx, id); err != nil {
			s.logger.Warn("failed to remove article from search index",
				zap.String("id", id), zap.Error(err))
		}
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
