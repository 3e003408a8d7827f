package article

import (
	"context"
	"errors"
	"time"

	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/pagination"
	"github.com/articlekit/core/internal/pkg/response"
	"gorm.io/gorm"
)

// activeQuery selects articles that are flagged active, already published,
// and not yet expired.
func (s *Service) activeQuery(ctx context.Context, now time.Time) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.ArticleModel{}).
		Where("is_active = ?", true).
		Where("publish_date <= ?", now).
		Where("expiration_date IS NULL OR expiration_date >= ?", now)
}

// liveQuery narrows activeQuery to live statuses; superusers see every
// active article regardless of status.
func (s *Service) liveQuery(ctx context.Context, now time.Time, superuser bool) *gorm.DB {
	q := s.activeQuery(ctx, now)
	if !superuser {
		q = q.Joins("JOIN article_statuses ON article_statuses.id = articles.status_id").
			Where("article_statuses.is_live = ?", true)
	}
	return q
}

// Active returns all published, unexpired, active articles, newest first.
func (s *Service) Active(ctx context.Context) ([]models.ArticleModel, error) {
	var articles []models.ArticleModel
	err := s.activeQuery(ctx, time.Now()).
		Preload("Status").Preload("Tags").
		Order("publish_date DESC, title").
		Find(&articles).Error
	return articles, err
}

// Live returns the active articles visible to the given audience: ordinary
// users only see live statuses, superusers see everything active.
func (s *Service) Live(ctx context.Context, superuser bool) ([]models.ArticleModel, error) {
	var articles []models.ArticleModel
	err := s.liveQuery(ctx, time.Now(), superuser).
		Preload("Status").Preload("Tags").
		Order("publish_date DESC, title").
		Find(&articles).Error
	return articles, err
}

// Next returns the earliest live article published at or after the pivot,
// excluding the pivot itself. Ties on publish date break by id so the answer
// is deterministic. Memoized on the in-memory value.
func (s *Service) Next(ctx context.Context, a *models.ArticleModel, superuser bool) (*models.ArticleModel, error) {
	if cached, ok := a.CachedNext(); ok {
		return cached, nil
	}

	var next models.ArticleModel
	err := s.liveQuery(ctx, time.Now(), superuser).
		Where("articles.id <> ?", a.ID).
		Where("publish_date >= ?", a.PublishDate).
		Order("publish_date, articles.id").
		First(&next).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.SetCachedNext(nil)
			return nil, nil
		}
		return nil, err
	}
	a.SetCachedNext(&next)
	return &next, nil
}

// Previous is symmetric to Next: the latest live article published at or
// before the pivot.
func (s *Service) Previous(ctx context.Context, a *models.ArticleModel, superuser bool) (*models.ArticleModel, error) {
	if cached, ok := a.CachedPrevious(); ok {
		return cached, nil
	}

	var prev models.ArticleModel
	err := s.liveQuery(ctx, time.Now(), superuser).
		Where("articles.id <> ?", a.ID).
		Where("publish_date <= ?", a.PublishDate).
		Order("publish_date DESC, articles.id DESC").
		First(&prev).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a.SetCachedPrevious(nil)
			return nil, nil
		}
		return nil, err
	}
	a.SetCachedPrevious(&prev)
	return &prev, nil
}

// ListFilter narrows the paginated listing.
type ListFilter struct {
	TagSlug  string
	StatusID string
	Year     int
}

// List returns a page of articles visible to the given audience, newest
// first, with its pagination metadata.
func (s *Service) List(ctx context.Context, q pagination.Query, filter ListFilter, superuser bool) ([]models.ArticleModel, response.Pagination, error) {
	query := s.liveQuery(ctx, time.Now(), superuser).
		Preload("Status").Preload("Tags").
		Order("publish_date DESC, title")

	if filter.TagSlug != "" {
		query = query.
			Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.slug = ?", filter.TagSlug)
	}
	if filter.StatusID != "" {
		query = query.Where("articles.status_id = ?", filter.StatusID)
	}
	if filter.Year != 0 {
		query = query.Where("publish_year = ?", filter.Year)
	}

	var articles []models.ArticleModel
	p, err := pagination.Paginate(query, q, &articles)
	if err != nil {
		return nil, response.Pagination{}, err
	}
	return articles, p, nil
}

// ReconcileExpired deactivates articles whose expiration date has passed
// while they were still flagged active. Invoked explicitly (and from the
// scheduler), never as a side effect of loading an article.
func (s *Service) ReconcileExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Model(&models.ArticleModel{}).
		Where("is_active = ?", true).
		Where("expiration_date IS NOT NULL AND expiration_date <= ?", time.Now()).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
