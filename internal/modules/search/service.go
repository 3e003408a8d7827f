package search

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/articlekit/core/internal/config"
	"github.com/articlekit/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result is a single search hit returned to the client.
type Result struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
	PublishYear int    `json:"publish_year,omitempty"`
}

// Service indexes articles into MeiliSearch and answers queries, falling
// back to a MySQL LIKE scan when the index is unavailable.
type Service struct {
	db     *gorm.DB
	cfg    config.MeiliConfig
	logger *zap.Logger

	mu    sync.Mutex
	meili *meiliClient
	ready bool
}

func NewService(db *gorm.DB, cfg config.MeiliConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, cfg: cfg, logger: logger.Named("SearchService")}
}

func (s *Service) client() (*meiliClient, error) {
	if !s.cfg.Enable {
		return nil, fmt.Errorf("meilisearch is disabled")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meili == nil {
		s.meili = newMeiliClient(s.cfg.Host, s.cfg.APIKey, s.cfg.IndexName)
	}
	if !s.ready {
		if err := s.meili.EnsureSettings(); err != nil {
			return nil, err
		}
		s.ready = true
	}
	return s.meili, nil
}

// document flattens an article into the indexed shape. Tag names join into
// one searchable field.
func document(a *models.ArticleModel) map[string]interface{} {
	names := make([]string, len(a.Tags))
	for i, t := range a.Tags {
		names[i] = t.Name
	}
	return map[string]interface{}{
		"id":           a.ID,
		"title":        a.Title,
		"content":      a.Content,
		"tags":         strings.Join(names, " "),
		"keywords":     a.Keywords,
		"description":  a.Description,
		"slug":         a.Slug,
		"publish_year": a.PublishYear,
	}
}

// IndexArticle upserts one article document.
func (s *Service) IndexArticle(ctx context.Context, a *models.ArticleModel) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	return client.AddDocuments([]map[string]interface{}{document(a)})
}

// RemoveArticle drops an article from the index.
func (s *Service) RemoveArticle(ctx context.Context, id string) error {
	client, err := s.client()
	if err != nil {
		return err
	}
	return client.DeleteDocument(id)
}

// IndexAll rebuilds the index from every active article.
func (s *Service) IndexAll(ctx context.Context) error {
	client, err := s.client()
	if err != nil {
		return err
	}

	var articles []models.ArticleModel
	if err := s.db.WithContext(ctx).Preload("Tags").
		Where("is_active = ?", true).
		Find(&articles).Error; err != nil {
		return err
	}

	docs := make([]map[string]interface{}, len(articles))
	for i := range articles {
		docs[i] = document(&articles[i])
	}
	if len(docs) == 0 {
		return nil
	}
	return client.AddDocuments(docs)
}

// Search queries MeiliSearch when available, else falls back to MySQL.
func (s *Service) Search(ctx context.Context, q string) ([]Result, error) {
	if client, err := s.client(); err == nil {
		results, err := client.Search(q, 20)
		if err == nil {
			return results, nil
		}
		s.logger.Warn("meilisearch query failed, falling back to mysql", zap.Error(err))
	}
	return s.mysqlSearch(ctx, q)
}

func (s *Service) mysqlSearch(ctx context.Context, q string) ([]Result, error) {
	like := "%" + q + "%"

	var articles []models.ArticleModel
	err := s.db.WithContext(ctx).Model(&models.ArticleModel{}).
		Distinct("articles.id, articles.title, articles.description, articles.slug, articles.publish_year, articles.publish_date").
		Joins("LEFT JOIN article_tags ON article_tags.article_id = articles.id").
		Joins("LEFT JOIN tags ON tags.id = article_tags.tag_id").
		Where("articles.is_active = ?", true).
		Where(
			"articles.title LIKE ? OR articles.content LIKE ? OR articles.keywords LIKE ? OR articles.description LIKE ? OR tags.name LIKE ?",
			like, like, like, like, like,
		).
		Order("articles.publish_date DESC").
		Limit(20).
		Find(&articles).Error
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(articles))
	for i, a := range articles {
		results[i] = Result{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Slug:        a.Slug,
			PublishYear: a.PublishYear,
		}
	}
	return results, nil
}
