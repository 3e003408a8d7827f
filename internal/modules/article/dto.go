package article

import (
	"context"
	"time"

	"github.com/articlekit/core/internal/config"
	"github.com/articlekit/core/internal/models"
)

type CreateArticleDTO struct {
	Title          string     `json:"title" binding:"required,max=100"`
	Content        string     `json:"content"`
	Keywords       string     `json:"keywords"`
	Description    string     `json:"description"`
	StatusID       *string    `json:"status_id"`
	PublishDate    *time.Time `json:"publish_date"`
	ExpirationDate *time.Time `json:"expiration_date"`
	IsActive       *bool      `json:"is_active"`
	LoginRequired  bool       `json:"login_required"`
	AutoTag        *bool      `json:"auto_tag"`

	UseAddThisButton *bool  `json:"use_addthis_button"`
	AddThisUseAuthor *bool  `json:"addthis_use_author"`
	AddThisUsername  string `json:"addthis_username"`

	TagNames    []string `json:"tags"`
	SiteIDs     []string `json:"site_ids"`
	FollowupIDs []string `json:"followup_ids"`
	RelatedIDs  []string `json:"related_ids"`
}

type UpdateArticleDTO struct {
	Title          *string    `json:"title" binding:"omitempty,max=100"`
	Content        *string    `json:"content"`
	Keywords       *string    `json:"keywords"`
	Description    *string    `json:"description"`
	StatusID       *string    `json:"status_id"`
	PublishDate    *time.Time `json:"publish_date"`
	ExpirationDate *time.Time `json:"expiration_date"`
	IsActive       *bool      `json:"is_active"`
	LoginRequired  *bool      `json:"login_required"`
	AutoTag        *bool      `json:"auto_tag"`

	UseAddThisButton *bool   `json:"use_addthis_button"`
	AddThisUseAuthor *bool   `json:"addthis_use_author"`
	AddThisUsername  *string `json:"addthis_username"`

	TagNames    *[]string `json:"tags"`
	SiteIDs     *[]string `json:"site_ids"`
	FollowupIDs *[]string `json:"followup_ids"`
	RelatedIDs  *[]string `json:"related_ids"`
}

// toModel builds a new article. Omitted booleans fall back to the configured
// article defaults, not hard-coded values.
func (dto *CreateArticleDTO) toModel(authorID string, cfg config.ArticleConfig) *models.ArticleModel {
	a := &models.ArticleModel{
		Title:           dto.Title,
		Content:         dto.Content,
		Keywords:        dto.Keywords,
		Description:     dto.Description,
		StatusID:        dto.StatusID,
		AuthorID:        authorID,
		ExpirationDate:  dto.ExpirationDate,
		LoginRequired:   dto.LoginRequired,
		AddThisUsername: dto.AddThisUsername,

		IsActive:         true,
		AutoTag:          boolOr(cfg.AutoTag, true),
		UseAddThisButton: boolOr(cfg.UseAddThisButton, true),
		AddThisUseAuthor: boolOr(cfg.AddThisUseAuthor, true),
	}
	if dto.PublishDate != nil {
		a.PublishDate = *dto.PublishDate
	}
	if dto.IsActive != nil {
		a.IsActive = *dto.IsActive
	}
	if dto.AutoTag != nil {
		a.AutoTag = *dto.AutoTag
	}
	if dto.UseAddThisButton != nil {
		a.UseAddThisButton = *dto.UseAddThisButton
	}
	if dto.AddThisUseAuthor != nil {
		a.AddThisUseAuthor = *dto.AddThisUseAuthor
	}
	return a
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func (dto *UpdateArticleDTO) apply(a *models.ArticleModel) {
	if dto.Title != nil {
		a.Title = *dto.Title
	}
	if dto.Content != nil {
		a.Content = *dto.Content
	}
	if dto.Keywords != nil {
		a.Keywords = *dto.Keywords
	}
	if dto.Description != nil {
		a.Description = *dto.Description
	}
	if dto.StatusID != nil {
		a.StatusID = dto.StatusID
	}
	if dto.PublishDate != nil {
		a.PublishDate = *dto.PublishDate
	}
	if dto.ExpirationDate != nil {
		a.ExpirationDate = dto.ExpirationDate
	}
	if dto.IsActive != nil {
		a.IsActive = *dto.IsActive
	}
	if dto.LoginRequired != nil {
		a.LoginRequired = *dto.LoginRequired
	}
	if dto.AutoTag != nil {
		a.AutoTag = *dto.AutoTag
	}
	if dto.UseAddThisButton != nil {
		a.UseAddThisButton = *dto.UseAddThisButton
	}
	if dto.AddThisUseAuthor != nil {
		a.AddThisUseAuthor = *dto.AddThisUseAuthor
	}
	if dto.AddThisUsername != nil {
		a.AddThisUsername = *dto.AddThisUsername
	}
}

// TagResolver turns a tag name into a persisted tag, creating it when it
// does not exist yet. Implemented by the tag service.
type TagResolver interface {
	GetOrCreate(name string) (*models.TagModel, error)
}

// SetTags replaces the article's tag associations with the named tags,
// creating tags that do not exist yet.
func (s *Service) SetTags(ctx context.Context, a *models.ArticleModel, names []string, tags TagResolver) error {
	resolved := make([]models.TagModel, 0, len(names))
	for _, name := range names {
		t, err := tags.GetOrCreate(name)
		if err != nil {
			return err
		}
		resolved = append(resolved, *t)
	}
	if err := s.db.WithContext(ctx).Model(a).Association("Tags").Replace(resolved); err != nil {
		return err
	}
	a.Tags = resolved
	return nil
}

// SetSites replaces the article's site associations.
func (s *Service) SetSites(ctx context.Context, a *models.ArticleModel, siteIDs []string) error {
	var sites []models.SiteModel
	if len(siteIDs) > 0 {
		if err := s.db.WithContext(ctx).Find(&sites, "id IN ?", siteIDs).Error; err != nil {
			return err
		}
	}
	if err := s.db.WithContext(ctx).Model(a).Association("Sites").Replace(sites); err != nil {
		return err
	}
	a.Sites = sites
	return nil
}

// SetFollowups replaces the set of articles this one follows up on.
func (s *Service) SetFollowups(ctx context.Context, a *models.ArticleModel, ids []string) error {
	return s.replaceArticleAssociation(ctx, a, "FollowupFor", ids)
}

// SetRelated replaces the article's related-article set.
func (s *Service) SetRelated(ctx context.Context, a *models.ArticleModel, ids []string) error {
	return s.replaceArticleAssociation(ctx, a, "Related", ids)
}

func (s *Service) replaceArticleAssociation(ctx context.Context, a *models.ArticleModel, name string, ids []string) error {
	var targets []models.ArticleModel
	if len(ids) > 0 {
		if err := s.db.WithContext(ctx).Find(&targets, "id IN ?", ids).Error; err != nil {
			return err
		}
	}
	return s.db.WithContext(ctx).Model(a).Association(name).Replace(targets)
}
