package article

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/articlekit/core/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm/clause"
)

// maxSlugAttempts bounds the collision scan; the composite unique index on
// (publish_year, slug) remains the authoritative guard.
const maxSlugAttempts = 100

// Save runs the full derivation pipeline and persists the article.
//
// Pre-write steps: render copy, addthis default, meta-description default,
// unique slug. After the primary write the identity-dependent steps run
// under a per-article lock: auto-tag, tags-to-keywords, default site. A
// second partial write happens only when one of those changed anything, and
// deliberately skips the pre-write steps so the slug is not re-derived.
func (s *Service) Save(ctx context.Context, a *models.ArticleModel) error {
	if a.PublishDate.IsZero() {
		a.PublishDate = time.Now()
	}
	if a.StatusID == nil {
		st, err := s.statuses.Default()
		if err != nil {
			return err
		}
		if st != nil {
			a.StatusID = &st.ID
		}
	}

	a.RenderedContent = a.Content
	s.applyAddThisDefault(a)
	s.applyDescriptionDefault(a)

	wasPersisted := a.ID != ""
	oldYear, oldSlug := a.PublishYear, a.Slug

	if err := s.assignUniqueSlug(ctx, a); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrSlugConflict
		}
		return err
	}

	if wasPersisted && oldSlug != "" && (oldSlug != a.Slug || oldYear != a.PublishYear) {
		s.trackSlugChange(ctx, oldYear, oldSlug, a.ID)
	}

	// the scan half of auto-tag runs before the per-article lock so
	// concurrent saves can share one scan; only the attach runs locked
	matches, err := s.scanMatchingTags(ctx, a)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(a.ID)
	defer unlock()

	needsSave := false

	tagged, err := s.attachMatchedTags(ctx, a, matches)
	if err != nil {
		return err
	}
	needsSave = needsSave || tagged

	keyworded, err := s.applyTagsToKeywords(ctx, a)
	if err != nil {
		return err
	}
	needsSave = needsSave || keyworded

	sited, err := s.applyDefaultSite(ctx, a)
	if err != nil {
		return err
	}
	needsSave = needsSave || sited

	if needsSave {
		// bypass the pre-write steps: persist only the columns the
		// identity-dependent steps may have touched
		if err := s.db.WithContext(ctx).Model(&models.ArticleModel{}).
			Where("id = ?", a.ID).
			Update("keywords", a.Keywords).Error; err != nil {
			return err
		}
	}

	if s.indexer != nil {
		if err := s.indexer.IndexArticle(ctx, a); err != nil {
			s.logger.Warn("failed to index article", zap.String("id", a.ID), zap.Error(err))
		}
	}
	return nil
}

// applyAddThisDefault fills a blank addthis username when the button is
// enabled: from the author when the use-author flag is set, else from the
// configured fallback account. An explicit username always wins.
func (s *Service) applyAddThisDefault(a *models.ArticleModel) {
	if !a.UseAddThisButton || a.AddThisUsername != "" {
		return
	}
	if !a.AddThisUseAuthor {
		a.AddThisUsername = s.cfg.DefaultAddThisUser
		return
	}
	if a.Author != nil {
		a.AddThisUsername = a.Author.Username
		return
	}
	if a.AuthorID != "" {
		var author models.UserModel
		if err := s.db.First(&author, "id = ?", a.AuthorID).Error; err == nil {
			a.Author = &author
			a.AddThisUsername = author.Username
		}
	}
}

// applyDescriptionDefault sets a blank description to the computed teaser.
// A non-blank description is never overwritten, so recomputation is a no-op.
func (s *Service) applyDescriptionDefault(a *models.ArticleModel) {
	if strings.TrimSpace(a.Description) != "" {
		return
	}
	a.Description = truncateHTMLWords(a.Content, s.cfg.TeaserWordLimit)
}

// candidateSlug joins the whitespace-trimmed words of the title with dashes.
// Not a full slugify: punctuation is preserved.
func candidateSlug(title string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(title)), "-")
}

// uniqueSlug resolves collisions by appending -1, -2, ... to base until taken
// reports the candidate free, up to maxAttempts.
func uniqueSlug(base string, maxAttempts int, taken func(slug string) (bool, error)) (string, error) {
	slug := base
	for i := 0; i < maxAttempts; i++ {
		inUse, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !inUse {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i+1)
	}
	return "", ErrSlugConflict
}

// assignUniqueSlug recomputes the slug from the title on every save and
// resolves collisions within the publish year. The article's own row is
// excluded from the collision scan so an unchanged title keeps its slug.
func (s *Service) assignUniqueSlug(ctx context.Context, a *models.ArticleModel) error {
	a.PublishYear = a.PublishDate.Year()
	base := candidateSlug(a.Title)

	slug, err := uniqueSlug(base, maxSlugAttempts, func(candidate string) (bool, error) {
		var count int64
		q := s.db.WithContext(ctx).Model(&models.ArticleModel{}).
			Where("publish_year = ? AND slug = ?", a.PublishYear, candidate)
		if a.ID != "" {
			q = q.Where("id <> ?", a.ID)
		}
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
	if err != nil {
		return err
	}
	a.Slug = slug
	return nil
}

// trackSlugChange records the old (year, slug) so the previously published
// URL keeps resolving. Best-effort.
func (s *Service) trackSlugChange(ctx context.Context, year int, slug, articleID string) {
	redirect := models.SlugRedirectModel{Year: year, Slug: slug, ArticleID: articleID}
	err := s.db.WithContext(ctx).
		Where(models.SlugRedirectModel{Year: year, Slug: slug}).
		Assign(models.SlugRedirectModel{ArticleID: articleID}).
		FirstOrCreate(&redirect).Error
	if err != nil {
		s.logger.Warn("failed to track slug change",
			zap.Int("year", year), zap.String("slug", slug), zap.Error(err))
	}
}

// scanMatchingTags finds the tags to auto-attach. The scan runs through a
// singleflight group keyed by article ID, so saves of one article that race
// share a single scan instead of each reading the full tag table. It runs
// before the per-article lock; the stale-read risk is resolved by
// attachMatchedTags re-checking under the lock.
func (s *Service) scanMatchingTags(ctx context.Context, a *models.ArticleModel) ([]models.TagModel, error) {
	if !a.AutoTag {
		return nil, nil
	}

	v, err, _ := s.autoTagGroup.Do(a.ID, func() (interface{}, error) {
		matches, err := s.scanTags(ctx, a)
		return matches, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.TagModel), nil
}

// findMatchingTags scans content, title, description, and keywords for
// whole-word, case-insensitive occurrences of every tag not already
// attached.
func (s *Service) findMatchingTags(ctx context.Context, a *models.ArticleModel) ([]models.TagModel, error) {
	var attached []models.TagModel
	if err := s.db.WithContext(ctx).Model(a).Association("Tags").Find(&attached); err != nil {
		return nil, err
	}
	attachedIDs := make([]string, 0, len(attached))
	for _, t := range attached {
		attachedIDs = append(attachedIDs, t.ID)
	}

	q := s.db.WithContext(ctx).Model(&models.TagModel{})
	if len(attachedIDs) > 0 {
		q = q.Where("id NOT IN ?", attachedIDs)
	}
	var unused []models.TagModel
	if err := q.Find(&unused).Error; err != nil {
		return nil, err
	}

	return matchTags(unused, a.Content, a.Title, a.Description, a.Keywords), nil
}

// attachMatchedTags attaches the scan results under the article lock. The
// attached set is re-read first: a shared scan result reaches every saver
// that joined the flight, and only the first may write each tag. Returns
// whether any tag was newly attached.
func (s *Service) attachMatchedTags(ctx context.Context, a *models.ArticleModel, matches []models.TagModel) (bool, error) {
	if len(matches) == 0 {
		return false, nil
	}

	var attached []models.TagModel
	if err := s.db.WithContext(ctx).Model(a).Association("Tags").Find(&attached); err != nil {
		return false, err
	}
	have := make(map[string]bool, len(attached))
	for _, t := range attached {
		have[t.ID] = true
	}

	var toAttach []*models.TagModel
	var added []models.TagModel
	for i := range matches {
		if have[matches[i].ID] {
			continue
		}
		toAttach = append(toAttach, &matches[i])
		added = append(added, matches[i])
	}
	if len(toAttach) == 0 {
		a.Tags = attached
		return false, nil
	}

	if err := s.db.WithContext(ctx).Model(a).Association("Tags").Append(toAttach); err != nil {
		return false, err
	}
	a.Tags = append(attached, added...)
	return true, nil
}

// matchTags returns the tags whose name occurs as a whole word, case
// insensitively, in any of the given texts.
func matchTags(tags []models.TagModel, texts ...string) []models.TagModel {
	var matched []models.TagModel
	for _, t := range tags {
		if t.Name == "" {
			continue
		}
		pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(t.Name) + `\b`)
		if err != nil {
			continue
		}
		for _, text := range texts {
			if pattern.MatchString(text) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}

// applyTagsToKeywords sets blank keywords to the comma-joined names of the
// attached tags, in attachment order. Non-blank keywords stay untouched.
func (s *Service) applyTagsToKeywords(ctx context.Context, a *models.ArticleModel) (bool, error) {
	if strings.TrimSpace(a.Keywords) != "" {
		return false, nil
	}

	tags := a.Tags
	if tags == nil {
		if err := s.db.WithContext(ctx).Model(a).Association("Tags").Find(&tags); err != nil {
			return false, err
		}
	}

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	a.Keywords = strings.Join(names, ", ")
	return true, nil
}

// applyDefaultSite associates the configured default site when the article
// has no site association yet.
func (s *Service) applyDefaultSite(ctx context.Context, a *models.ArticleModel) (bool, error) {
	count := s.db.WithContext(ctx).Model(a).Association("Sites").Count()
	if count > 0 {
		return false, nil
	}

	def, err := s.sites.Default()
	if err != nil {
		return false, err
	}
	if def == nil {
		return false, nil
	}

	if err := s.db.WithContext(ctx).Model(a).Association("Sites").Append(def); err != nil {
		return false, err
	}
	a.Sites = append(a.Sites, *def)
	return true, nil
}
