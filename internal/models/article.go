package models

import "time"

// ArticleModel is the primary content entity. Slug is unique within the
// publish year; PublishYear is maintained by the derivation pipeline so the
// database can enforce that with a composite unique index.
type ArticleModel struct {
	Base
	Title       string              `json:"title"        gorm:"not null;size:100"`
	Slug        string              `json:"slug"         gorm:"uniqueIndex:idx_articles_year_slug;not null"`
	PublishYear int                 `json:"publish_year" gorm:"uniqueIndex:idx_articles_year_slug;not null"`
	StatusID    *string             `json:"status_id"    gorm:"type:char(36);index"`
	Status      *ArticleStatusModel `json:"status,omitempty" gorm:"foreignKey:StatusID"`
	AuthorID    string              `json:"author_id"    gorm:"type:char(36);index;not null"`
	Author      *UserModel          `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Sites       []SiteModel         `json:"sites,omitempty" gorm:"many2many:article_sites;joinForeignKey:ArticleID;joinReferences:SiteID"`

	Keywords    string `json:"keywords"    gorm:"type:text"`
	Description string `json:"description" gorm:"type:text"`
	Content     string `json:"content"     gorm:"type:longtext"`
	// RenderedContent is a verbatim copy of Content kept in sync on every
	// save. Markup transformation is deliberately not applied here.
	RenderedContent string `json:"rendered_content" gorm:"type:longtext"`

	Tags    []TagModel `json:"tags,omitempty" gorm:"many2many:article_tags;joinForeignKey:ArticleID;joinReferences:TagID"`
	AutoTag bool       `json:"auto_tag"       gorm:"default:true"`

	// FollowupFor is asymmetric: this article follows up on those listed.
	FollowupFor []ArticleModel `json:"followup_for,omitempty" gorm:"many2many:article_followups;joinForeignKey:ArticleID;joinReferences:TargetID"`
	Related     []ArticleModel `json:"related,omitempty"      gorm:"many2many:article_related;joinForeignKey:ArticleID;joinReferences:RelatedID"`

	PublishDate    time.Time  `json:"publish_date"    gorm:"index;not null"`
	ExpirationDate *time.Time `json:"expiration_date"`

	IsActive      bool `json:"is_active"      gorm:"default:true;index"`
	LoginRequired bool `json:"login_required" gorm:"default:false"`

	UseAddThisButton bool   `json:"use_addthis_button" gorm:"default:true"`
	AddThisUseAuthor bool   `json:"addthis_use_author" gorm:"default:true"`
	AddThisUsername  string `json:"addthis_username"   gorm:"size:50"`

	Attachments []AttachmentModel `json:"attachments,omitempty" gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`

	teaser   string        `gorm:"-"`
	next     *ArticleModel `gorm:"-"`
	nextSet  bool          `gorm:"-"`
	prev     *ArticleModel `gorm:"-"`
	prevSet  bool          `gorm:"-"`
}

func (ArticleModel) TableName() string { return "articles" }

// Expired reports whether the article's expiration date has passed at t.
func (a *ArticleModel) Expired(t time.Time) bool {
	return a.ExpirationDate != nil && !a.ExpirationDate.After(t)
}

// CachedTeaser returns the memoized teaser for this in-memory value, or ""
// when it has not been computed yet.
func (a *ArticleModel) CachedTeaser() string { return a.teaser }

// SetCachedTeaser memoizes a computed teaser on this in-memory value.
func (a *ArticleModel) SetCachedTeaser(t string) { a.teaser = t }

// CachedNext returns the memoized next-article lookup. The second return
// reports whether a lookup has been performed for this in-memory value.
func (a *ArticleModel) CachedNext() (*ArticleModel, bool) { return a.next, a.nextSet }

func (a *ArticleModel) SetCachedNext(n *ArticleModel) { a.next, a.nextSet = n, true }

// CachedPrevious returns the memoized previous-article lookup.
func (a *ArticleModel) CachedPrevious() (*ArticleModel, bool) { return a.prev, a.prevSet }

func (a *ArticleModel) SetCachedPrevious(p *ArticleModel) { a.prev, a.prevSet = p, true }

// SlugRedirectModel records an old (year, slug) pair after an edit re-derived
// an article's slug, so the previously published URL keeps resolving.
type SlugRedirectModel struct {
	Base
	Year      int    `json:"year"       gorm:"uniqueIndex:idx_slug_redirects_year_slug;not null"`
	Slug      string `json:"slug"       gorm:"uniqueIndex:idx_slug_redirects_year_slug;not null"`
	ArticleID string `json:"article_id" gorm:"type:char(36);index;not null"`
}

func (SlugRedirectModel) TableName() string { return "slug_redirects" }
