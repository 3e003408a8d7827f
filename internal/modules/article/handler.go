package article

import (
	"errors"
	"strconv"
	"time"

	"github.com/articlekit/core/internal/middleware"
	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/pagination"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc    *Service
	tags   TagResolver
	titles TitleResolver
}

func NewHandler(svc *Service, tags TagResolver, titles TitleResolver) *Handler {
	return &Handler{svc: svc, tags: tags, titles: titles}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	g := rg.Group("/articles")
	g.GET("", optionalAuthMW, h.list)
	g.GET("/:id", optionalAuthMW, h.get)
	g.GET("/:id/adjacent", optionalAuthMW, h.adjacent)
	g.GET("/:id/links", optionalAuthMW, h.links)
	g.GET("/slug/:year/:slug", optionalAuthMW, h.getBySlug)
	g.POST("", authMW, h.create)
	g.PUT("/:id", authMW, h.update)
	g.DELETE("/:id", authMW, h.remove)
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		TagSlug:  c.Query("tag"),
		StatusID: c.Query("status"),
	}
	if y := c.Query("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(c, "invalid year")
			return
		}
		filter.Year = year
	}

	articles, p, err := h.svc.List(c.Request.Context(), pagination.FromContext(c), filter, middleware.IsSuperuser(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, h.listItems(articles), p)
}

type listItem struct {
	models.ArticleModel
	Teaser    string `json:"teaser"`
	WordCount int    `json:"word_count"`
}

func (h *Handler) listItems(articles []models.ArticleModel) []listItem {
	items := make([]listItem, len(articles))
	for i := range articles {
		items[i] = listItem{
			ArticleModel: articles[i],
			Teaser:       h.svc.Teaser(&articles[i]),
			WordCount:    WordCount(&articles[i]),
		}
	}
	return items
}

func (h *Handler) get(c *gin.Context) {
	a, err := h.fetchVisible(c, c.Param("id"))
	if err != nil || a == nil {
		return
	}
	response.OK(c, a)
}

func (h *Handler) getBySlug(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, "invalid year")
		return
	}

	a, err := h.svc.GetBySlug(c.Request.Context(), year, c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if a == nil || !h.visible(c, a) {
		response.NotFound(c)
		return
	}
	response.OK(c, a)
}

// adjacent returns the next and previous live articles around this one.
func (h *Handler) adjacent(c *gin.Context) {
	a, err := h.fetchVisible(c, c.Param("id"))
	if err != nil || a == nil {
		return
	}

	superuser := middleware.IsSuperuser(c)
	next, err := h.svc.Next(c.Request.Context(), a, superuser)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	prev, err := h.svc.Previous(c.Request.Context(), a, superuser)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"next": next, "previous": prev})
}

func (h *Handler) links(c *gin.Context) {
	a, err := h.fetchVisible(c, c.Param("id"))
	if err != nil || a == nil {
		return
	}
	links := Links(c.Request.Context(), a, h.titles)
	response.OK(c, links)
}

func (h *Handler) create(c *gin.Context) {
	var dto CreateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a := dto.toModel(middleware.UserID(c), h.svc.cfg)
	ctx := c.Request.Context()

	if len(dto.SiteIDs) > 0 || len(dto.TagNames) > 0 || len(dto.FollowupIDs) > 0 || len(dto.RelatedIDs) > 0 {
		// associations need a persisted row; run the pipeline once, attach,
		// then save again so the derived fields see the associations
		if err := h.svc.Save(ctx, a); err != nil {
			h.writeSaveError(c, err)
			return
		}
		if err := h.applyAssociations(c, a, &dto.TagNames, &dto.SiteIDs, &dto.FollowupIDs, &dto.RelatedIDs); err != nil {
			return
		}
	}

	if err := h.svc.Save(ctx, a); err != nil {
		h.writeSaveError(c, err)
		return
	}
	response.Created(c, a)
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	a, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if a == nil {
		response.NotFound(c)
		return
	}
	if !middleware.IsSuperuser(c) && a.AuthorID != middleware.UserID(c) {
		response.Forbidden(c)
		return
	}

	dto.apply(a)

	if err := h.applyAssociations(c, a, dto.TagNames, dto.SiteIDs, dto.FollowupIDs, dto.RelatedIDs); err != nil {
		return
	}

	if err := h.svc.Save(c.Request.Context(), a); err != nil {
		h.writeSaveError(c, err)
		return
	}
	response.OK(c, a)
}

func (h *Handler) remove(c *gin.Context) {
	if !middleware.IsSuperuser(c) {
		a, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			response.InternalError(c, err)
			return
		}
		if a == nil {
			response.NotFound(c)
			return
		}
		if a.AuthorID != middleware.UserID(c) {
			response.Forbidden(c)
			return
		}
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// fetchVisible loads an article and enforces visibility; it writes the error
// response itself, so callers bail out on (nil, err) or (nil, nil).
func (h *Handler) fetchVisible(c *gin.Context, id string) (*models.ArticleModel, error) {
	a, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.InternalError(c, err)
		return nil, err
	}
	if a == nil || !h.visible(c, a) {
		response.NotFound(c)
		return nil, nil
	}
	return a, nil
}

func (h *Handler) visible(c *gin.Context, a *models.ArticleModel) bool {
	if middleware.IsSuperuser(c) {
		return true
	}
	if a.LoginRequired && middleware.UserID(c) == "" {
		return false
	}
	now := time.Now()
	if !a.IsActive || a.PublishDate.After(now) || a.Expired(now) {
		return false
	}
	return a.Status == nil || a.Status.IsLive
}

// applyAssociations replaces only the association sets that were present in
// the request; nil slices mean "leave untouched".
func (h *Handler) applyAssociations(c *gin.Context, a *models.ArticleModel, tagNames, siteIDs, followupIDs, relatedIDs *[]string) error {
	ctx := c.Request.Context()
	if tagNames != nil {
		if err := h.svc.SetTags(ctx, a, *tagNames, h.tags); err != nil {
			response.InternalError(c, err)
			return err
		}
	}
	if siteIDs != nil {
		if err := h.svc.SetSites(ctx, a, *siteIDs); err != nil {
			response.InternalError(c, err)
			return err
		}
	}
	if followupIDs != nil {
		if err := h.svc.SetFollowups(ctx, a, *followupIDs); err != nil {
			response.InternalError(c, err)
			return err
		}
	}
	if relatedIDs != nil {
		if err := h.svc.SetRelated(ctx, a, *relatedIDs); err != nil {
			response.InternalError(c, err)
			return err
		}
	}
	return nil
}

func (h *Handler) writeSaveError(c *gin.Context, err error) {
	if errors.Is(err, ErrSlugConflict) {
		response.Conflict(c, err.Error())
		return
	}
	response.InternalError(c, err)
}
