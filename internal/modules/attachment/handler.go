package attachment

import (
	"os"

	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/attachments")
	g.GET("/article/:articleId", h.listForArticle)
	g.GET("/:id/file", h.file)
	g.POST("", authMW, h.upload)
	g.PATCH("/:id", authMW, h.updateCaption)
	g.DELETE("/:id", authMW, h.remove)
}

type attachmentView struct {
	ID               string `json:"id"`
	ArticleID        string `json:"article_id"`
	File             string `json:"file"`
	Filename         string `json:"filename"`
	Caption          string `json:"caption"`
	ContentTypeClass string `json:"content_type_class"`
}

func (h *Handler) listForArticle(c *gin.Context) {
	attachments, err := h.svc.ListForArticle(c.Request.Context(), c.Param("articleId"))
	if err != nil {
		response.InternalError(c, err)
		return
	}

	views := make([]attachmentView, len(attachments))
	for i, a := range attachments {
		views[i] = attachmentView{
			ID:               a.ID,
			ArticleID:        a.ArticleID,
			File:             a.File,
			Filename:         a.Filename(),
			Caption:          a.Caption,
			ContentTypeClass: a.ContentTypeClass(),
		}
	}
	response.OK(c, views)
}

func (h *Handler) file(c *gin.Context) {
	a, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if a == nil {
		response.NotFound(c)
		return
	}

	path := h.svc.Path(a)
	if _, err := os.Stat(path); err != nil {
		response.NotFound(c)
		return
	}

	c.Header("Cache-Control", "public, max-age=31536000")
	c.File(path)
}

func (h *Handler) upload(c *gin.Context) {
	articleID := c.PostForm("article_id")
	if articleID == "" {
		response.BadRequest(c, "article_id is required")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	a, err := h.svc.Store(c.Request.Context(), articleID, c.PostForm("caption"), fh)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, a)
}

type updateCaptionDTO struct {
	Caption string `json:"caption" binding:"max=255"`
}

func (h *Handler) updateCaption(c *gin.Context) {
	var dto updateCaptionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.svc.UpdateCaption(c.Request.Context(), c.Param("id"), dto.Caption); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
