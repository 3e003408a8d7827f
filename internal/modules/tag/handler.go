package tag

import (
	"errors"

	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/tags")
	g.GET("", h.list)
	g.GET("/:slug", h.get)
	g.POST("", authMW, h.create)
	g.DELETE("/:id", authMW, h.remove)
}

func (h *Handler) list(c *gin.Context) {
	tags, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, tags)
}

func (h *Handler) get(c *gin.Context) {
	t, err := h.svc.GetBySlug(c.Param("slug"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if t == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, t)
}

type createTagDTO struct {
	Name string `json:"name" binding:"required,max=64"`
}

func (h *Handler) create(c *gin.Context) {
	var dto createTagDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	t := models.TagModel{Name: dto.Name}
	if err := h.svc.Save(&t); err != nil {
		if errors.Is(err, ErrNameTaken) {
			response.Conflict(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, t)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
