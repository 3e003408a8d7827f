package status

import (
	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/statuses")
	g.GET("", h.list)
	g.POST("", authMW, h.create)
	g.PATCH("/:id", authMW, h.update)
	g.DELETE("/:id", authMW, h.remove)
}

func (h *Handler) list(c *gin.Context) {
	statuses, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, statuses)
}

type statusDTO struct {
	Name     string `json:"name" binding:"required,max=50"`
	Ordering int    `json:"ordering"`
	IsLive   bool   `json:"is_live"`
}

func (h *Handler) create(c *gin.Context) {
	var dto statusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st := models.ArticleStatusModel{Name: dto.Name, Ordering: dto.Ordering, IsLive: dto.IsLive}
	if err := h.svc.Create(&st); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, st)
}

type updateStatusDTO struct {
	Name     *string `json:"name"`
	Ordering *int    `json:"ordering"`
	IsLive   *bool   `json:"is_live"`
}

func (h *Handler) update(c *gin.Context) {
	var dto updateStatusDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Ordering != nil {
		updates["ordering"] = *dto.Ordering
	}
	if dto.IsLive != nil {
		updates["is_live"] = *dto.IsLive
	}
	if err := h.svc.Update(c.Param("id"), updates); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Param("id")); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
