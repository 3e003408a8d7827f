package site

import (
	"github.com/articlekit/core/internal/models"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/sites")
	g.GET("", h.list)
	g.POST("", authMW, h.create)
}

func (h *Handler) list(c *gin.Context) {
	sites, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, sites)
}

type createSiteDTO struct {
	Name   string `json:"name" binding:"required,max=100"`
	Domain string `json:"domain" binding:"required,max=100"`
}

func (h *Handler) create(c *gin.Context) {
	var dto createSiteDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	s := models.SiteModel{Name: dto.Name, Domain: dto.Domain}
	if err := h.svc.Create(&s); err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, s)
}
