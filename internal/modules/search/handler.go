package search

import (
	"context"

	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/search")
	g.GET("", h.search)
	g.POST("/index", authMW, h.reindex)
}

func (h *Handler) search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.BadRequest(c, "q is required")
		return
	}

	results, err := h.svc.Search(c.Request.Context(), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if results == nil {
		results = []Result{}
	}
	response.OK(c, gin.H{"data": results, "query": q})
}

func (h *Handler) reindex(c *gin.Context) {
	// detach from the request context so the rebuild survives the response
	go h.svc.IndexAll(context.Background())
	response.OK(c, gin.H{"message": "indexing started"})
}
