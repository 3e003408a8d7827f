package render

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Table,
		extension.Strikethrough,
		extension.Linkify,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// Markdown converts markdown text to HTML. Conversion failures fall back to
// the escaped source text rather than an error.
func Markdown(markdownText string) string {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return ""
	}

	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return template.HTMLEscapeString(text)
	}
	return out.String()
}

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/render")
	g.POST("/markdown", authMW, h.markdown)
}

type renderDTO struct {
	Text string `json:"text" binding:"required"`
}

// markdown is a preview endpoint: it converts editor text without touching
// any stored article.
func (h *Handler) markdown(c *gin.Context) {
	var dto renderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.OK(c, gin.H{"html": Markdown(dto.Text)})
}
