package user

import (
	"errors"

	"github.com/articlekit/core/internal/middleware"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc   *Service
	cache Cache
}

func NewHandler(svc *Service, cache Cache) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/user")
	g.POST("/login", h.login)
	g.GET("/me", authMW, h.me)
	g.POST("/register", authMW, h.register)
}

type loginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Username, dto.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"token": token,
		"user":  user,
		"name":  DisplayName(c.Request.Context(), h.cache, user),
	})
}

type registerDTO struct {
	Username  string `json:"username" binding:"required,max=50"`
	Name      string `json:"name" binding:"max=100"`
	Password  string `json:"password" binding:"required,min=6"`
	Superuser bool   `json:"superuser"`
}

// register creates an account. Only superusers may add users.
func (h *Handler) register(c *gin.Context) {
	if !middleware.IsSuperuser(c) {
		response.Forbidden(c)
		return
	}

	var dto registerDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Register(dto.Username, dto.Name, dto.Password, dto.Superuser)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.GetByID(middleware.UserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, gin.H{
		"user": user,
		"name": DisplayName(c.Request.Context(), h.cache, user),
	})
}
