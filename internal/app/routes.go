package app

import (
	"net/http"

	"github.com/articlekit/core/internal/middleware"
	"github.com/articlekit/core/internal/modules/article"
	"github.com/articlekit/core/internal/modules/attachment"
	"github.com/articlekit/core/internal/modules/linktitle"
	"github.com/articlekit/core/internal/modules/render"
	"github.com/articlekit/core/internal/modules/search"
	"github.com/articlekit/core/internal/modules/site"
	"github.com/articlekit/core/internal/modules/status"
	"github.com/articlekit/core/internal/modules/tag"
	"github.com/articlekit/core/internal/modules/user"
	pkgredis "github.com/articlekit/core/internal/pkg/redis"
	"github.com/articlekit/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	optionalAuthMW := middleware.OptionalAuth(db)

	r.NoRoute(func(c *gin.Context) { response.NotFound(c) })
	r.NoMethod(func(c *gin.Context) { response.MethodNotAllowed(c) })

	// Shared services
	statusSvc := status.NewService(db)
	siteSvc := site.NewService(db, a.cfg.Articles.DefaultSiteID)
	tagSvc := tag.NewService(db)
	userSvc := user.NewService(db)
	linkSvc := linktitle.NewService(rc, a.cfg.LinkTitles, a.logger)
	searchSvc := search.NewService(db, a.cfg.MeiliSearch, a.logger)
	articleSvc := article.NewService(db, a.cfg.Articles, statusSvc, siteSvc, a.logger)
	articleSvc.SetIndexer(searchSvc)
	attachmentSvc := attachment.NewService(db, a.cfg.StaticDir)

	a.articles = articleSvc
	a.search = searchSvc

	api := r.Group("/api/v1")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"data": "pong"})
	})

	api.GET("/cron", authMW, func(c *gin.Context) {
		response.OK(c, a.sched.List())
	})
	api.POST("/cron/:name/run", authMW, func(c *gin.Context) {
		if err := a.sched.Run(c.Request.Context(), c.Param("name")); err != nil {
			response.NotFoundMsg(c, err.Error())
			return
		}
		response.OK(c, gin.H{"ok": 1})
	})

	user.NewHandler(userSvc, rc).RegisterRoutes(api, authMW)
	tag.NewHandler(tagSvc).RegisterRoutes(api, authMW)
	status.NewHandler(statusSvc).RegisterRoutes(api, authMW)
	site.NewHandler(siteSvc).RegisterRoutes(api, authMW)
	article.NewHandler(articleSvc, tagSvc, linkSvc).RegisterRoutes(api, authMW, optionalAuthMW)
	attachment.NewHandler(attachmentSvc).RegisterRoutes(api, authMW)
	search.NewHandler(searchSvc).RegisterRoutes(api, authMW)
	render.NewHandler().RegisterRoutes(api, authMW)
}
