package app

import (
	"github.com/gin-gonic/gin"

	"github.com/bankbot/core/internal/middleware"
	"github.com/bankbot/core/internal/modules/ai"
	"github.com/bankbot/core/internal/modules/archive"
	"github.com/bankbot/core/internal/modules/audit"
	"github.com/bankbot/core/internal/modules/history"
	"github.com/bankbot/core/internal/modules/rag"
	pkgredis "github.com/bankbot/core/internal/pkg/redis"
	"github.com/bankbot/core/internal/pkg/response"
)

const apiPrefix = "/api/v2"

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Claims are decoded before the limiter so authenticated callers skip it.
	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.OptionalAuth())
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "bankbot-core",
			"version": "1.0.0",
		})
	})

	// Shared services
	aiSvc := ai.NewService(a.cfg.AI, rc, a.logger)
	auditSvc := audit.NewService(a.db, a.logger)
	historySvc := history.NewService(a.db, a.logger)
	chunkStore := rag.NewChunkStore(a.db)
	ragSvc := rag.NewService(a.logger, aiSvc, aiSvc, chunkStore, historySvc, a.cfg.Retrieval.TopK)
	a.archiveSvc = archive.NewService(a.db, a.cfg.Archive, a.cfg.DSN, a.logger)

	api := r.Group(apiPrefix)
	rag.NewHandler(ragSvc, auditSvc).RegisterRoutes(api, authMW)
	history.NewHandler(historySvc).RegisterRoutes(api, authMW)
	archive.NewHandler(a.archiveSvc).RegisterRoutes(api, authMW)
}
