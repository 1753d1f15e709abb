package routes

import (
	"net/url"
	"strings"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/middleware"
	"portfolio_backend/internal/storage"

	_ "portfolio_backend/docs"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	gate auth.SessionGate,
	db middleware.DBProvider,
	store storage.Storage,
) {
	admin := middleware.RequireAdmin(gate)
	dbMW := middleware.DBMiddleware(db)

	api := ginRouter.Group("/api")
	{
		// /auth и /contact не трогают базу
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)

		appHandlers.SkillHandler.RegisterRoutes(api, dbMW, admin)
		appHandlers.ProjectHandler.RegisterRoutes(api, dbMW, admin)
		appHandlers.BlogPostHandler.RegisterRoutes(api, dbMW, admin)
		appHandlers.ArtworkHandler.RegisterRoutes(api, dbMW, admin)
		appHandlers.SettingsHandler.RegisterRoutes(api, dbMW, admin)
	}

	ginRouter.GET("/healthz", appHandlers.HealthHandler.Health)
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if local, ok := store.(*storage.LocalStorage); ok {
		prefix := staticPrefix(local.URLPrefix())
		ginRouter.Static(prefix, local.Root())
		logger.Info("Local uploads served", "prefix", prefix, "root", local.Root())
	}
}

// staticPrefix: base_url может быть полным адресом, роутеру нужен только путь
func staticPrefix(baseURL string) string {
	path := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		path = u.Path
	}
	path = "/" + strings.Trim(path, "/")
	if path == "/" {
		return "/uploads"
	}
	return path
}
