package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/mysticpicks/picks-api/docs"
	v1 "github.com/mysticpicks/picks-api/internal/api/handler/v1"
	"github.com/mysticpicks/picks-api/internal/api/handler/v1/response"
	"github.com/mysticpicks/picks-api/internal/api/middleware"
	"github.com/mysticpicks/picks-api/internal/config"
	"github.com/mysticpicks/picks-api/internal/repository"
	"github.com/mysticpicks/picks-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, documents repository.DocumentDAO) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	// Entry ids are matched against the decoded path segment, so an escaped
	// slash stays part of the id.
	engine.UseRawPath = true
	// Trailing slashes are trimmed in ServeHTTP instead. gin's redirect is
	// written before any middleware runs, so it would go out without the
	// CORS and no-store headers.
	engine.RedirectTrailingSlash = false

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	entryHandler := s.initEntryHandler(documents)
	s.MountHandlers(entryHandler)

	return s
}

// ServeHTTP routes r with trailing slashes dropped, so /entries/ is served
// as /entries.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.URL.Path = trimTrailingSlashes(r.URL.Path)
	if r.URL.RawPath != "" {
		r.URL.RawPath = trimTrailingSlashes(r.URL.RawPath)
	}
	s.Router.ServeHTTP(w, r)
}

func trimTrailingSlashes(p string) string {
	if trimmed := strings.TrimRight(p, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

func (s *Server) initEntryHandler(documents repository.DocumentDAO) *v1.EntryHandler {
	repo := repository.NewEntryRepository(documents, *s.Config.Store)
	svc := service.NewEntryService(repo)
	handler := v1.NewEntryHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.CustomRecovery(func(ctx *gin.Context, recovered any) {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("panic: %v", recovered)))
	}))
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.NoStore(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(middleware.Preflight())
}

func (s *Server) MountHandlers(entryHandler *v1.EntryHandler) {
	// Routes are served both at the root and under /api, which is where
	// the CDN forwards them.
	for _, basePath := range []string{"", "/api"} {
		entries := s.Router.Group(basePath)
		{
			entries.POST("/entries", entryHandler.HandleCreateEntry)
			entries.GET("/entries", entryHandler.HandleListEntries)
			entries.GET("/entries/:id", entryHandler.HandleGetEntry)
			entries.PUT("/entries/:id/played/:played", entryHandler.HandleSetPlayed)
			entries.GET("/endpoints", entryHandler.HandleListAllEntries)
		}
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.NoRoute(v1.HandleNoRoute)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Title = "Mystic Picks API"
	docs.SwaggerInfo.Description = "Stores lottery picks and their played state."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
