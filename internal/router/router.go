// Package router assembles the gin engine: middleware, API routes, health
// probes and the swagger UI.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/snnyvrz/library-api/internal/docs"
	"github.com/snnyvrz/library-api/internal/handler"
	"github.com/snnyvrz/library-api/internal/middleware"
	"github.com/snnyvrz/library-api/internal/response"
	"github.com/snnyvrz/library-api/internal/store"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Deps struct {
	AppName        string
	AppVersion     string
	TrustedProxies []string
	Authors        *store.AuthorStore
	Books          *store.BookStore
	// Pinger backs /ready. Nil for the in-memory backend.
	Pinger handler.Pinger
}

func New(d Deps) *gin.Engine {
	e := gin.New()
	e.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())

	if err := e.SetTrustedProxies(d.TrustedProxies); err != nil {
		log.Warn().Err(err).Strs("proxies", d.TrustedProxies).Msg("invalid trusted proxies, trusting none")
		_ = e.SetTrustedProxies(nil)
	}

	docs.SwaggerInfo.Title = d.AppName
	docs.SwaggerInfo.Version = d.AppVersion

	handler.NewHealthHandler(d.AppName, d.AppVersion, d.Pinger).RegisterRoutes(e)

	api := e.Group("")
	{
		handler.NewAuthorHandler(d.Authors, d.Books).RegisterRoutes(api)
		handler.NewBookHandler(d.Books).RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	e.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Endpoint not found")
	})

	return e
}
