package server

import (
	"context"
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"utmkit/config"
	"utmkit/controllers"
	"utmkit/idgenerator"
	"utmkit/propertyname"
	"utmkit/repository"
	"utmkit/utm"
)

const (
	defaultTimeout = 30 * time.Second
)

//go:embed templates/*.tmpl
var templates embed.FS

// App bundles what the handlers need.
type App struct {
	DB             repository.Repository
	IDGenerator    idgenerator.IDGenerator
	UTM            *utm.Service
	Properties     *propertyname.Generator
	Options        *config.Options
	RedirectOrigin string
}

func NewRouter(app App, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(requestLogger(logger), gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templates, "templates/*.tmpl")))

	health := controllers.HealthController{DB: app.DB, Log: logger}
	router.GET("/health", health.Status)
	router.GET("/ready", withTimeout(health.Ready, defaultTimeout))

	tool := controllers.ToolController{Options: app.Options}
	router.GET("/", tool.Index)
	router.GET("/options", tool.ListOptions)

	builder := controllers.UtmController{
		Service:        app.UTM,
		IDGenerator:    app.IDGenerator,
		Log:            logger,
		RedirectOrigin: app.RedirectOrigin,
	}
	router.POST("/build-utm", withTimeout(builder.Build, defaultTimeout))
	router.GET("/url-history", withTimeout(builder.History, defaultTimeout))

	property := controllers.PropertyController{Generator: app.Properties, Log: logger}
	router.POST("/generate-property-name", property.Generate)

	link := controllers.LinkController{
		DB:             app.DB,
		IDGenerator:    app.IDGenerator,
		Log:            logger,
		RedirectOrigin: app.RedirectOrigin,
	}
	router.POST("/shorten", withTimeout(link.Shorten, defaultTimeout))
	router.GET("/links/:short_code", withTimeout(link.Stats, defaultTimeout))
	router.GET("/:short_code", withTimeout(link.Redirect, defaultTimeout))

	return router
}

// withTimeout bounds the request context. Handlers pass it to the store, so
// a slow query is cancelled and reported as 408.
func withTimeout(handler gin.HandlerFunc, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		handler(c)
	}
}
