// Package server provides HTTP server setup and configuration.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sebasr/hello-service/internal/config"
	"github.com/sebasr/hello-service/internal/handlers"
	"github.com/sebasr/hello-service/internal/metrics"
	"github.com/sebasr/hello-service/internal/middleware"
)

const (
	healthPath  = "/api/v1/health"
	metricsPath = "/metrics"
)

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config *config.Config
	Logger zerolog.Logger
}

// Route binds an HTTP method and path pattern to a handler
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Routes returns the hello route table
func Routes(hello *handlers.HelloHandler) []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/hello", Handler: hello.GetDefault},
		{Method: http.MethodGet, Path: "/hello/:name", Handler: hello.GetByName},
		{Method: http.MethodPost, Path: "/hello", Handler: hello.Post},
	}
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	cfg := deps.Config

	gin.SetMode(cfg.Server.GinMode)

	// gin.New instead of gin.Default: request logging goes through zerolog
	router := gin.New()

	// Match path parameters against the escaped path so "%2F" stays inside a name
	router.UseRawPath = true
	router.UnescapePathValues = true
	// "/hello/" falls through to the JSON 404 instead of an HTML redirect
	router.RedirectTrailingSlash = false

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger, healthPath))
	router.Use(metrics.Middleware())

	// Add CORS middleware for web client support
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Encoding", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimit.Enabled() {
		router.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit.Requests, cfg.RateLimit.Period))
	}

	// promhttp negotiates its own compression
	router.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
		gzip.WithExcludedPaths([]string{metricsPath}),
	))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Route not found",
		})
	})

	helloHandler := handlers.NewHelloHandler(cfg.Hello.DefaultName, deps.Logger)
	healthHandler := handlers.NewHealthHandler(cfg.Server.Version)

	for _, route := range Routes(helloHandler) {
		router.Handle(route.Method, route.Path, route.Handler)
	}

	router.GET(healthPath, healthHandler.Check)
	router.GET(metricsPath, gin.WrapH(metrics.Handler()))

	return router
}
