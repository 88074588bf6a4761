// Package httpapi exposes the judge engine over HTTP: the submission
// endpoint and a liveness/readiness probe reporting pool introspection.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	commonmw "judgecore/internal/common/http/middleware"
	"judgecore/internal/judge/compiler"
	"judgecore/internal/judge/pool"
	"judgecore/internal/judge/recipe"
	"judgecore/internal/judge/runner"
	"judgecore/internal/judge/stage"
	"judgecore/pkg/utils/logger"
)

// Engine bundles the judge-engine handles the HTTP layer dispatches
// submissions into.
type Engine struct {
	Pool     *pool.Pool
	Registry *recipe.Registry
	Stager   *stage.Stager
	Compiler *compiler.Compiler
	Runner   *runner.Runner

	TestcaseRoot string
}

// ServerConfig controls the listener's timeouts, mirroring the
// teacher's own judge-service HTTP server configuration.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewServer builds the gin router (trace middleware, recovery,
// request logging, the submission endpoint, and /healthz) and wraps it
// in an *http.Server with the given timeouts.
func NewServer(cfg ServerConfig, eng *Engine) *http.Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(commonmw.TraceContextMiddleware())
	router.Use(requestLogger())

	api := router.Group("/api/v1/judge")
	api.POST("/submissions", NewSubmissionHandler(eng))

	router.GET("/healthz", NewHealthHandler(eng.Pool))

	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		logger.Info(
			c.Request.Context(),
			"request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// Shutdown gracefully stops srv, waiting for in-flight requests until
// ctx is done.
func Shutdown(ctx context.Context, srv *http.Server) error {
	return srv.Shutdown(ctx)
}
