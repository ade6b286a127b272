package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailgenie/internal/config"
	"mailgenie/internal/handler"
	"mailgenie/pkg/metrics"
	"mailgenie/pkg/otel"
	"mailgenie/pkg/trace"
)

type Router struct {
	Engine *gin.Engine
}

func NewRouter(
	generateHandler *handler.GenerateHandler,
	corsCfg config.CORSConfig,
	logger *zap.Logger,
) *Router {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// CORS goes first so that every response, including recovered panics,
	// carries the headers.
	r.Use(
		CORSMiddleware(corsCfg),
		gin.Recovery(),
		trace.GinMiddleware(),
		otel.GinMiddleware(),
		RequestLogger(logger),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Preflight for any path. Routed explicitly so gin does not add an Allow
	// header through its 405 handling.
	r.OPTIONS("/*path", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	r.POST("/", generateHandler.GenerateEmail)
	r.POST("/generate-email", generateHandler.GenerateEmail)

	return &Router{Engine: r}
}

// Server wraps the engine in an http.Server listening on addr.
func (r *Router) Server(addr string) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: r.Engine,
	}
}
