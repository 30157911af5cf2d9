// Package api exposes the roster solver over HTTP for callers that keep
// their own employee data.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter builds the HTTP surface: a health probe and the stateless solve
// endpoint.
func NewRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(requestLogger(logger), gin.Recovery())

	h := &Handler{Logger: logger}

	r.GET("/healthz", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/roster/solve", h.SolveRoster)
	}

	return r
}

// requestLogger logs one line per handled request
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}
