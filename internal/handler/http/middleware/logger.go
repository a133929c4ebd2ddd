package middleware

import (
	"time"

	"github.com/CHANDU-143-ashok/mangocropconnect/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs HTTP requests using the structured logger, plus any errors handlers attached.
func RequestLogger(log *logger.ZapLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}
		ctx := c.Request.Context()
		log.LogRequest(ctx, c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
		if len(c.Errors) > 0 {
			log.WithContext(ctx).Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Strings("errors", c.Errors.Errors()),
			)
		}
	}
}
