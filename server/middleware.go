package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"utmkit/logger"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags every request with an ID and logs its outcome.
func requestLogger(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = logger.NewRequestID()
		}
		c.Header(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), base, requestID))

		c.Next()

		level := zapcore.InfoLevel
		switch status := c.Writer.Status(); {
		case status >= 500:
			level = zapcore.ErrorLevel
		case status >= 400:
			level = zapcore.WarnLevel
		}
		log := logger.FromContext(c.Request.Context(), base)
		if ce := log.Check(level, "http request"); ce != nil {
			ce.Write(
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.Int("size", c.Writer.Size()),
				zap.String("ip", c.ClientIP()),
			)
		}
		for _, err := range c.Errors {
			log.Error("request error", zap.Error(err.Err))
		}
	}
}
