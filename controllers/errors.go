package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"utmkit/apperrors"
	"utmkit/logger"
)

// respondError writes err as {"error": message}. Only user errors expose
// their message; anything else is logged and reported generically.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	log = logger.FromContext(c.Request.Context(), log)
	switch {
	case apperrors.IsValidation(err):
		log.Debug("invalid request", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn("request timed out", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusRequestTimeout, gin.H{"error": http.StatusText(http.StatusRequestTimeout)})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		body := gin.H{"error": "internal server error"}
		// lets a user quote the failure so it can be found in the logs
		if id := logger.RequestIDFromContext(c.Request.Context()); id != "" {
			body["request_id"] = id
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}

// bindError reports a request body that could not be decoded at all.
func bindError(c *gin.Context, log *zap.Logger, err error) {
	logger.FromContext(c.Request.Context(), log).Warn("invalid request", zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}
