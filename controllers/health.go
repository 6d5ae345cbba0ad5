package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	DB  Pinger
	Log *zap.Logger
}

// Status is the liveness probe.
func (h HealthController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the store answers.
func (h HealthController) Ready(c *gin.Context) {
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		h.Log.Warn("store not ready", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "up"})
}
