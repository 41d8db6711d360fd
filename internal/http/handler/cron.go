package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hourline.app/server/internal/service"
)

type CronHandler struct {
	keepalive service.KeepaliveService
}

func NewCronHandler(keepalive service.KeepaliveService) *CronHandler {
	return &CronHandler{keepalive: keepalive}
}

// Keepalive answers 503 when a dependency is down so the scheduler marks the run failed.
func (h *CronHandler) Keepalive(c *gin.Context) {
	report := h.keepalive.Ping(c.Request.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{
		"ok":        report.Healthy(),
		"timestamp": time.Now().UTC(),
		"database":  report.Database,
		"cache":     report.Cache,
	})
}

func (h *CronHandler) Cleanup(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.keepalive.Cleanup(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "cleanup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"ok":     false,
			"report": report,
			"error":  "cleanup failed",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "report": report})
}
