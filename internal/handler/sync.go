package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/service"
)

type SyncHandler struct {
	Sync   *service.SyncService
	Logger *zap.Logger
}

func (h *SyncHandler) Register(r *gin.Engine) {
	r.POST("/api/sync/clanker-tokens", h.runSync)
	r.GET("/api/sync/clanker-tokens", h.syncStatus)
}

// @Summary Mirror Tally Clank tokens into the database
// @Tags sync
// @Success 200 {object} service.SyncSummary
// @Router /api/sync/clanker-tokens [post]
func (h *SyncHandler) runSync(c *gin.Context) {
	summary, err := h.Sync.Run(c.Request.Context())
	if err != nil {
		h.Logger.Error("manual sync failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "Sync failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary Sync status read-back
// @Tags sync
// @Success 200 {object} service.SyncStatus
// @Router /api/sync/clanker-tokens [get]
func (h *SyncHandler) syncStatus(c *gin.Context) {
	status, err := h.Sync.Status(c.Request.Context())
	if err != nil {
		h.Logger.Error("sync status failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to fetch sync status", err.Error())
		return
	}
	c.JSON(http.StatusOK, status)
}
