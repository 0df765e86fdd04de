package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/service"
)

// TrendingHandler proxies the h24-ordered trending feed without reshaping,
// for clients that consume the upstream pool format directly.
type TrendingHandler struct {
	Tokens *service.TokenService
	Logger *zap.Logger
}

func (h *TrendingHandler) Register(r *gin.Engine) {
	r.GET("/api/trending", h.trending)
}

// @Summary Raw trending feed
// @Tags trending
// @Param page query int false "page number"
// @Success 200 {object} any
// @Router /api/trending [get]
func (h *TrendingHandler) trending(c *gin.Context) {
	page := intQuery(c, "page", 1)

	data, err := h.Tokens.TrendingRaw(c.Request.Context(), page)
	if err != nil {
		status, message := upstreamStatus(err)
		h.Logger.Warn("trending proxy failed", zap.Error(err))
		Error(c, status, message, nil)
		return
	}
	c.JSON(http.StatusOK, data)
}
