package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/service"
)

type DexScreenerHandler struct {
	Dex    *service.DexService
	Logger *zap.Logger
}

func (h *DexScreenerHandler) Register(r *gin.Engine) {
	group := r.Group("/api/dexscreener")
	group.GET("", h.tokenPairs)
	group.GET("/pairs", h.pair)
}

// @Summary Pair analytics for a token
// @Tags dexscreener
// @Param chainId query string false "preferred chain" default(ethereum)
// @Param tokenAddress query string true "token contract address"
// @Param forceRefresh query bool false "bypass cache"
// @Success 200 {object} service.TokenPairs
// @Router /api/dexscreener [get]
func (h *DexScreenerHandler) tokenPairs(c *gin.Context) {
	chainID := c.DefaultQuery("chainId", "ethereum")
	tokenAddress := c.Query("tokenAddress")
	if tokenAddress == "" {
		Error(c, http.StatusBadRequest, "Token address is required", nil)
		return
	}

	result, err := h.Dex.GetToken(c.Request.Context(), chainID, tokenAddress, boolQuery(c, "forceRefresh"))
	if err != nil {
		h.Logger.Warn("dexscreener token lookup failed", zap.String("address", tokenAddress), zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to fetch DexScreener data", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Raw pair data
// @Tags dexscreener
// @Param chainId query string false "chain id" default(ethereum)
// @Param pairAddress query string true "pair address"
// @Param forceRefresh query bool false "bypass cache"
// @Success 200 {object} any
// @Router /api/dexscreener/pairs [get]
func (h *DexScreenerHandler) pair(c *gin.Context) {
	chainID := c.DefaultQuery("chainId", "ethereum")
	pairAddress := c.Query("pairAddress")
	if pairAddress == "" {
		Error(c, http.StatusBadRequest, "Pair address is required", nil)
		return
	}

	result, err := h.Dex.GetPair(c.Request.Context(), chainID, pairAddress, boolQuery(c, "forceRefresh"))
	if err != nil {
		h.Logger.Warn("dexscreener pair lookup failed", zap.String("pair", pairAddress), zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to fetch DexScreener pair data", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}
