package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/normalize"
	"tallyclank/internal/service"
)

type TokensHandler struct {
	Tokens *service.TokenService
	Stored *service.StoredTokenService
	Logger *zap.Logger
}

func (h *TokensHandler) Register(r *gin.Engine) {
	group := r.Group("/api/tokens")
	group.GET("", h.listTokens)
	group.GET("/search", h.searchTokens)
	group.GET("/trending", h.trendingTokens)
	group.GET("/database", h.databaseTokens)
}

// @Summary List tokens from the launch platform
// @Tags tokens
// @Param page query int false "page number"
// @Param limit query int false "page size (max 20)"
// @Param tab query string false "listing tab"
// @Param forceRefresh query bool false "bypass cache"
// @Success 200 {object} service.TokenPage
// @Router /api/tokens [get]
func (h *TokensHandler) listTokens(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 12)
	tab := c.Query("tab")
	forceRefresh := boolQuery(c, "forceRefresh")

	result, err := h.Tokens.List(c.Request.Context(), page, limit, tab, forceRefresh)
	if err != nil {
		h.degraded(c, err, page, limit)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary Search tokens
// @Tags tokens
// @Param q query string true "search query"
// @Success 200 {array} normalize.TokenRecord
// @Router /api/tokens/search [get]
func (h *TokensHandler) searchTokens(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		Error(c, http.StatusBadRequest, "Search query is required", nil)
		return
	}

	tokens, err := h.Tokens.Search(c.Request.Context(), query)
	if err != nil {
		status, message := upstreamStatus(err)
		h.Logger.Warn("token search failed", zap.String("q", query), zap.Error(err))
		Error(c, status, message, nil)
		return
	}
	if tokens == nil {
		tokens = []normalize.TokenRecord{}
	}
	c.JSON(http.StatusOK, tokens)
}

// @Summary List trending tokens
// @Tags tokens
// @Param page query int false "page number"
// @Param limit query int false "page size (max 20)"
// @Param forceRefresh query bool false "bypass cache"
// @Success 200 {object} service.TokenPage
// @Router /api/tokens/trending [get]
func (h *TokensHandler) trendingTokens(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 12)
	forceRefresh := boolQuery(c, "forceRefresh")

	result, err := h.Tokens.Trending(c.Request.Context(), page, limit, forceRefresh)
	if err != nil {
		h.degraded(c, err, page, limit)
		return
	}
	c.JSON(http.StatusOK, result)
}

// @Summary List persisted Tally Clank tokens
// @Tags tokens
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} service.StoredTokenPage
// @Router /api/tokens/database [get]
func (h *TokensHandler) databaseTokens(c *gin.Context) {
	page := intQuery(c, "page", 1)
	limit := intQuery(c, "limit", 12)

	result, err := h.Stored.List(c.Request.Context(), page, limit)
	if err != nil {
		h.Logger.Error("database token listing failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to fetch tokens from database", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// degraded sends the empty-but-well-formed listing body so clients keep
// rendering when the upstream is down, with a retry hint.
func (h *TokensHandler) degraded(c *gin.Context, err error, page, limit int) {
	status, message := upstreamStatus(err)
	h.Logger.Warn("token listing degraded", zap.Int("status", status), zap.Error(err))
	c.Header("Retry-After", "30")
	c.JSON(status, gin.H{
		"error":     message,
		"timestamp": time.Now().UTC(),
		"tokens":    []normalize.TokenRecord{},
		"pagination": service.Pagination{
			Page:  page,
			Limit: limit,
		},
	})
}

func upstreamStatus(err error) (int, string) {
	if ue, ok := err.(*service.UpstreamError); ok {
		return ue.Status, ue.Message
	}
	return http.StatusInternalServerError, "Failed to fetch token data"
}
