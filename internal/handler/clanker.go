package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/client/clanker"
	"tallyclank/internal/service"
)

// ClankerHandler fronts the deploy gateway: local validation happens before
// any upstream call, upstream statuses are mirrored back as-is.
type ClankerHandler struct {
	Client          *clanker.Client
	Logger          *zap.Logger
	DeployerAddress string
}

func (h *ClankerHandler) Register(r *gin.Engine) {
	group := r.Group("/api/clanker")
	group.POST("/deploy", h.deploy)
	group.GET("/deployed-by-address", h.deployedByAddress)
	group.GET("/tally-clank-tokens", h.tallyClankTokens)
}

// @Summary Deploy a token
// @Tags clanker
// @Param payload body clanker.DeployRequest true "deploy request"
// @Success 200 {object} any
// @Router /api/clanker/deploy [post]
func (h *ClankerHandler) deploy(c *gin.Context) {
	var body clanker.DeployRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "Invalid JSON body", err.Error())
		return
	}

	for field, value := range map[string]string{
		"name":             body.Name,
		"symbol":           body.Symbol,
		"image":            body.Image,
		"requestorAddress": body.RequestorAddress,
		"requestKey":       body.RequestKey,
	} {
		if value == "" {
			Error(c, http.StatusBadRequest, "Missing required field: "+field, nil)
			return
		}
	}
	if len(body.RequestKey) != 32 {
		Error(c, http.StatusBadRequest, "Request key must be exactly 32 characters long", nil)
		return
	}
	if !service.ValidAddress(body.RequestorAddress) {
		Error(c, http.StatusBadRequest, "Invalid Ethereum address format", nil)
		return
	}

	if body.CreatorRewardsPercentage == 0 {
		body.CreatorRewardsPercentage = 40
	}
	if body.TokenPair == "" {
		body.TokenPair = "WETH"
	}
	if body.Platform == "" {
		body.Platform = "TallyClank"
	}
	if body.CreatorRewardsAdmin == "" {
		body.CreatorRewardsAdmin = body.RequestorAddress
	}
	if body.InitialMarketCap == 0 {
		body.InitialMarketCap = 10
	}
	if body.SocialMediaUrls == nil {
		body.SocialMediaUrls = []string{}
	}

	data, status, err := h.Client.Deploy(c.Request.Context(), body)
	if err != nil {
		h.Logger.Error("deploy request failed", zap.String("symbol", body.Symbol), zap.Error(err))
		Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if status >= 400 {
		h.Logger.Warn("deploy rejected upstream", zap.Int("status", status), zap.String("symbol", body.Symbol))
		Error(c, status, deployErrorMessage(data), data)
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary Tokens deployed by an address
// @Tags clanker
// @Param address query string true "deployer address"
// @Param page query int false "page number"
// @Success 200 {object} any
// @Router /api/clanker/deployed-by-address [get]
func (h *ClankerHandler) deployedByAddress(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		Error(c, http.StatusBadRequest, "Address parameter is required", nil)
		return
	}
	if !service.ValidAddress(address) {
		Error(c, http.StatusBadRequest, "Invalid Ethereum address format", nil)
		return
	}
	h.proxyDeployedBy(c, address, "Failed to fetch deployed tokens")
}

// @Summary Tokens deployed through the Tally Clank deployer
// @Tags clanker
// @Param page query int false "page number"
// @Success 200 {object} any
// @Router /api/clanker/tally-clank-tokens [get]
func (h *ClankerHandler) tallyClankTokens(c *gin.Context) {
	h.proxyDeployedBy(c, h.DeployerAddress, "Failed to fetch Tally Clank tokens")
}

func (h *ClankerHandler) proxyDeployedBy(c *gin.Context, address, failMessage string) {
	page := intQuery(c, "page", 1)

	data, status, err := h.Client.DeployedByAddress(c.Request.Context(), address, page)
	if err != nil {
		h.Logger.Error("deployed-by lookup failed", zap.String("address", address), zap.Error(err))
		Error(c, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if status >= 400 {
		h.Logger.Warn("deployed-by rejected upstream", zap.Int("status", status), zap.Int("page", page))
		Error(c, status, failMessage, data)
		return
	}
	c.JSON(http.StatusOK, data)
}

func deployErrorMessage(data any) string {
	if body, ok := data.(map[string]any); ok {
		for _, key := range []string{"message", "error"} {
			if msg, ok := body[key].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return "Failed to deploy token"
}
