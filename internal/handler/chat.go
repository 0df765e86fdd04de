package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/service"
)

type ChatHandler struct {
	Chat   *service.ChatService
	Logger *zap.Logger
}

func (h *ChatHandler) Register(r *gin.Engine) {
	r.GET("/api/world-chat", h.list)
	r.POST("/api/world-chat", h.post)
	r.DELETE("/api/world-chat", h.clear)
}

// @Summary List chat messages
// @Tags chat
// @Param limit query int false "page size"
// @Param offset query int false "offset"
// @Success 200 {object} service.ChatPage
// @Router /api/world-chat [get]
func (h *ChatHandler) list(c *gin.Context) {
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)

	page, err := h.Chat.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Logger.Error("chat listing failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to fetch chat messages", err.Error())
		return
	}
	c.JSON(http.StatusOK, page)
}

type chatPostBody struct {
	Address string `json:"address"`
	Message string `json:"message"`
}

// @Summary Send a chat message
// @Tags chat
// @Param payload body chatPostBody true "message"
// @Success 200 {object} map[string]any
// @Router /api/world-chat [post]
func (h *ChatHandler) post(c *gin.Context) {
	var body chatPostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "Address and message are required", nil)
		return
	}

	row, err := h.Chat.Post(c.Request.Context(), body.Address, body.Message)
	if err != nil {
		if errors.Is(err, service.ErrChatValidation) {
			Error(c, http.StatusBadRequest, validationMessage(err), nil)
			return
		}
		h.Logger.Error("chat message insert failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to send message", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Message sent successfully",
		"data":    row,
	})
}

// @Summary Clear all chat messages
// @Tags chat
// @Success 200 {object} map[string]any
// @Router /api/world-chat [delete]
func (h *ChatHandler) clear(c *gin.Context) {
	deleted, err := h.Chat.Clear(c.Request.Context())
	if err != nil {
		h.Logger.Error("chat clear failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to clear messages", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "All messages cleared successfully",
		"deleted": deleted,
	})
}

// validationMessage strips the sentinel prefix so clients see only the
// human-readable part.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := service.ErrChatValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
