package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tallyclank/internal/client/pinata"
)

type UploadHandler struct {
	Pinata *pinata.Client
	Logger *zap.Logger
}

func (h *UploadHandler) Register(r *gin.Engine) {
	r.POST("/api/pinata/upload", h.upload)
}

// @Summary Pin a file to IPFS
// @Tags pinata
// @Accept multipart/form-data
// @Param file formData file true "file to pin"
// @Success 200 {object} map[string]any
// @Router /api/pinata/upload [post]
func (h *UploadHandler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "No file provided", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		Error(c, http.StatusBadRequest, "Could not read uploaded file", err.Error())
		return
	}
	defer file.Close()

	result, err := h.Pinata.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		h.Logger.Error("pinata upload failed", zap.String("filename", fileHeader.Filename), zap.Error(err))
		Error(c, http.StatusInternalServerError, "Failed to upload file to IPFS", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cid":     result.CID,
		"url":     result.GatewayURL,
		// Older clients read the Pinata v2 key name.
		"IpfsHash": result.CID,
	})
}
