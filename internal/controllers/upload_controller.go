package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"volunteer_hub/internal/middleware"
	"volunteer_hub/internal/storage"
)

type presignInput struct {
	Kind     string `json:"kind" binding:"required,oneof=event logo avatar"`
	Filename string `json:"filename" binding:"required,max=255"`
}

// PresignUpload hands the client a short-lived URL to PUT an image directly
// to object storage. The returned object_key is what gets stored on the event
// or profile afterwards.
func PresignUpload(c *gin.Context) {
	if presigner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Uploads are not configured"})
		return
	}

	var input presignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload request"})
		return
	}

	url, key, err := presigner.PresignUpload(c.Request.Context(), input.Kind, input.Filename, middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrUnknownKind) || errors.Is(err, storage.ErrUnsupportedExtension) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type"})
			return
		}
		internalError(c, err, "PresignUpload: failed to presign upload")
		return
	}

	c.JSON(http.StatusOK, gin.H{"upload_url": url, "object_key": key})
}
