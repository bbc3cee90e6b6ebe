package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// UploadMedia godoc
// @Summary      Upload a media file
// @Description  Stores an image under the media directory and returns the path to reference from posts and profiles.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "File to upload"
// @Success      201  {object}  map[string]string "{"path": "..."}"
// @Failure      400  {object}  ErrorResponse
// @Router       /media [post]
func UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}

	switch filepath.Ext(file.Filename) {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are supported"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Files must be 5MB or smaller"})
		return
	}

	path := fmt.Sprintf("uploads/%d/%d_%s", currentUserID(c), time.Now().UnixNano(), filepath.Base(file.Filename))
	abs, err := MediaStore.AbsPath(path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file name"})
		return
	}
	if err := c.SaveUploadedFile(file, abs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"path": path})
}
