package handler

import (
	"errors"
	"net/http"
	"strconv"

	"blogring/backend/internal/apperr"
	"blogring/backend/internal/database"
	"blogring/backend/internal/models"
	"blogring/backend/internal/storage"
	"blogring/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MediaStore is the blob store used by upload and delete-on-replace logic.
// Set once at startup.
var MediaStore *storage.Store

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}

// abortWithError maps a taxonomy error onto its HTTP status. Unclassified
// errors become opaque 500s.
func abortWithError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// currentUserID returns the authenticated user id. Zero means anonymous,
// which only happens behind the optional auth middleware.
func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		return v.(uint)
	}
	return 0
}

func currentViewer(c *gin.Context) visibility.Viewer {
	return visibility.Viewer{UserID: currentUserID(c)}
}

// currentProfile resolves the authenticated user's profile.
func currentProfile(c *gin.Context) (*models.Profile, error) {
	return profileOfUser(currentUserID(c))
}

// parseIDParam reads a numeric path parameter, responding 400 on failure.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func profileOfUser(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := database.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Wrap(apperr.ErrNotFound, "profile not found")
		}
		return nil, err
	}
	return &profile, nil
}
