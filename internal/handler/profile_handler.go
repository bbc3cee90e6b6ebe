package handler

import (
	"errors"
	"net/http"

	"blogring/backend/internal/apperr"
	"blogring/backend/internal/database"
	"blogring/backend/internal/models"
	"blogring/backend/internal/relation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileUpdateInput defines the patchable profile fields. Pointers
// distinguish "not sent" from zero values.
type ProfileUpdateInput struct {
	Username           *string `json:"username" binding:"omitempty,max=15"`
	BlogName           *string `json:"blog_name" binding:"omitempty,max=20"`
	Intro              *string `json:"intro" binding:"omitempty,max=100"`
	BlogPic            *string `json:"blog_pic"`
	UserPic            *string `json:"user_pic"`
	URLName            *string `json:"urlname" binding:"omitempty,max=30"`
	NeighborVisibility *bool   `json:"neighbor_visibility"`
}

// ProfileResponse defines the structure for a profile.
type ProfileResponse struct {
	ID                 uint   `json:"id"`
	Username           string `json:"username"`
	BlogName           string `json:"blog_name"`
	Intro              string `json:"intro"`
	BlogPic            string `json:"blog_pic"`
	UserPic            string `json:"user_pic"`
	URLName            string `json:"urlname"`
	NeighborVisibility bool   `json:"neighbor_visibility"`
	IsMutual           *bool  `json:"is_mutual,omitempty"`
}

func newProfileResponse(p models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                 p.ID,
		Username:           p.Username,
		BlogName:           p.BlogName,
		Intro:              p.Intro,
		BlogPic:            p.BlogPic,
		UserPic:            p.UserPic,
		URLName:            p.URLName,
		NeighborVisibility: p.NeighborVisibility,
	}
}

// GetMyProfile godoc
// @Summary      Get current user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /profile [get]
func GetMyProfile(c *gin.Context) {
	profile, err := currentProfile(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newProfileResponse(*profile))
}

// UpdateMyProfile godoc
// @Summary      Update current user's profile
// @Description  Patches profile fields. The urlname may be changed at most once; replaced pictures are released from storage.
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body ProfileUpdateInput true "Fields to update"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /profile [patch]
func UpdateMyProfile(c *gin.Context) {
	var input ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := currentProfile(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	oldUsername := profile.Username
	oldBlogPic := profile.BlogPic
	oldUserPic := profile.UserPic

	if input.URLName != nil && *input.URLName != profile.URLName {
		if profile.URLNameEditCount >= 1 {
			abortWithError(c, apperr.Wrap(apperr.ErrInvalidTransition, "urlname can only be changed once"))
			return
		}
		var taken int64
		database.DB.Model(&models.Profile{}).Where("url_name = ? AND id <> ?", *input.URLName, profile.ID).Count(&taken)
		if taken > 0 {
			abortWithError(c, apperr.Wrap(apperr.ErrConflict, "urlname already taken"))
			return
		}
		profile.URLName = *input.URLName
		profile.URLNameEditCount++
	}
	if input.Username != nil {
		profile.Username = *input.Username
	}
	if input.BlogName != nil {
		profile.BlogName = *input.BlogName
	}
	if input.Intro != nil {
		profile.Intro = *input.Intro
	}
	if input.BlogPic != nil {
		profile.BlogPic = *input.BlogPic
	}
	if input.UserPic != nil {
		profile.UserPic = *input.UserPic
	}
	if input.NeighborVisibility != nil {
		profile.NeighborVisibility = *input.NeighborVisibility
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		// The display name is denormalized onto comments; a rename rewrites
		// them in the same transaction.
		if profile.Username != oldUsername {
			return tx.Model(&models.Comment{}).
				Where("author_profile_id = ?", profile.ID).
				UpdateColumn("author_name", profile.Username).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// Release replaced picture files after the commit.
	if MediaStore != nil {
		if profile.BlogPic != oldBlogPic {
			_ = MediaStore.Delete(oldBlogPic)
		}
		if profile.UserPic != oldUserPic {
			_ = MediaStore.Delete(oldUserPic)
		}
	}

	c.JSON(http.StatusOK, newProfileResponse(*profile))
}

// DeleteMyProfile godoc
// @Summary      Delete current user's profile (always fails)
// @Description  Profiles exist for the lifetime of their account and can never be deleted.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Failure      403  {object}  ErrorResponse "Profiles cannot be deleted"
// @Router       /profile [delete]
func DeleteMyProfile(c *gin.Context) {
	abortWithError(c, apperr.Wrap(apperr.ErrProtectedResource, "profiles cannot be deleted"))
}

// GetProfileByURLName godoc
// @Summary      Get a profile by its urlname
// @Description  Retrieves a public profile, annotated with the viewer's mutual-neighbor relationship.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        urlname path string true "Profile urlname"
// @Success      200  {object}  ProfileResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{urlname} [get]
func GetProfileByURLName(c *gin.Context) {
	var profile models.Profile
	if err := database.DB.Where("url_name = ?", c.Param("urlname")).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := newProfileResponse(profile)
	if viewer, err := currentProfile(c); err == nil && viewer.ID != profile.ID {
		mutual, err := relation.IsMutual(database.DB, viewer.ID, profile.ID)
		if err == nil {
			response.IsMutual = &mutual
		}
	}
	c.JSON(http.StatusOK, response)
}

// GetProfileNeighbors godoc
// @Summary      List a profile's mutual neighbors
// @Description  Returns the mutual-neighbor list, or 403 when the owner keeps it private.
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        urlname path string true "Profile urlname"
// @Success      200  {array}   ProfileResponse
// @Failure      403  {object}  ErrorResponse "Neighbor list is private"
// @Failure      404  {object}  ErrorResponse
// @Router       /profiles/{urlname}/neighbors [get]
func GetProfileNeighbors(c *gin.Context) {
	var profile models.Profile
	if err := database.DB.Where("url_name = ?", c.Param("urlname")).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	neighbors, err := relation.MutualProfiles(database.DB, profile.ID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	responses := make([]ProfileResponse, 0, len(neighbors))
	for _, n := range neighbors {
		responses = append(responses, newProfileResponse(n))
	}
	c.JSON(http.StatusOK, responses)
}
