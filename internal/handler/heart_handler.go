package handler

import (
	"errors"
	"net/http"

	"blogring/backend/internal/apperr"
	"blogring/backend/internal/database"
	"blogring/backend/internal/hub"
	"blogring/backend/internal/models"
	"blogring/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HeartResponse reports the result of a toggle. Count is recomputed from the
// heart rows, never read from a cache.
type HeartResponse struct {
	State     string `json:"state" example:"added"`
	LikeCount int64  `json:"like_count"`
}

// TogglePostHeart godoc
// @Summary      Toggle a heart on a post
// @Description  Adds the caller's heart to a post, or removes it if already present. Me-visibility posts cannot be hearted; mutual-visibility posts require a mutual relationship with the author.
// @Tags         hearts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  HeartResponse "Heart removed"
// @Success      201  {object}  HeartResponse "Heart added"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/heart [post]
func TogglePostHeart(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	allowed, err := visibility.CanReact(database.DB, &post, currentViewer(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !allowed {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "you cannot heart this post"))
		return
	}

	var state string
	var count int64
	toggle := func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			var heart models.Heart
			err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&heart).Error
			switch {
			case err == nil:
				if err := tx.Delete(&heart).Error; err != nil {
					return err
				}
				state = "removed"
			case errors.Is(err, gorm.ErrRecordNotFound):
				// The unique (post, user) index serializes racing toggles:
				// the loser of a create race fails here and rolls back.
				if err := tx.Create(&models.Heart{PostID: postID, UserID: userID}).Error; err != nil {
					return err
				}
				state = "added"
			default:
				return err
			}

			if err := tx.Model(&models.Heart{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
				return err
			}
			// UpdateColumn: a cache rewrite must not run model hooks.
			return tx.Model(&models.Post{}).Where("id = ?", postID).
				UpdateColumn("like_count", count).Error
		})
	}
	err = toggle()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent toggle won the insert; rerun to observe its row
		// and remove it.
		err = toggle()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle heart"})
		return
	}

	if state == "added" && post.AuthorID != userID {
		hub.GlobalHub.Notify(post.AuthorID, hub.Event{
			Type:    hub.EventNewHeart,
			Payload: gin.H{"post_id": post.ID, "by_user_id": userID},
		})
	}

	status := http.StatusOK
	if state == "added" {
		status = http.StatusCreated
	}
	c.JSON(status, HeartResponse{State: state, LikeCount: count})
}

// GetPostHeartUsers godoc
// @Summary      List users who hearted a post
// @Tags         hearts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {array}   ProfileResponse
// @Failure      404  {object}  ErrorResponse "Missing or not visible"
// @Router       /posts/{id}/heart/users [get]
func GetPostHeartUsers(c *gin.Context) {
	post, ok := loadVisiblePost(c)
	if !ok {
		return
	}

	var hearts []models.Heart
	if err := database.DB.Where("post_id = ?", post.ID).Find(&hearts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hearts"})
		return
	}

	responses := make([]ProfileResponse, 0, len(hearts))
	for _, h := range hearts {
		if profile, err := profileOfUser(h.UserID); err == nil {
			responses = append(responses, newProfileResponse(*profile))
		}
	}
	c.JSON(http.StatusOK, responses)
}

// GetPostHeartCount godoc
// @Summary      Get a post's heart count
// @Description  Counts the heart rows directly, so the answer always matches the actual membership.
// @Tags         hearts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]int64 "{"like_count": 3}"
// @Failure      404  {object}  ErrorResponse "Missing or not visible"
// @Router       /posts/{id}/heart/count [get]
func GetPostHeartCount(c *gin.Context) {
	post, ok := loadVisiblePost(c)
	if !ok {
		return
	}

	var count int64
	if err := database.DB.Model(&models.Heart{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count hearts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}

// ToggleCommentHeart godoc
// @Summary      Toggle a heart on a comment
// @Description  Adds or removes the caller's heart on a comment. Private comments and comments under me-visibility posts can never be hearted.
// @Tags         hearts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200  {object}  HeartResponse "Heart removed"
// @Success      201  {object}  HeartResponse "Heart added"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/heart [post]
func ToggleCommentHeart(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID := currentUserID(c)

	var comment models.Comment
	if err := database.DB.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	var post models.Post
	if err := database.DB.First(&post, comment.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	allowed, err := visibility.CanReact(database.DB, &post, currentViewer(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !allowed || comment.IsPrivate {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "you cannot heart this comment"))
		return
	}

	var state string
	var count int64
	toggle := func() error {
		return database.DB.Transaction(func(tx *gorm.DB) error {
			var heart models.CommentHeart
			err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&heart).Error
			switch {
			case err == nil:
				if err := tx.Delete(&heart).Error; err != nil {
					return err
				}
				state = "removed"
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&models.CommentHeart{CommentID: commentID, UserID: userID}).Error; err != nil {
					return err
				}
				state = "added"
			default:
				return err
			}

			if err := tx.Model(&models.CommentHeart{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
				return err
			}
			return tx.Model(&models.Comment{}).Where("id = ?", commentID).
				UpdateColumn("like_count", count).Error
		})
	}
	err = toggle()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = toggle()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle heart"})
		return
	}

	status := http.StatusOK
	if state == "added" {
		status = http.StatusCreated
	}
	c.JSON(status, HeartResponse{State: state, LikeCount: count})
}

// GetCommentHeartCount godoc
// @Summary      Get a comment's heart count
// @Tags         hearts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Comment ID"
// @Success      200  {object}  map[string]int64 "{"like_count": 3}"
// @Failure      403  {object}  ErrorResponse "Private comment"
// @Failure      404  {object}  ErrorResponse
// @Router       /comments/{id}/heart/count [get]
func GetCommentHeartCount(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var comment models.Comment
	if err := database.DB.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	var post models.Post
	if err := database.DB.First(&post, comment.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	allowed, err := visibility.CanView(database.DB, &post, currentViewer(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}
	if comment.IsPrivate {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "private comments have no heart count"))
		return
	}

	var count int64
	if err := database.DB.Model(&models.CommentHeart{}).Where("comment_id = ?", commentID).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count hearts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}
