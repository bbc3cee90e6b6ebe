package handler

import (
	"errors"
	"net/http"
	"time"

	"blogring/backend/internal/apperr"
	"blogring/backend/internal/database"
	"blogring/backend/internal/hub"
	"blogring/backend/internal/models"
	"blogring/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CommentInput defines the structure for writing a comment or reply.
type CommentInput struct {
	Content   string `json:"content" binding:"required"`
	ParentID  *uint  `json:"parent_id"`
	IsPrivate bool   `json:"is_private"`
}

// CommentResponse defines the structure for a comment. Content is already
// masked for the viewer; replies are nested under their parent.
type CommentResponse struct {
	ID           uint              `json:"id"`
	AuthorName   string            `json:"author_name"`
	Content      string            `json:"content"`
	IsPrivate    bool              `json:"is_private"`
	IsParent     bool              `json:"is_parent"`
	IsPostAuthor bool              `json:"is_post_author"`
	LikeCount    int64             `json:"like_count"`
	CreatedAt    time.Time         `json:"created_at"`
	Replies      []CommentResponse `json:"replies,omitempty"`
}

// GetComments godoc
// @Summary      List a post's comments
// @Description  Returns the comment tree of a post. Viewers the post is hidden from get an empty list. Private comments are masked for everyone but the comment author, the post author and (for replies) the parent comment's author.
// @Tags         comments
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {array}   CommentResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func GetComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	allowed, err := visibility.CanView(database.DB, &post, currentViewer(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	// List endpoints degrade to an empty collection instead of erroring.
	if !allowed {
		c.JSON(http.StatusOK, []CommentResponse{})
		return
	}

	var comments []models.Comment
	if err := database.DB.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	var viewerProfileID uint
	if profile, err := currentProfile(c); err == nil {
		viewerProfileID = profile.ID
	}
	postAuthorProfile, err := profileOfUser(post.AuthorID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	// The author reading their comments clears the unread markers.
	if currentUserID(c) == post.AuthorID {
		database.DB.Model(&models.Comment{}).
			Where("post_id = ? AND is_read = ?", postID, false).
			UpdateColumn("is_read", true)
	}

	c.JSON(http.StatusOK, buildCommentTree(comments, viewerProfileID, postAuthorProfile.ID))
}

// CreateComment godoc
// @Summary      Write a comment
// @Description  Writes a comment or a reply on a post the author is allowed to see. A reply's parent must be a top-level comment of the same post; replying to a reply is rejected.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int          true "Post ID"
// @Param        input body CommentInput true "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse "Reply to a reply"
// @Failure      403  {object}  ErrorResponse "Post not writable for this user"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	allowed, err := visibility.CanWrite(database.DB, &post, currentViewer(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !allowed {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "you cannot comment on this post"))
		return
	}

	authorProfile, err := currentProfile(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	comment := models.Comment{
		PostID:          post.ID,
		AuthorProfileID: authorProfile.ID,
		AuthorName:      authorProfile.Username,
		Content:         input.Content,
		IsPrivate:       input.IsPrivate,
		IsParent:        true,
	}

	if input.ParentID != nil {
		var parent models.Comment
		if err := database.DB.First(&parent, *input.ParentID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parent comment not found"})
			return
		}
		if parent.PostID != post.ID {
			abortWithError(c, apperr.Wrap(apperr.ErrValidation, "parent comment belongs to another post"))
			return
		}
		// Depth is capped at two levels.
		if !parent.IsParent {
			abortWithError(c, apperr.Wrap(apperr.ErrInvalidTransition, "cannot reply to a reply"))
			return
		}
		comment.ParentID = input.ParentID
		comment.IsParent = false
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return recountComments(tx, post.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if post.AuthorID != currentUserID(c) {
		hub.GlobalHub.Notify(post.AuthorID, hub.Event{
			Type:    hub.EventNewComment,
			Payload: gin.H{"post_id": post.ID, "comment_id": comment.ID},
		})
	}

	c.JSON(http.StatusCreated, newCommentResponse(comment, comment.Content))
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Description  Deletes a comment. Only the comment's author or the post's author may delete. A top-level comment that has replies is tombstoned so the replies survive; replies and childless comments are removed.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id        path int true "Post ID"
// @Param        commentID path int true "Comment ID"
// @Success      200  {object}  map[string]string "{"message": "Comment deleted"}"
// @Failure      403  {object}  ErrorResponse "Not the comment or post author"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments/{commentID} [delete]
func DeleteComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "commentID")
	if !ok {
		return
	}

	var comment models.Comment
	err := database.DB.Where("post_id = ?", postID).First(&comment, commentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	actingProfile, err := currentProfile(c)
	if err != nil {
		abortWithError(c, err)
		return
	}
	isCommentAuthor := actingProfile.ID == comment.AuthorProfileID
	isPostAuthor := currentUserID(c) == post.AuthorID
	if !isCommentAuthor && !isPostAuthor {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "only the comment or post author can delete"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if comment.IsParent {
			var replyCount int64
			if err := tx.Model(&models.Comment{}).Where("parent_id = ?", comment.ID).
				Count(&replyCount).Error; err != nil {
				return err
			}
			if replyCount > 0 {
				// Tombstone: keep the row so the reply thread stays intact.
				return tx.Model(&comment).Updates(map[string]interface{}{
					"content":    models.TombstoneContent,
					"is_private": false,
				}).Error
			}
		}
		if err := tx.Where("comment_id = ?", comment.ID).Delete(&models.CommentHeart{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return recountComments(tx, post.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// recountComments rewrites the denormalized comment count from the rows.
func recountComments(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	// UpdateColumn: a cache rewrite must not run model hooks.
	return tx.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("comment_count", count).Error
}

// buildCommentTree nests replies under their parents and masks private
// content for the viewer.
func buildCommentTree(comments []models.Comment, viewerProfileID, postAuthorProfileID uint) []CommentResponse {
	authorByID := make(map[uint]uint, len(comments))
	for _, cm := range comments {
		authorByID[cm.ID] = cm.AuthorProfileID
	}

	tree := make([]CommentResponse, 0)
	replies := make(map[uint][]CommentResponse)
	for _, cm := range comments {
		var parentAuthorID uint
		if cm.ParentID != nil {
			parentAuthorID = authorByID[*cm.ParentID]
		}
		content := cm.ContentFor(viewerProfileID, postAuthorProfileID, parentAuthorID)
		response := newCommentResponse(cm, content)
		if cm.ParentID != nil {
			replies[*cm.ParentID] = append(replies[*cm.ParentID], response)
		} else {
			tree = append(tree, response)
		}
	}
	for i := range tree {
		tree[i].Replies = replies[tree[i].ID]
	}
	return tree
}

func newCommentResponse(cm models.Comment, content string) CommentResponse {
	return CommentResponse{
		ID:           cm.ID,
		AuthorName:   cm.AuthorName,
		Content:      content,
		IsPrivate:    cm.IsPrivate,
		IsParent:     cm.IsParent,
		IsPostAuthor: cm.IsPostAuthor,
		LikeCount:    cm.LikeCount,
		CreatedAt:    cm.CreatedAt,
	}
}
