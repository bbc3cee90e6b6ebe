package handler

import (
	"net/http"
	"sort"
	"time"

	"blogring/backend/internal/database"
	"blogring/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// newsFeedLimit caps both aggregation feeds. Each source is pre-limited to
// the same number, so the merge never needs more rows than it can return.
const newsFeedLimit = 5

// News item types: things other people did to my content.
const (
	NewsPostComment  = "post_comment"
	NewsPostLike     = "post_like"
	NewsCommentReply = "comment_reply"
)

// Activity item types: things I did.
const (
	ActivityLikedPost      = "liked_post"
	ActivityWrittenComment = "written_comment"
	ActivityWrittenReply   = "written_reply"
	ActivityLikedComment   = "liked_comment"
)

// ActivityItem is one entry of the news or activity feed.
type ActivityItem struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// GetMyNews godoc
// @Summary      List news about my content
// @Description  Returns the latest reactions to the current user's content, newest first: comments and hearts on their posts, and replies to their comments.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ActivityItem
// @Failure      401  {object}  ErrorResponse
// @Router       /news [get]
func GetMyNews(c *gin.Context) {
	userID := currentUserID(c)
	profile, err := currentProfile(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	items := make([]ActivityItem, 0, 3*newsFeedLimit)

	// Comments other people left on my posts. The post author always reads
	// private comments, so nothing here needs masking.
	var comments []models.Comment
	err = database.DB.
		Joins("JOIN posts ON posts.id = comments.post_id AND posts.deleted_at IS NULL").
		Where("posts.author_id = ? AND comments.author_profile_id <> ?", userID, profile.ID).
		Order("comments.created_at DESC").Limit(newsFeedLimit).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	for _, cm := range comments {
		items = append(items, ActivityItem{
			ID: cm.ID, Type: NewsPostComment, Content: cm.Content, CreatedAt: cm.CreatedAt,
		})
	}

	// Hearts other people left on my posts.
	var hearts []models.Heart
	err = database.DB.Preload("Post").
		Joins("JOIN posts ON posts.id = hearts.post_id AND posts.deleted_at IS NULL").
		Where("posts.author_id = ? AND hearts.user_id <> ?", userID, userID).
		Order("hearts.created_at DESC").Limit(newsFeedLimit).
		Find(&hearts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	for _, h := range hearts {
		items = append(items, ActivityItem{
			ID: h.PostID, Type: NewsPostLike, Content: h.Post.Title, CreatedAt: h.CreatedAt,
		})
	}

	// Replies other people left under my comments. The parent's author is
	// part of a private reply's audience, same as above.
	var replies []models.Comment
	err = database.DB.
		Joins("JOIN comments parents ON parents.id = comments.parent_id AND parents.deleted_at IS NULL").
		Where("parents.author_profile_id = ? AND comments.author_profile_id <> ?", profile.ID, profile.ID).
		Order("comments.created_at DESC").Limit(newsFeedLimit).
		Find(&replies).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch news"})
		return
	}
	for _, r := range replies {
		items = append(items, ActivityItem{
			ID: r.ID, Type: NewsCommentReply, Content: r.Content, CreatedAt: r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, mergeNewest(items))
}

// GetMyActivity godoc
// @Summary      List my recent activity
// @Description  Returns the current user's latest actions, newest first: posts and comments they hearted, and comments and replies they wrote.
// @Tags         activity
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ActivityItem
// @Failure      401  {object}  ErrorResponse
// @Router       /activity [get]
func GetMyActivity(c *gin.Context) {
	userID := currentUserID(c)
	profile, err := currentProfile(c)
	if err != nil {
		abortWithError(c, err)
		return
	}

	items := make([]ActivityItem, 0, 3*newsFeedLimit)

	var hearts []models.Heart
	err = database.DB.Preload("Post").
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(newsFeedLimit).
		Find(&hearts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	for _, h := range hearts {
		items = append(items, ActivityItem{
			ID: h.PostID, Type: ActivityLikedPost, Content: h.Post.Title, CreatedAt: h.CreatedAt,
		})
	}

	var comments []models.Comment
	err = database.DB.
		Where("author_profile_id = ?", profile.ID).
		Order("created_at DESC").Limit(newsFeedLimit).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	for _, cm := range comments {
		itemType := ActivityWrittenComment
		if !cm.IsParent {
			itemType = ActivityWrittenReply
		}
		items = append(items, ActivityItem{
			ID: cm.ID, Type: itemType, Content: cm.Content, CreatedAt: cm.CreatedAt,
		})
	}

	var commentHearts []models.CommentHeart
	err = database.DB.Preload("Comment").
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(newsFeedLimit).
		Find(&commentHearts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	for _, h := range commentHearts {
		items = append(items, ActivityItem{
			ID: h.CommentID, Type: ActivityLikedComment, Content: h.Comment.Content, CreatedAt: h.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, mergeNewest(items))
}

// mergeNewest sorts the combined sources newest first and keeps the top
// entries.
func mergeNewest(items []ActivityItem) []ActivityItem {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > newsFeedLimit {
		items = items[:newsFeedLimit]
	}
	return items
}
