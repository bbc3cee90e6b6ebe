package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"blogring/backend/internal/apperr"
	"blogring/backend/internal/database"
	"blogring/backend/internal/models"
	"blogring/backend/internal/relation"
	"blogring/backend/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// region --- DTOs ---

// PostTextInput defines one text block of a post.
type PostTextInput struct {
	Content  string `json:"content" binding:"required"`
	Font     string `json:"font"`
	FontSize int    `json:"font_size"`
	IsBold   bool   `json:"is_bold"`
}

// PostImageInput defines one image attachment, referencing an uploaded path.
type PostImageInput struct {
	Path             string `json:"path" binding:"required"`
	Caption          string `json:"caption" binding:"max=255"`
	IsRepresentative bool   `json:"is_representative"`
}

// PostCreateInput defines the structure for creating a post.
type PostCreateInput struct {
	Title      string             `json:"title" binding:"required,max=100"`
	Category   string             `json:"category" binding:"required,max=50"`
	Subject    models.PostSubject `json:"subject"`
	Visibility models.Visibility  `json:"visibility"`
	IsComplete bool               `json:"is_complete"`
	Texts      []PostTextInput    `json:"texts"`
	Images     []PostImageInput   `json:"images"`
}

// PostTextUpdate patches one existing text block by id.
type PostTextUpdate struct {
	ID       uint    `json:"id" binding:"required"`
	Content  *string `json:"content"`
	Font     *string `json:"font"`
	FontSize *int    `json:"font_size"`
	IsBold   *bool   `json:"is_bold"`
}

// PostImageUpdate patches one existing image by id.
type PostImageUpdate struct {
	ID               uint    `json:"id" binding:"required"`
	Caption          *string `json:"caption"`
	IsRepresentative *bool   `json:"is_representative"`
}

// PostUpdateInput defines the structure for patching a post.
type PostUpdateInput struct {
	Title      *string             `json:"title" binding:"omitempty,max=100"`
	Category   *string             `json:"category" binding:"omitempty,max=50"`
	Subject    *models.PostSubject `json:"subject"`
	Visibility *models.Visibility  `json:"visibility"`
	IsComplete *bool               `json:"is_complete"`

	AddTexts     []PostTextInput  `json:"add_texts"`
	UpdateTexts  []PostTextUpdate `json:"update_texts"`
	RemoveTexts  []uint           `json:"remove_texts"`
	AddImages    []PostImageInput `json:"add_images"`
	UpdateImages []PostImageUpdate `json:"update_images"`
	RemoveImages []uint           `json:"remove_images"`
}

// PostTextResponse defines one text block in a response.
type PostTextResponse struct {
	ID       uint   `json:"id"`
	Content  string `json:"content"`
	Font     string `json:"font"`
	FontSize int    `json:"font_size"`
	IsBold   bool   `json:"is_bold"`
}

// PostImageResponse defines one image in a response.
type PostImageResponse struct {
	ID               uint   `json:"id"`
	Path             string `json:"path"`
	Caption          string `json:"caption"`
	IsRepresentative bool   `json:"is_representative"`
}

// PostResponse defines the structure for a post.
type PostResponse struct {
	ID           uint                `json:"id"`
	AuthorName   string              `json:"author_name"`
	Title        string              `json:"title"`
	Category     string              `json:"category"`
	Subject      models.PostSubject  `json:"subject"`
	Keyword      models.PostKeyword  `json:"keyword"`
	Visibility   models.Visibility   `json:"visibility"`
	IsComplete   bool                `json:"is_complete"`
	LikeCount    int64               `json:"like_count"`
	CommentCount int64               `json:"comment_count"`
	Texts        []PostTextResponse  `json:"texts"`
	Images       []PostImageResponse `json:"images"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func newPostResponse(post models.Post) PostResponse {
	response := PostResponse{
		ID:           post.ID,
		Title:        post.Title,
		Category:     post.Category,
		Subject:      post.Subject,
		Keyword:      post.Keyword,
		Visibility:   post.Visibility,
		IsComplete:   post.IsComplete,
		LikeCount:    post.LikeCount,
		CommentCount: post.CommentCount,
		Texts:        make([]PostTextResponse, 0, len(post.Texts)),
		Images:       make([]PostImageResponse, 0, len(post.Images)),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
	for _, t := range post.Texts {
		response.Texts = append(response.Texts, PostTextResponse{
			ID: t.ID, Content: t.Content, Font: t.Font, FontSize: t.FontSize, IsBold: t.IsBold,
		})
	}
	for _, img := range post.Images {
		response.Images = append(response.Images, PostImageResponse{
			ID: img.ID, Path: img.Path, Caption: img.Caption, IsRepresentative: img.IsRepresentative,
		})
	}
	if profile, err := profileOfUser(post.AuthorID); err == nil {
		response.AuthorName = profile.Username
	}
	return response
}

// endregion

// region --- Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Description  Creates a post with its text blocks and images in one unit. At most one image may be marked representative; when none is, the first image is promoted.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body PostCreateInput true "Post contents"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse "Unknown subject or visibility"
// @Failure      409  {object}  ErrorResponse "More than one representative image"
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	var input PostCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Subject == "" {
		input.Subject = "none"
	}
	if input.Visibility == "" {
		input.Visibility = models.VisibilityEveryone
	}
	if !models.ValidVisibility(input.Visibility) {
		abortWithError(c, apperr.Wrap(apperr.ErrValidation, "unknown visibility %q", input.Visibility))
		return
	}
	if _, ok := models.KeywordForSubject(input.Subject); !ok {
		abortWithError(c, apperr.Wrap(apperr.ErrValidation, "unknown subject %q", input.Subject))
		return
	}

	images := make([]models.PostImage, 0, len(input.Images))
	for _, img := range input.Images {
		images = append(images, models.PostImage{
			Path:             img.Path,
			Caption:          img.Caption,
			IsRepresentative: img.IsRepresentative,
		})
	}
	// Reject duplicate representatives before anything is persisted.
	if models.CountRepresentatives(images) > 1 {
		abortWithError(c, apperr.Wrap(apperr.ErrConflict, "more than one representative image"))
		return
	}
	if _, err := models.NormalizeRepresentative(images); err != nil {
		abortWithError(c, apperr.Wrap(apperr.ErrConflict, "%v", err))
		return
	}

	post := models.Post{
		AuthorID:   currentUserID(c),
		Title:      input.Title,
		Category:   input.Category,
		Subject:    input.Subject,
		Visibility: input.Visibility,
		IsComplete: input.IsComplete,
	}
	for i, t := range input.Texts {
		text := models.PostText{Position: i, Content: t.Content, Font: t.Font, FontSize: t.FontSize, IsBold: t.IsBold}
		if text.Font == "" {
			text.Font = "nanum_gothic"
		}
		if text.FontSize == 0 {
			text.FontSize = 15
		}
		post.Texts = append(post.Texts, text)
	}
	post.Images = images

	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, newPostResponse(post))
}

// GetFeed godoc
// @Summary      List visible posts
// @Description  Returns completed posts visible to the viewer: everyone-visibility posts and mutual-visibility posts of the viewer's neighbors. The viewer's own posts are excluded; use /posts/my for those. The keyword filter must be used on its own.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        urlname  query string false "Restrict to one author's blog"
// @Param        category query string false "Filter by category (requires urlname)"
// @Param        keyword  query string false "Filter by keyword bucket (standalone)"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      400  {object}  ErrorResponse
// @Router       /posts [get]
func GetFeed(c *gin.Context) {
	viewerID := currentUserID(c)
	urlname := c.Query("urlname")
	category := c.Query("category")
	keyword := models.PostKeyword(c.Query("keyword"))
	page, limit := pageParams(c)

	if keyword != "" && (urlname != "" || category != "") {
		abortWithError(c, apperr.Wrap(apperr.ErrValidation, "keyword must be used on its own"))
		return
	}
	if category != "" && urlname == "" {
		abortWithError(c, apperr.Wrap(apperr.ErrValidation, "category requires urlname"))
		return
	}

	neighborIDs, err := relation.MutualUserIDs(database.DB, viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	query := database.DB.Model(&models.Post{}).
		Where("is_complete = ?", true).
		Where("author_id <> ?", viewerID).
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images")

	if keyword != "" {
		if !models.ValidKeyword(keyword) {
			abortWithError(c, apperr.Wrap(apperr.ErrValidation, "unknown keyword %q", keyword))
			return
		}
		query = query.Where("keyword = ?", keyword).
			Where("visibility = ? OR (visibility = ? AND author_id IN ?)",
				models.VisibilityEveryone, models.VisibilityMutual, emptyAsZero(neighborIDs))
	} else if urlname != "" {
		var owner models.Profile
		if err := database.DB.Where("url_name = ?", urlname).First(&owner).Error; err != nil {
			// Unknown blogs degrade to an empty list, not an error.
			c.JSON(http.StatusOK, NewPaginatedResponse([]PostResponse{}, 0, page, limit))
			return
		}
		query = query.Where("author_id = ?", owner.UserID).
			Where("visibility = ? OR (visibility = ? AND author_id IN ?)",
				models.VisibilityEveryone, models.VisibilityMutual, emptyAsZero(neighborIDs))
		if category != "" {
			query = query.Where("category = ?", category)
		}
	} else {
		query = query.Where("visibility = ? OR (visibility = ? AND author_id IN ?)",
			models.VisibilityEveryone, models.VisibilityMutual, emptyAsZero(neighborIDs))
	}

	respondPostPage(c, query.Order("created_at DESC"), page, limit)
}

// GetMutualFeed godoc
// @Summary      List recent neighbor posts
// @Description  Returns mutual-visibility posts written by the viewer's neighbors in the last week.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Router       /posts/mutual [get]
func GetMutualFeed(c *gin.Context) {
	viewerID := currentUserID(c)
	page, limit := pageParams(c)

	neighborIDs, err := relation.MutualUserIDs(database.DB, viewerID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	oneWeekAgo := time.Now().AddDate(0, 0, -7)
	query := database.DB.Model(&models.Post{}).
		Where("visibility = ?", models.VisibilityMutual).
		Where("author_id IN ?", emptyAsZero(neighborIDs)).
		Where("is_complete = ?", true).
		Where("created_at >= ?", oneWeekAgo).
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images").
		Order("created_at DESC")

	respondPostPage(c, query, page, limit)
}

// GetMyPosts godoc
// @Summary      List the current user's posts
// @Description  Returns the viewer's own completed posts. Own posts never appear in the general feed.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        category query string false "Filter by category"
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Router       /posts/my [get]
func GetMyPosts(c *gin.Context) {
	page, limit := pageParams(c)

	query := database.DB.Model(&models.Post{}).
		Where("author_id = ?", currentUserID(c)).
		Where("is_complete = ?", true).
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images").
		Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	respondPostPage(c, query, page, limit)
}

// GetPostByID godoc
// @Summary      Get a post
// @Description  Retrieves one post. Posts the viewer is not allowed to see are reported as not found.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      404  {object}  ErrorResponse "Missing or not visible"
// @Router       /posts/{id} [get]
func GetPostByID(c *gin.Context) {
	post, ok := loadVisiblePost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, newPostResponse(*post))
}

// UpdatePost godoc
// @Summary      Update a post
// @Description  Patches post fields and child text/image collections. A completed post can never go back to draft; the single-representative invariant is re-validated after every change.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int             true "Post ID"
// @Param        input body PostUpdateInput true "Fields to update"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse "Completion reversal or bad input"
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "More than one representative image"
// @Router       /posts/{id} [patch]
func UpdatePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input PostUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.AuthorID != currentUserID(c) {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "only the author can edit a post"))
		return
	}

	if input.IsComplete != nil {
		if post.IsComplete && !*input.IsComplete {
			abortWithError(c, apperr.Wrap(apperr.ErrInvalidTransition, "a completed post cannot return to draft"))
			return
		}
		post.IsComplete = *input.IsComplete
	}
	if input.Visibility != nil {
		if !models.ValidVisibility(*input.Visibility) {
			abortWithError(c, apperr.Wrap(apperr.ErrValidation, "unknown visibility %q", *input.Visibility))
			return
		}
		post.Visibility = *input.Visibility
	}
	if input.Subject != nil {
		if _, ok := models.KeywordForSubject(*input.Subject); !ok {
			abortWithError(c, apperr.Wrap(apperr.ErrValidation, "unknown subject %q", *input.Subject))
			return
		}
		post.Subject = *input.Subject
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Category != nil {
		post.Category = *input.Category
	}

	var removedPaths []string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&post).Error; err != nil {
			return err
		}
		if err := applyTextPatch(tx, post.ID, input); err != nil {
			return err
		}
		paths, err := applyImagePatch(tx, post.ID, input)
		if err != nil {
			return err
		}
		removedPaths = paths
		return nil
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	// Image files are released only after the transaction committed.
	if MediaStore != nil {
		_ = MediaStore.DeleteAll(removedPaths)
	}

	database.DB.Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images").First(&post, post.ID)
	c.JSON(http.StatusOK, newPostResponse(post))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes a post with all of its texts, images and stored image files. Author only.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      403  {object}  ErrorResponse "Not the author"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := database.DB.Preload("Images").First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if post.AuthorID != currentUserID(c) {
		abortWithError(c, apperr.Wrap(apperr.ErrForbidden, "only the author can delete a post"))
		return
	}

	imagePaths := make([]string, 0, len(post.Images))
	for _, img := range post.Images {
		imagePaths = append(imagePaths, img.Path)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostText{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostImage{}).Error; err != nil {
			return err
		}
		// Comments soft-delete, so the FK cascade never reaches their
		// heart rows; they must go explicitly.
		var commentIDs []uint
		if err := tx.Model(&models.Comment{}).Where("post_id = ?", post.ID).
			Pluck("id", &commentIDs).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("comment_id IN ?", commentIDs).Delete(&models.CommentHeart{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Heart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	if MediaStore != nil {
		_ = MediaStore.DeleteAll(imagePaths)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// endregion

// region --- Helpers ---

// loadVisiblePost fetches the post from the id path parameter and applies
// the visibility decision. Invisible posts are indistinguishable from
// missing ones.
func loadVisiblePost(c *gin.Context) (*models.Post, bool) {
	postID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var post models.Post
	err := database.DB.
		Preload("Texts", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images").
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	allowed, err := visibility.CanView(database.DB, &post, currentViewer(c))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	if !allowed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return nil, false
	}
	return &post, true
}

func applyTextPatch(tx *gorm.DB, postID uint, input PostUpdateInput) error {
	if len(input.RemoveTexts) > 0 {
		if err := tx.Where("post_id = ? AND id IN ?", postID, input.RemoveTexts).
			Delete(&models.PostText{}).Error; err != nil {
			return err
		}
	}
	for _, patch := range input.UpdateTexts {
		var text models.PostText
		if err := tx.Where("post_id = ?", postID).First(&text, patch.ID).Error; err != nil {
			return apperr.Wrap(apperr.ErrNotFound, "text %d not found", patch.ID)
		}
		if patch.Content != nil {
			text.Content = *patch.Content
		}
		if patch.Font != nil {
			text.Font = *patch.Font
		}
		if patch.FontSize != nil {
			text.FontSize = *patch.FontSize
		}
		if patch.IsBold != nil {
			text.IsBold = *patch.IsBold
		}
		if err := tx.Save(&text).Error; err != nil {
			return err
		}
	}
	if len(input.AddTexts) > 0 {
		var maxPosition int
		tx.Model(&models.PostText{}).Where("post_id = ?", postID).
			Select("COALESCE(MAX(position), -1)").Scan(&maxPosition)
		for i, t := range input.AddTexts {
			text := models.PostText{
				PostID: postID, Position: maxPosition + 1 + i,
				Content: t.Content, Font: t.Font, FontSize: t.FontSize, IsBold: t.IsBold,
			}
			if text.Font == "" {
				text.Font = "nanum_gothic"
			}
			if text.FontSize == 0 {
				text.FontSize = 15
			}
			if err := tx.Create(&text).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// applyImagePatch mutates the image collection and re-validates the
// representative invariant. It returns the storage paths of removed images
// so the caller can release them after commit.
func applyImagePatch(tx *gorm.DB, postID uint, input PostUpdateInput) ([]string, error) {
	var removedPaths []string
	if len(input.RemoveImages) > 0 {
		var removed []models.PostImage
		if err := tx.Where("post_id = ? AND id IN ?", postID, input.RemoveImages).
			Find(&removed).Error; err != nil {
			return nil, err
		}
		for _, img := range removed {
			removedPaths = append(removedPaths, img.Path)
		}
		if err := tx.Where("post_id = ? AND id IN ?", postID, input.RemoveImages).
			Delete(&models.PostImage{}).Error; err != nil {
			return nil, err
		}
	}
	for _, patch := range input.UpdateImages {
		var image models.PostImage
		if err := tx.Where("post_id = ?", postID).First(&image, patch.ID).Error; err != nil {
			return nil, apperr.Wrap(apperr.ErrNotFound, "image %d not found", patch.ID)
		}
		if patch.Caption != nil {
			image.Caption = *patch.Caption
		}
		if patch.IsRepresentative != nil {
			image.IsRepresentative = *patch.IsRepresentative
		}
		if err := tx.Save(&image).Error; err != nil {
			return nil, err
		}
	}
	for _, img := range input.AddImages {
		image := models.PostImage{
			PostID: postID, Path: img.Path, Caption: img.Caption, IsRepresentative: img.IsRepresentative,
		}
		if err := tx.Create(&image).Error; err != nil {
			return nil, err
		}
	}

	// Re-validate the invariant over the post-patch state.
	var images []models.PostImage
	if err := tx.Where("post_id = ?", postID).Order("id ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	if models.CountRepresentatives(images) > 1 {
		return nil, apperr.Wrap(apperr.ErrConflict, "more than one representative image")
	}
	promoted, err := models.NormalizeRepresentative(images)
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrConflict, "%v", err)
	}
	if promoted {
		if err := tx.Model(&models.PostImage{}).Where("id = ?", images[0].ID).
			Update("is_representative", true).Error; err != nil {
			return nil, err
		}
	}
	return removedPaths, nil
}

func respondPostPage(c *gin.Context, query *gorm.DB, page, limit int) {
	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		responses = append(responses, newPostResponse(post))
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100 // Max limit
	}
	return page, limit
}

// emptyAsZero keeps "IN ?" valid when a user has no neighbors.
func emptyAsZero(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}

// endregion
