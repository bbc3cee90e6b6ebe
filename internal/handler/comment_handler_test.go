package handler

import (
	"fmt"
	"net/http"
	"testing"

	"blogring/backend/internal/database"
	"blogring/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentsPath(postID uint) string {
	return fmt.Sprintf("/api/v1/posts/%d/comments", postID)
}

func TestCreateComment(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	reader := createAccount(t, "reader")
	post := seedPost(t, author, models.VisibilityEveryone, true)

	recorder := doRequest(t, router, http.MethodPost, commentsPath(post.ID), reader.Token,
		CommentInput{Content: "nice post"})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	comment := decodeBody[CommentResponse](t, recorder)
	assert.Equal(t, "reader", comment.AuthorName)
	assert.True(t, comment.IsParent)
	assert.False(t, comment.IsPostAuthor)

	// The denormalized count is recomputed inside the same transaction.
	var fresh models.Post
	require.NoError(t, database.DB.First(&fresh, post.ID).Error)
	assert.Equal(t, int64(1), fresh.CommentCount)
}

func TestCreateCommentByPostAuthor(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	post := seedPost(t, author, models.VisibilityEveryone, true)

	recorder := doRequest(t, router, http.MethodPost, commentsPath(post.ID), author.Token,
		CommentInput{Content: "thanks all"})
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.True(t, decodeBody[CommentResponse](t, recorder).IsPostAuthor)
}

func TestCreateCommentDenied(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	stranger := createAccount(t, "stranger")
	post := seedPost(t, author, models.VisibilityMutual, true)

	recorder := doRequest(t, router, http.MethodPost, commentsPath(post.ID), stranger.Token,
		CommentInput{Content: "let me in"})
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestCreateReply(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	reader := createAccount(t, "reader")
	post := seedPost(t, author, models.VisibilityEveryone, true)
	parent := seedComment(t, post, author, "top level", nil, false)

	recorder := doRequest(t, router, http.MethodPost, commentsPath(post.ID), reader.Token,
		CommentInput{Content: "a reply", ParentID: &parent.ID})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	reply := decodeBody[CommentResponse](t, recorder)
	assert.False(t, reply.IsParent)

	t.Run("replying to a reply is rejected", func(t *testing.T) {
		recorder := doRequest(t, router, http.MethodPost, commentsPath(post.ID), reader.Token,
			CommentInput{Content: "too deep", ParentID: &reply.ID})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("parent must belong to the same post", func(t *testing.T) {
		otherPost := seedPost(t, author, models.VisibilityEveryone, true)
		recorder := doRequest(t, router, http.MethodPost, commentsPath(otherPost.ID), reader.Token,
			CommentInput{Content: "wrong thread", ParentID: &parent.ID})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetCommentsMasking(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	secretive := createAccount(t, "secretive")
	stranger := createAccount(t, "stranger")
	post := seedPost(t, author, models.VisibilityEveryone, true)
	seedComment(t, post, secretive, "for your eyes only", nil, true)

	listComments := func(token string) []CommentResponse {
		recorder := doRequest(t, router, http.MethodGet, commentsPath(post.ID), token, nil)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		return decodeBody[[]CommentResponse](t, recorder)
	}

	t.Run("the comment author reads the real text", func(t *testing.T) {
		comments := listComments(secretive.Token)
		require.Len(t, comments, 1)
		assert.Equal(t, "for your eyes only", comments[0].Content)
	})

	t.Run("the post author reads the real text", func(t *testing.T) {
		comments := listComments(author.Token)
		require.Len(t, comments, 1)
		assert.Equal(t, "for your eyes only", comments[0].Content)
	})

	t.Run("everyone else sees the mask, not an absence", func(t *testing.T) {
		comments := listComments(stranger.Token)
		require.Len(t, comments, 1)
		assert.Equal(t, models.MaskedContent, comments[0].Content)
		assert.True(t, comments[0].IsPrivate)
	})

	t.Run("anonymous viewers see the mask too", func(t *testing.T) {
		comments := listComments("")
		require.Len(t, comments, 1)
		assert.Equal(t, models.MaskedContent, comments[0].Content)
	})
}

func TestGetCommentsMarksRead(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	reader := createAccount(t, "reader")
	post := seedPost(t, author, models.VisibilityEveryone, true)
	comment := seedComment(t, post, reader, "hello", nil, false)

	// Another reader's visit changes nothing.
	doRequest(t, router, http.MethodGet, commentsPath(post.ID), reader.Token, nil)
	var fresh models.Comment
	require.NoError(t, database.DB.First(&fresh, comment.ID).Error)
	assert.False(t, fresh.IsRead)

	// The post author's visit clears the unread marker.
	doRequest(t, router, http.MethodGet, commentsPath(post.ID), author.Token, nil)
	require.NoError(t, database.DB.First(&fresh, comment.ID).Error)
	assert.True(t, fresh.IsRead)
}

func TestGetCommentsHiddenPost(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	stranger := createAccount(t, "stranger")
	post := seedPost(t, author, models.VisibilityMe, true)
	seedComment(t, post, author, "note to self", nil, false)

	recorder := doRequest(t, router, http.MethodGet, commentsPath(post.ID), stranger.Token, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeBody[[]CommentResponse](t, recorder))
}

func TestDeleteComment(t *testing.T) {
	router := setupTest(t)
	author := createAccount(t, "author")
	commenter := createAccount(t, "commenter")
	replier := createAccount(t, "replier")
	bystander := createAccount(t, "bystander")
	post := seedPost(t, author, models.VisibilityEveryone, true)

	deletePath := func(commentID uint) string {
		return fmt.Sprintf("/api/v1/posts/%d/comments/%d", post.ID, commentID)
	}

	t.Run("only the comment or post author may delete", func(t *testing.T) {
		comment := seedComment(t, post, commenter, "hello", nil, false)
		recorder := doRequest(t, router, http.MethodDelete, deletePath(comment.ID), bystander.Token, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("a childless comment is removed outright", func(t *testing.T) {
		comment := seedComment(t, post, commenter, "fleeting", nil, false)
		recorder := doRequest(t, router, http.MethodDelete, deletePath(comment.ID), commenter.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var count int64
		require.NoError(t, database.DB.Model(&models.Comment{}).Where("id = ?", comment.ID).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("a parent with replies is tombstoned", func(t *testing.T) {
		parent := seedComment(t, post, commenter, "original", nil, true)
		reply := seedComment(t, post, replier, "a reply", &parent.ID, false)

		recorder := doRequest(t, router, http.MethodDelete, deletePath(parent.ID), commenter.Token, nil)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var kept models.Comment
		require.NoError(t, database.DB.First(&kept, parent.ID).Error)
		assert.Equal(t, models.TombstoneContent, kept.Content)
		assert.False(t, kept.IsPrivate, "a tombstone carries no private content to protect")

		var replyCount int64
		require.NoError(t, database.DB.Model(&models.Comment{}).Where("id = ?", reply.ID).Count(&replyCount).Error)
		assert.Equal(t, int64(1), replyCount, "replies survive the parent's deletion")
	})

	t.Run("the post author can delete any comment", func(t *testing.T) {
		comment := seedComment(t, post, commenter, "moderated away", nil, false)
		recorder := doRequest(t, router, http.MethodDelete, deletePath(comment.ID), author.Token, nil)
		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
