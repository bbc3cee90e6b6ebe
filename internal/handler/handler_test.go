package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"blogring/backend/internal/auth"
	"blogring/backend/internal/config"
	"blogring/backend/internal/database"
	"blogring/backend/internal/models"
	"blogring/backend/internal/relation"
	"blogring/backend/internal/storage"
	"blogring/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest wires a fresh in-memory database, media store and router for one
// test. Handlers read the package-level database handle, so tests must not
// run in parallel.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret", MediaDir: t.TempDir()}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	store, err := storage.New(config.AppConfig.MediaDir)
	require.NoError(t, err)
	MediaStore = store

	return newTestRouter()
}

// newTestRouter mirrors the server's route table.
func newTestRouter() *gin.Engine {
	router := gin.New()
	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	{
		authRoutes.POST("/register", RegisterUser)
		authRoutes.POST("/login", LoginUser)
	}

	profileRoutes := apiV1.Group("/profile")
	profileRoutes.Use(auth.AuthMiddleware())
	{
		profileRoutes.GET("", GetMyProfile)
		profileRoutes.PATCH("", UpdateMyProfile)
		profileRoutes.DELETE("", DeleteMyProfile)
	}

	profilesRoutes := apiV1.Group("/profiles")
	profilesRoutes.Use(auth.OptionalAuthMiddleware())
	{
		profilesRoutes.GET("/:urlname", GetProfileByURLName)
		profilesRoutes.GET("/:urlname/neighbors", GetProfileNeighbors)
	}

	neighborRoutes := apiV1.Group("/neighbors")
	neighborRoutes.Use(auth.AuthMiddleware())
	{
		neighborRoutes.GET("/requests", GetNeighborRequests)
		neighborRoutes.POST("/requests/:id/accept", AcceptNeighborRequest)
		neighborRoutes.POST("/requests/:id/reject", RejectNeighborRequest)
		neighborRoutes.POST("/:id/request", SendNeighborRequest)
	}

	postRoutes := apiV1.Group("/posts")
	{
		postRead := postRoutes.Group("")
		postRead.Use(auth.OptionalAuthMiddleware())
		{
			postRead.GET("", GetFeed)
			postRead.GET("/:id", GetPostByID)
			postRead.GET("/:id/comments", GetComments)
			postRead.GET("/:id/heart/users", GetPostHeartUsers)
			postRead.GET("/:id/heart/count", GetPostHeartCount)
		}

		postWrite := postRoutes.Group("")
		postWrite.Use(auth.AuthMiddleware())
		{
			postWrite.GET("/mutual", GetMutualFeed)
			postWrite.GET("/my", GetMyPosts)
			postWrite.POST("", CreatePost)
			postWrite.PATCH("/:id", UpdatePost)
			postWrite.DELETE("/:id", DeletePost)
			postWrite.POST("/:id/comments", CreateComment)
			postWrite.DELETE("/:id/comments/:commentID", DeleteComment)
			postWrite.POST("/:id/heart", TogglePostHeart)
		}
	}

	commentRoutes := apiV1.Group("/comments")
	commentRoutes.Use(auth.AuthMiddleware())
	{
		commentRoutes.POST("/:id/heart", ToggleCommentHeart)
		commentRoutes.GET("/:id/heart/count", GetCommentHeartCount)
	}

	mediaRoutes := apiV1.Group("/media")
	mediaRoutes.Use(auth.AuthMiddleware())
	{
		mediaRoutes.POST("", UploadMedia)
	}

	activityRoutes := apiV1.Group("/activity")
	activityRoutes.Use(auth.AuthMiddleware())
	{
		activityRoutes.GET("", GetMyActivity)
		activityRoutes.GET("/stream", StreamActivity)
	}

	newsRoutes := apiV1.Group("/news")
	newsRoutes.Use(auth.AuthMiddleware())
	{
		newsRoutes.GET("", GetMyNews)
	}

	return router
}

type testAccount struct {
	User    models.User
	Profile models.Profile
	Token   string
}

func createAccount(t *testing.T, loginID string) testAccount {
	t.Helper()
	user := models.User{LoginID: loginID, PasswordHash: "irrelevant"}
	require.NoError(t, database.DB.Create(&user).Error)

	profile := models.Profile{
		UserID:             user.ID,
		Username:           loginID,
		BlogName:           fmt.Sprintf("%s's blog", loginID),
		BlogPic:            models.DefaultBlogPic,
		UserPic:            models.DefaultUserPic,
		URLName:            loginID,
		NeighborVisibility: true,
	}
	require.NoError(t, database.DB.Create(&profile).Error)

	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)

	return testAccount{User: user, Profile: profile, Token: token}
}

func makeNeighbors(t *testing.T, a, b testAccount) {
	t.Helper()
	request, err := relation.Request(database.DB, a.User.ID, b.User.ID, "")
	require.NoError(t, err)
	require.NoError(t, relation.Accept(database.DB, request.ID, b.User.ID))
}

func seedPost(t *testing.T, author testAccount, visibility models.Visibility, complete bool) models.Post {
	t.Helper()
	post := models.Post{
		AuthorID:   author.User.ID,
		Category:   "daily",
		Subject:    "daily",
		Title:      "a post",
		Visibility: visibility,
		IsComplete: complete,
	}
	require.NoError(t, database.DB.Create(&post).Error)
	return post
}

func seedComment(t *testing.T, post models.Post, author testAccount, content string, parentID *uint, private bool) models.Comment {
	t.Helper()
	comment := models.Comment{
		PostID:          post.ID,
		AuthorProfileID: author.Profile.ID,
		AuthorName:      author.Profile.Username,
		Content:         content,
		ParentID:        parentID,
		IsParent:        parentID == nil,
		IsPrivate:       private,
	}
	require.NoError(t, database.DB.Create(&comment).Error)
	return comment
}

// doRequest performs a JSON request against the test router. An empty token
// leaves the request anonymous.
func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &out),
		"body: %s", recorder.Body.String())
	return out
}
