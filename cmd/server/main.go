package main

import (
	"fmt"
	"log"
	"net/http"

	"blogring/backend/internal/auth"
	"blogring/backend/internal/config"
	"blogring/backend/internal/database"
	"blogring/backend/internal/handler"
	"blogring/backend/internal/storage"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Blogring API
// @version         1.0
// @description     This is the API for the Blogring service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	store, err := storage.New(config.AppConfig.MediaDir)
	if err != nil {
		log.Fatalf("Failed to initialize media storage: %v", err)
	}
	handler.MediaStore = store

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Uploaded files are served directly
	router.Static("/media", config.AppConfig.MediaDir)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// Own-profile routes (protected)
		profileRoutes := apiV1.Group("/profile")
		profileRoutes.Use(auth.AuthMiddleware())
		{
			profileRoutes.GET("", handler.GetMyProfile)
			profileRoutes.PATCH("", handler.UpdateMyProfile)
			profileRoutes.DELETE("", handler.DeleteMyProfile)
		}

		// Public profile routes; a token widens what the viewer sees
		profilesRoutes := apiV1.Group("/profiles")
		profilesRoutes.Use(auth.OptionalAuthMiddleware())
		{
			profilesRoutes.GET("/:urlname", handler.GetProfileByURLName)
			profilesRoutes.GET("/:urlname/neighbors", handler.GetProfileNeighbors)
		}

		// Neighbor routes (protected)
		neighborRoutes := apiV1.Group("/neighbors")
		neighborRoutes.Use(auth.AuthMiddleware())
		{
			neighborRoutes.GET("/requests", handler.GetNeighborRequests) // Must be before /:id
			neighborRoutes.POST("/requests/:id/accept", handler.AcceptNeighborRequest)
			neighborRoutes.POST("/requests/:id/reject", handler.RejectNeighborRequest)
			neighborRoutes.POST("/:id/request", handler.SendNeighborRequest)
		}

		// Post routes; reads are public, writes and reactions need a token
		postRoutes := apiV1.Group("/posts")
		{
			postRead := postRoutes.Group("")
			postRead.Use(auth.OptionalAuthMiddleware())
			{
				postRead.GET("", handler.GetFeed)
				postRead.GET("/:id", handler.GetPostByID)
				postRead.GET("/:id/comments", handler.GetComments)
				postRead.GET("/:id/heart/users", handler.GetPostHeartUsers)
				postRead.GET("/:id/heart/count", handler.GetPostHeartCount)
			}

			postWrite := postRoutes.Group("")
			postWrite.Use(auth.AuthMiddleware())
			{
				postWrite.GET("/mutual", handler.GetMutualFeed) // Must be before /:id
				postWrite.GET("/my", handler.GetMyPosts)
				postWrite.POST("", handler.CreatePost)
				postWrite.PATCH("/:id", handler.UpdatePost)
				postWrite.DELETE("/:id", handler.DeletePost)
				postWrite.POST("/:id/comments", handler.CreateComment)
				postWrite.DELETE("/:id/comments/:commentID", handler.DeleteComment)
				postWrite.POST("/:id/heart", handler.TogglePostHeart)
			}
		}

		// Comment heart routes (protected)
		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.POST("/:id/heart", handler.ToggleCommentHeart)
			commentRoutes.GET("/:id/heart/count", handler.GetCommentHeartCount)
		}

		// Media upload (protected)
		mediaRoutes := apiV1.Group("/media")
		mediaRoutes.Use(auth.AuthMiddleware())
		{
			mediaRoutes.POST("", handler.UploadMedia)
		}

		// Activity and news feeds (protected)
		activityRoutes := apiV1.Group("/activity")
		activityRoutes.Use(auth.AuthMiddleware())
		{
			activityRoutes.GET("", handler.GetMyActivity)
			activityRoutes.GET("/stream", handler.StreamActivity)
		}

		newsRoutes := apiV1.Group("/news")
		newsRoutes.Use(auth.AuthMiddleware())
		{
			newsRoutes.GET("", handler.GetMyNews)
		}
	}

	fmt.Println("Server is running on :8080")
	fmt.Println("Swagger UI is available at http://localhost:8080/swagger/index.html")
	log.Fatal(router.Run(":8080"))
}
