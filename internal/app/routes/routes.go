package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sutcommunity/backend/internal/app/controllers"
	"github.com/sutcommunity/backend/internal/app/models"
	"github.com/sutcommunity/backend/internal/middleware"
	"github.com/sutcommunity/backend/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	commentController *controllers.CommentController,
	socialController *controllers.SocialController,
	reportController *controllers.ReportController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
		auth.POST("/send-otp", authController.SendOTP)
		auth.POST("/verify-otp", authController.VerifyOTP)
		auth.POST("/reset-password", authController.ResetPassword)
		auth.POST("/cancel-reset", authController.CancelReset)
	}

	v1.GET("/categories", postController.GetCategories)
	v1.GET("/violation-types", reportController.GetViolationTypes)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		users := authenticated.Group("/users")
		{
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
			users.POST("/push-token", userController.SavePushToken)
			users.DELETE("/push-token", userController.DisablePush)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				usersAdmin.GET("", userController.ListUsers)
			}
		}

		posts := authenticated.Group("/posts")
		{
			posts.GET("", postController.GetFeed)
			posts.GET("/search", postController.SearchPosts)
			posts.GET("/user/:userId", postController.GetUserPosts)
			posts.GET("/activity/:userId", postController.GetActivityPosts)
			posts.GET("/:id", postController.GetPost)
			posts.POST("", postController.CreatePost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
		}

		comments := authenticated.Group("/comments")
		{
			comments.GET("/:postId", commentController.GetComments)
			comments.POST("/:postId", commentController.CreateComment)
			comments.PUT("/:id", commentController.UpdateComment)
			comments.DELETE("/:id", commentController.DeleteComment)
		}

		likes := authenticated.Group("/likes")
		{
			likes.POST("/:postId", socialController.LikePost)
			likes.DELETE("/:postId", socialController.UnlikePost)
		}

		follows := authenticated.Group("/follows")
		{
			follows.POST("/:userId", socialController.Follow)
			follows.DELETE("/:userId", socialController.Unfollow)
			follows.GET("/followers/:userId", socialController.GetFollowers)
			follows.GET("/following/:userId", socialController.GetFollowing)
			follows.GET("/counts/:userId", socialController.GetFollowCounts)
		}

		reports := authenticated.Group("/reports")
		{
			reports.POST("", reportController.CreateReport)

			reportsAdmin := reports.Group("")
			reportsAdmin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
			{
				reportsAdmin.GET("", reportController.GetAllReports)
				reportsAdmin.GET("/search", reportController.SearchReports)
				reportsAdmin.PUT("/:id/status", reportController.UpdateReportStatus)
				reportsAdmin.DELETE("/:id", reportController.DeleteReport)
			}
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("/:userId", notificationController.GetNotifications)
			notifications.PUT("/:id/read", notificationController.MarkAsRead)
			notifications.PUT("/read-all/:userId", notificationController.MarkAllAsRead)
		}

		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(string(models.RoleAdmin)))
		{
			admin.GET("/counts", adminController.GetCounts)
			admin.GET("/users/monthly", adminController.GetMonthlySignups)
			admin.GET("/users/daily", adminController.GetDailySignups)
		}
	}

	// Websocket clients authenticate with ?token= since they cannot set headers
	ws := router.Group("/ws")
	ws.Use(authMiddleware.JWTAuth())
	{
		ws.GET("/notifications", wsHandler.HandleConnection)
	}
}
