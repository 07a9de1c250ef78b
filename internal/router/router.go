package router

import (
	"forskull/internal/config"
	"forskull/internal/handlers"
	"forskull/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	questionHandler := handlers.NewQuestionHandler()
	answerHandler := handlers.NewAnswerHandler()
	commentHandler := handlers.NewCommentHandler()
	voteHandler := handlers.NewVoteHandler()
	userHandler := handlers.NewUserHandler()
	notificationHandler := handlers.NewNotificationHandler()
	adminHandler := handlers.NewAdminHandler()
	imageHandler := handlers.NewImageHandler(cfg.ImgurClientID)

	api := r.Group("/api")

	// Public routes
	api.GET("/feed", questionHandler.Feed)
	api.GET("/questions", questionHandler.List)
	api.GET("/questions/:qid", questionHandler.Detail)
	api.GET("/questions/:qid/answers", answerHandler.List)
	api.GET("/answers/:id/comments", commentHandler.List)
	api.GET("/categories", questionHandler.Categories)
	api.GET("/users/:id", userHandler.Profile)

	api.GET("/captcha", authHandler.Captcha)
	api.POST("/register", authHandler.Register)
	api.POST("/activate", authHandler.Activate)
	api.POST("/login", authHandler.Login)
	api.POST("/logout", authHandler.Logout)
	api.POST("/forgot-password", authHandler.ForgotPassword)
	api.POST("/reset-password", authHandler.ResetPassword)

	// Signed-in routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", userHandler.Me)
		authorized.GET("/me/points", userHandler.PointLogs)
		authorized.POST("/me/settings", userHandler.UpdateSettings)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)
	}

	// Write routes, closed to blocked accounts
	writer := api.Group("/")
	writer.Use(middleware.AuthRequired(), middleware.NotBlocked())
	{
		writer.POST("/questions", questionHandler.Create)
		writer.DELETE("/questions/:qid", questionHandler.Delete)
		writer.POST("/questions/:qid/answers", answerHandler.Create)
		writer.POST("/answers/:id/best", answerHandler.MarkBest)
		writer.POST("/answers/:id/comments", commentHandler.Create)
		writer.PUT("/comments/:id", commentHandler.Update)
		writer.DELETE("/comments/:id", commentHandler.Delete)
		writer.POST("/vote/:type/:id", voteHandler.Cast)
		writer.POST("/images", imageHandler.Upload)
	}

	// Moderation routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", adminHandler.Users)
		admin.POST("/users/:id/role", adminHandler.SetRole)
		admin.POST("/users/:id/points", adminHandler.GrantPoints)
		admin.POST("/reconcile", adminHandler.Reconcile)
		admin.DELETE("/answers/:id", answerHandler.Delete)
	}

	r.Static("/uploads", "./uploads")
}
