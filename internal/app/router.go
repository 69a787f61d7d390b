package app

import (
	"english_edu_backend/docs"
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/middleware"
	"english_edu_backend/internal/model"
	"english_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/motivation", c.motivation.Current)
	}
	router.GET("/health", c.health.HealthCheck)
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.PUT("/users/password", c.user.ChangePassword)
	rg.POST("/users/avatar", c.user.UploadAvatar)
	rg.GET("/users/achievements", c.user.Achievements)

	// 内容浏览
	rg.GET("/modules", c.module.List)
	rg.GET("/modules/:id", c.module.Get)
	rg.GET("/topics/:id", c.module.GetTopic)
	rg.GET("/topics/:id/videos", c.module.TopicVideos)
	rg.GET("/topics/:id/quizzes", c.module.TopicQuizzes)

	// 测验作答
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.POST("/quizzes/:id/submit", c.quiz.Submit)
	rg.GET("/quizzes/:id/attempts", c.quiz.History)
	rg.GET("/quizzes/:id/can-attempt", c.quiz.CanAttempt)

	// 学习进度
	rg.GET("/progress/summary", c.progress.Summary)
	rg.GET("/progress/:moduleId", c.progress.GetProgress)
	rg.PATCH("/progress/:moduleId", c.progress.UpdateProgress)
	rg.DELETE("/progress/:moduleId", c.progress.Reset)
	rg.POST("/progress/:moduleId/topics", c.progress.CompleteTopic)
	rg.POST("/progress/:moduleId/videos", c.progress.WatchVideo)
	rg.GET("/progress/:moduleId/leaderboard", c.progress.Leaderboard)
}

// registerAdminRoutes 教师与管理员的内容管理接口，
// RoleMiddleware 对管理员直接放行
func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Teacher))
	{
		admin.POST("/modules", c.content.CreateModule)
		admin.PUT("/modules/:id", c.content.UpdateModule)
		admin.DELETE("/modules/:id", c.content.DeleteModule)

		admin.POST("/topics", c.content.CreateTopic)
		admin.PUT("/topics/:id", c.content.UpdateTopic)
		admin.DELETE("/topics/:id", c.content.DeleteTopic)

		admin.POST("/notes", c.content.AddNote)
		admin.DELETE("/notes/:id", c.content.DeleteNote)
		admin.POST("/links", c.content.AddLink)
		admin.DELETE("/links/:id", c.content.DeleteLink)

		admin.POST("/quizzes", c.content.CreateQuiz)
		admin.PUT("/quizzes/:id", c.content.UpdateQuiz)
		admin.DELETE("/quizzes/:id", c.content.DeleteQuiz)

		admin.POST("/videos", c.content.UploadVideo)
		admin.DELETE("/videos/:id", c.content.DeleteVideo)

		admin.GET("/motivations", c.motivation.List)
		admin.POST("/motivations", c.motivation.Create)
		admin.PUT("/motivations/:id", c.motivation.Update)
		admin.DELETE("/motivations/:id", c.motivation.Delete)
		admin.PUT("/motivations/:id/switch", c.motivation.Switch)
	}

	// 仅管理员
	users := rg.Group("/admin/users")
	users.Use(middleware.RoleMiddleware(model.Admin))
	{
		users.GET("", c.user.ListUsers)
		users.PUT("/:id/disable", c.user.DisableUser)
	}
}
