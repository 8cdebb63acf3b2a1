package app

import (
	"studyhub_backend/docs"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/middleware"
	"studyhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 用户
		authGroup.GET("/users/me", c.user.Profile)
		authGroup.PUT("/users/me", c.user.UpdateProfile)
		authGroup.GET("/users/me/preferences", c.user.Preferences)
		authGroup.PUT("/users/me/preferences", c.user.UpdatePreferences)

		// 文件
		authGroup.POST("/files", c.file.Upload)
		authGroup.GET("/files", c.file.List)
		authGroup.GET("/files/:id", c.file.Get)
		authGroup.DELETE("/files/:id", c.file.Delete)
		authGroup.GET("/files/:id/url", c.file.SignedURL)

		// 学习资料
		authGroup.POST("/materials/generate", c.material.Generate)
		authGroup.GET("/materials", c.material.List)
		authGroup.GET("/materials/:id", c.material.Get)
		authGroup.DELETE("/materials/:id", c.material.Delete)

		// 测验
		authGroup.POST("/quizzes/generate", c.quiz.Generate)
		authGroup.GET("/quizzes", c.quiz.List)
		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.PUT("/quizzes/:id", c.quiz.Update)
		authGroup.DELETE("/quizzes/:id", c.quiz.Delete)
		authGroup.POST("/quizzes/:id/submit", c.quiz.Submit)
		authGroup.GET("/quizzes/:id/attempts", c.quiz.Attempts)
		authGroup.GET("/quizzes/:id/progress", c.quiz.Progress)

		// 学习会话
		authGroup.POST("/sessions/start", c.session.Start)
		authGroup.POST("/sessions/:id/end", c.session.End)
		authGroup.GET("/sessions", c.session.List)

		// 学习分析
		authGroup.GET("/analytics/overview", c.analytics.Overview)
		authGroup.GET("/analytics/question-types", c.analytics.QuestionTypes)
		authGroup.GET("/analytics/prediction", c.analytics.Prediction)
		authGroup.GET("/analytics/comparative", c.analytics.Comparative)
		authGroup.GET("/analytics/streak", c.analytics.Streak)
	}
}
