package app

import (
	"guidly_backend/docs"
	"guidly_backend/internal/config"
	"guidly_backend/internal/middleware"
	"guidly_backend/internal/model"
	"guidly_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerTeacherRoutes(router, c, cfg)
}

// registerPublicRoutes wires the student flow. Students are identified by
// their session id, never by an account.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)

		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		homework := public.Group("/homework/:slug")
		{
			homework.GET("", c.homework.Get)
			homework.POST("/start", c.homework.Start)
			homework.POST("/answer", c.homework.Answer)
			homework.POST("/followup", c.homework.FollowUp)
			homework.POST("/complete", c.homework.Complete)
		}
	}
}

func (a *App) registerTeacherRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	teacher := router.Group("/api")
	teacher.Use(middleware.AuthMiddleware(&cfg.JWT), middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		teacher.GET("/auth/profile", c.auth.Profile)

		teacher.POST("/assignments", c.assignment.Create)
		teacher.GET("/assignments", c.assignment.List)
		teacher.GET("/assignments/:id", c.assignment.Detail)
		teacher.POST("/assignments/:id/close", c.assignment.Close)

		teacher.GET("/misconceptions", c.misconception.List)
		teacher.POST("/misconceptions/suggest", c.misconception.Suggest)

		teacher.POST("/upload/extract-questions", c.upload.ExtractQuestions)
	}
}
