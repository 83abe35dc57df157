package app

import (
	"blackboard_backend/docs"
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/middleware"
	"blackboard_backend/internal/model"
	"blackboard_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// 公共路由（无需登录）
	public := router.Group("/api")
	{
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 本地存储模式下签发的上传地址指向这个路由，
	// 预签名地址本身即凭证，和 MinIO 一样不再要求登录态
	if cfg.Storage.Type == "local" {
		router.PUT("/api/uploads/*key", c.file.ReceiveUpload)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		// 用户
		authGroup.GET("/me", c.user.Me)
		authGroup.PUT("/me/profile", c.user.UpdateProfile)
		authGroup.PUT("/me/settings", c.user.UpdateSettings)
		authGroup.PUT("/me/password", c.user.ChangePassword)
		authGroup.POST("/me/avatar", c.user.UploadAvatar)

		// 看板
		authGroup.GET("/dashboard", c.dashboard.Summary)

		// 课程
		authGroup.GET("/courses", c.course.List)
		authGroup.GET("/courses/:id", c.course.Get)
		authGroup.GET("/courses/:id/weeks", c.course.Weeks)
		authGroup.POST("/courses/:id/enroll", c.course.Enroll)

		// 作业
		authGroup.GET("/assignments", c.assignment.List)
		authGroup.GET("/assignments/:id", c.assignment.Get)
		authGroup.GET("/assignments/:id/submissions", c.submission.List)
		authGroup.POST("/assignments/:id/submissions", c.submission.Submit)

		// 文件中转
		authGroup.POST("/files/upload-url", c.file.CreateUploadURL)
		authGroup.POST("/files/download-url", c.file.CreateDownloadURL)

		// 资料
		authGroup.GET("/materials", c.material.List)
		authGroup.GET("/materials/:id/download-url", c.material.DownloadURL)

		// 测验与问卷
		authGroup.GET("/quizzes", c.quiz.List)
		authGroup.GET("/quizzes/:id", c.quiz.Get)
		authGroup.POST("/quizzes/:id/submit", c.quiz.Submit)
		authGroup.GET("/quizzes/:id/result", c.quiz.Result)
		authGroup.GET("/surveys", c.survey.List)
		authGroup.GET("/surveys/:id", c.survey.Get)
		authGroup.POST("/surveys/:id/submit", c.survey.Submit)

		// AI 助教
		authGroup.GET("/assistant/sessions", c.chat.Sessions)
		authGroup.GET("/assistant/sessions/:sessionId", c.chat.History)
		authGroup.POST("/assistant/ask", c.chat.Ask)
		authGroup.POST("/assistant/ask-stream", c.chat.AskStream)

		// 教师相关接口
		teacher := authGroup.Group("")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/courses/:id/weeks", c.course.CreateWeek)
			teacher.POST("/assignments", c.assignment.Create)
			teacher.PUT("/assignments/:id", c.assignment.Update)
			teacher.POST("/submissions/:id/ai-grade", c.grade.AIGrade)
			teacher.PUT("/submissions/:id/grade", c.grade.Confirm)
			teacher.POST("/materials", c.material.Upload)
			teacher.POST("/quizzes", c.quiz.Create)
			teacher.PUT("/quizzes/:id", c.quiz.Update)
			teacher.POST("/quizzes/generate-question", c.quiz.GenerateQuestion)
			teacher.POST("/surveys", c.survey.Create)
			teacher.PUT("/surveys/:id", c.survey.Update)
		}
	}
}
