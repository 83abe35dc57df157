package app

import (
	"blackboard_backend/internal/config"
	"blackboard_backend/internal/controller"
	"blackboard_backend/internal/repository"
	"blackboard_backend/internal/service"
	"blackboard_backend/pkg/database"
	"blackboard_backend/pkg/logger"
	"blackboard_backend/pkg/monitoring"
	"blackboard_backend/pkg/security"
	"blackboard_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	course     *repository.CourseRepository
	assignment *repository.AssignmentRepository
	submission *repository.SubmissionRepository
	material   *repository.MaterialRepository
	quiz       *repository.QuizRepository
	survey     *repository.SurveyRepository
	chat       *repository.ChatRepository
}

type services struct {
	storage    *service.StorageService
	ai         *service.AIService
	auth       *service.AuthService
	user       *service.UserService
	course     *service.CourseService
	assignment *service.AssignmentService
	submission *service.SubmissionService
	grading    *service.GradingService
	material   *service.MaterialService
	quiz       *service.QuizService
	survey     *service.SurveyService
	chat       *service.ChatService
	dashboard  *service.DashboardService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	assignment *controller.AssignmentController
	submission *controller.SubmissionController
	grade      *controller.GradeController
	file       *controller.FileController
	material   *controller.MaterialController
	quiz       *controller.QuizController
	survey     *controller.SurveyController
	chat       *controller.ChatController
	dashboard  *controller.DashboardController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		course:     repository.NewCourseRepository(db),
		assignment: repository.NewAssignmentRepository(db),
		submission: repository.NewSubmissionRepository(db),
		material:   repository.NewMaterialRepository(db),
		quiz:       repository.NewQuizRepository(db),
		survey:     repository.NewSurveyRepository(db),
		chat:       repository.NewChatRepository(db, rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.course = service.NewCourseService(repos.course)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.submission, repos.course)
	s.submission = service.NewSubmissionService(repos.submission, repos.assignment)
	s.grading = service.NewGradingService(repos.submission, s.storage, s.ai)
	s.material = service.NewMaterialService(repos.material, s.storage, cfg, logger.Log)
	s.quiz = service.NewQuizService(repos.quiz, s.storage, s.ai)
	s.survey = service.NewSurveyService(repos.survey)
	s.chat = service.NewChatService(repos.chat, repos.material, s.ai, logger.Log)
	s.dashboard = service.NewDashboardService(repos.course, repos.assignment, repos.submission, repos.material)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		course:     controller.NewCourseController(s.course),
		assignment: controller.NewAssignmentController(s.assignment),
		submission: controller.NewSubmissionController(s.submission),
		grade:      controller.NewGradeController(s.grading),
		file:       controller.NewFileController(s.storage),
		material:   controller.NewMaterialController(s.material),
		quiz:       controller.NewQuizController(s.quiz),
		survey:     controller.NewSurveyController(s.survey),
		chat:       controller.NewChatController(s.chat),
		dashboard:  controller.NewDashboardController(s.dashboard),
		health:     controller.NewHealthController(db),
	}
}

// ReloadConfig 配置热更新回调，目前只有 AI 接口配置支持运行期替换
func (a *App) ReloadConfig(cfg *config.Config) {
	a.services.ai.SetConfig(cfg.AI)
	logger.Log.Info("AI 配置已热更新", zap.String("model", cfg.AI.Model))
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 只承载会话缓存，连不上时降级为纯数据库模式
		logger.Log.Warn("Failed to initialize redis, session cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services := app.initServices(repos, cfg)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ai-blackboard", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
