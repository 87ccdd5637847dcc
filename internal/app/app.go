package app

import (
	"context"
	"guidly_backend/internal/config"
	"guidly_backend/internal/controller"
	"guidly_backend/internal/repository"
	"guidly_backend/internal/service"
	"guidly_backend/pkg/database"
	"guidly_backend/pkg/logger"
	"guidly_backend/pkg/monitoring"
	"guidly_backend/pkg/security"
	"guidly_backend/pkg/tracing"
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
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	assignment    *repository.AssignmentRepository
	question      *repository.QuestionRepository
	misconception *repository.MisconceptionRepository
	session       *repository.SessionRepository
	response      *repository.ResponseRepository
}

type services struct {
	ai            *service.AIService
	auth          *service.AuthService
	explanation   *service.ExplanationService
	grading       *service.GradingService
	insight       *service.InsightService
	misconception *service.MisconceptionService
	assignment    *service.AssignmentService
	homework      *service.HomeworkService
	extract       *service.ExtractService
}

type controllers struct {
	auth          *controller.AuthController
	assignment    *controller.AssignmentController
	homework      *controller.HomeworkController
	misconception *controller.MisconceptionController
	upload        *controller.UploadController
	health        *controller.HealthController
}

// RegisterConfigCallback subscribes a component to config reloads.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig fans a freshly parsed config out to subscribers.
func (a *App) ReloadConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		assignment:    repository.NewAssignmentRepository(db),
		question:      repository.NewQuestionRepository(db),
		misconception: repository.NewMisconceptionRepository(db, rdb),
		session:       repository.NewSessionRepository(db),
		response:      repository.NewResponseRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, &cfg.JWT)
	s.explanation = service.NewExplanationService(s.ai)
	s.grading = service.NewGradingService(
		repos.session,
		repos.assignment,
		repos.question,
		repos.misconception,
		repos.response,
		s.explanation,
		s.ai,
	)
	s.insight = service.NewInsightService(repos.response, repos.session, s.ai)
	s.misconception = service.NewMisconceptionService(repos.misconception, s.ai)
	s.assignment = service.NewAssignmentService(repos.assignment, repos.question, repos.session, s.insight)
	s.homework = service.NewHomeworkService(repos.assignment, repos.question, repos.session)

	storage, err := service.NewStorageProvider(&cfg.Storage)
	if err != nil {
		return nil, err
	}
	s.extract = service.NewExtractService(storage, s.ai)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:          controller.NewAuthController(s.auth),
		assignment:    controller.NewAssignmentController(s.assignment),
		homework:      controller.NewHomeworkController(s.homework, s.grading),
		misconception: controller.NewMisconceptionController(s.misconception),
		upload:        controller.NewUploadController(s.extract),
		health:        controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 300
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	services, err := app.initServices(repos, cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = services
	controllers := app.initControllers(services, db)

	app.RegisterConfigCallback(func(next *config.Config) {
		services.ai.UpdateConfig(next.AI)
	})

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("guidly-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	defer logger.Log.Sync()

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
