package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/controller"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/pkg/configwatcher"
	"studyhub_backend/pkg/database"
	"studyhub_backend/pkg/logger"
	"studyhub_backend/pkg/monitoring"
	"studyhub_backend/pkg/security"
	"studyhub_backend/pkg/tracing"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	file        *repository.FileRepository
	quiz        *repository.QuizRepository
	attempt     *repository.AttemptRepository
	material    *repository.MaterialRepository
	session     *repository.SessionRepository
	streak      *repository.StreakRepository
	preference  *repository.PreferenceRepository
	performance *repository.PerformanceRepository
	analytics   *repository.AnalyticsRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	ai         *service.AIService
	generation *service.GenerationService
	file       *service.FileService
	material   *service.MaterialService
	quiz       *service.QuizService
	streak     *service.StreakService
	session    *service.SessionService
	analytics  *service.AnalyticsService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	file      *controller.FileController
	material  *controller.MaterialController
	quiz      *controller.QuizController
	session   *controller.SessionController
	analytics *controller.AnalyticsController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		file:        repository.NewFileRepository(db),
		quiz:        repository.NewQuizRepository(db),
		attempt:     repository.NewAttemptRepository(db),
		material:    repository.NewMaterialRepository(db),
		session:     repository.NewSessionRepository(db),
		streak:      repository.NewStreakRepository(db),
		preference:  repository.NewPreferenceRepository(db),
		performance: repository.NewPerformanceRepository(db),
		analytics:   repository.NewAnalyticsRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.preference)
	s.ai = service.NewAIService(cfg.AI)
	s.generation = service.NewGenerationService(s.ai, rdb)
	s.streak = service.NewStreakService(repos.streak)
	s.session = service.NewSessionService(repos.session, s.streak)
	s.file = service.NewFileService(repos.file, repos.quiz, repos.material, s.storage, cfg)
	s.material = service.NewMaterialService(repos.material, repos.file, s.generation)
	s.quiz = service.NewQuizService(
		repos.quiz,
		repos.attempt,
		repos.file,
		repos.performance,
		s.generation,
		s.session,
		s.streak,
	)
	s.analytics = service.NewAnalyticsService(
		repos.analytics,
		repos.performance,
		repos.quiz,
		repos.attempt,
		s.streak,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		file:      controller.NewFileController(s.file),
		material:  controller.NewMaterialController(s.material),
		quiz:      controller.NewQuizController(s.quiz, s.analytics),
		session:   controller.NewSessionController(s.session),
		analytics: controller.NewAnalyticsController(s.analytics),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
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

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级运行，生成结果不再缓存
		logger.Log.Warn("Redis unavailable, generation cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("studyhub", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：变更回调只调整可安全在线生效的部分
	go configwatcher.WatchConfig("configs/config.yaml", func(updated *config.Config) {
		app.Config.CORS = updated.CORS
		app.Config.RateLimit = updated.RateLimit
		app.Config.Upload = updated.Upload
		for _, callback := range app.configCallbacks {
			callback(updated)
		}
		logger.Log.Info("configuration reloaded")
	})

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
