package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"english_edu_backend/internal/config"
	"english_edu_backend/internal/controller"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/database"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"
	"english_edu_backend/pkg/security"
	"english_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	module      *repository.ModuleRepository
	video       *repository.VideoRepository
	quiz        *repository.QuizRepository
	attempt     *repository.QuizAttemptRepository
	progress    *repository.ProgressRepository
	achievement *repository.AchievementRepository
	motivation  *repository.MotivationRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	content     *service.ContentService
	user        *service.UserService
	quiz        *service.QuizService
	progress    *service.ProgressService
	achievement *service.AchievementService
	motivation  *service.MotivationService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	module     *controller.ModuleController
	content    *controller.ContentController
	quiz       *controller.QuizController
	progress   *controller.ProgressController
	motivation *controller.MotivationController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		module:      repository.NewModuleRepository(db),
		video:       repository.NewVideoRepository(db),
		quiz:        repository.NewQuizRepository(db),
		attempt:     repository.NewQuizAttemptRepository(db),
		progress:    repository.NewProgressRepository(db),
		achievement: repository.NewAchievementRepository(db),
		motivation:  repository.NewMotivationRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.content = service.NewContentService(repos.module, repos.video, repos.quiz, s.storage, cfg)
	s.motivation = service.NewMotivationService(repos.motivation)
	s.achievement = service.NewAchievementService(repos.achievement, repos.attempt, repos.user)
	s.progress = service.NewProgressService(repos.progress, repos.module, repos.video, repos.user, s.achievement, rdb, db)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, repos.module, repos.user, s.progress, s.achievement, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user, s.achievement),
		module:     controller.NewModuleController(s.content),
		content:    controller.NewContentController(s.content),
		quiz:       controller.NewQuizController(s.quiz, s.content),
		progress:   controller.NewProgressController(s.progress),
		motivation: controller.NewMotivationController(s.motivation),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
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
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		logger.Log.Info("Migration completed, exiting (migrate-only mode)")
		os.Exit(0)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用不阻塞启动：榜单会回退到数据库
		logger.Log.Warn("Failed to initialize redis, leaderboard cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("english-learning-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
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
