package app

import (
	"context"
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/controller"
	"engineer_connect_backend/internal/middleware"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/internal/util"
	"engineer_connect_backend/pkg/configwatcher"
	"engineer_connect_backend/pkg/database"
	"engineer_connect_backend/pkg/logger"
	"engineer_connect_backend/pkg/monitoring"
	"engineer_connect_backend/pkg/security"
	"engineer_connect_backend/pkg/tracing"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const viewFlushInterval = time.Minute

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	origins         *security.OriginList
	repos           *repositories
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	problem      *repository.ProblemRepository
	idea         *repository.IdeaRepository
	quizResponse *repository.QuizResponseRepository
	views        *repository.ViewCounter
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	problem *service.ProblemService
	idea    *service.IdeaService
	quiz    *service.QuizService
	tokens  *util.TokenService
}

type controllers struct {
	auth    *controller.AuthController
	problem *controller.ProblemController
	idea    *controller.IdeaController
	quiz    *controller.QuizController
	file    *controller.FileController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	problems := repository.NewProblemRepository(db)
	return &repositories{
		user:         repository.NewUserRepository(db),
		problem:      problems,
		idea:         repository.NewIdeaRepository(db),
		quizResponse: repository.NewQuizResponseRepository(db),
		views:        repository.NewViewCounter(rdb, problems),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.tokens = util.NewTokenService(cfg.JWT.Secret)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.tokens, cfg)
	s.problem = service.NewProblemService(repos.problem, repos.views)

	ledger := service.NewSubmissionLedger(repos.idea, repos.quizResponse)
	s.idea = service.NewIdeaService(repos.idea, s.problem, ledger)
	s.quiz = service.NewQuizService(repos.quizResponse, s.problem, ledger)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		problem: controller.NewProblemController(s.problem),
		idea:    controller.NewIdeaController(s.idea),
		quiz:    controller.NewQuizController(s.quiz),
		file:    controller.NewFileController(s.storage),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(a.origins))
	router.Use(security.Secure())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New assembles the HTTP application on already opened stores. rdb may be nil.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		origins: security.NewOriginList(cfg.CORS.AllowedOrigins),
	}

	database.ReadRetry = database.RetryPolicy{Attempts: cfg.Retry.Attempts, Backoff: cfg.RetryBackoff()}

	repos := app.initRepositories(db, rdb)
	app.repos = repos
	services := app.initServices(repos, cfg)
	controllers := app.initControllers(services, db, rdb)
	guard := middleware.NewGuard(services.tokens, repos.user, repos.problem, service.ProblemOwnership{})

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, guard)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.origins.Replace(newCfg.CORS.AllowedOrigins)
		logger.Log.Info("CORS allow-list updated", zap.Strings("origins", newCfg.CORS.AllowedOrigins))
	})

	return app
}

// NewApp connects the stores named in cfg and builds the application.
// Migrations run outside release mode or when forced.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.Open(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	// 监控初始化
	monitoring.Init()

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("engineer-connect", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	if a.Redis != nil {
		go func() {
			ticker := time.NewTicker(viewFlushInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if err := a.repos.views.Flush(ctx); err != nil {
						logger.Log.Error("view counter flush error", zap.Error(err))
					}
				}
			}
		}()
	}

	go func() {
		configFile := filepath.Join("configs", "config.yaml")
		err := configwatcher.WatchConfig(ctx, configFile, func(cfg *config.Config) {
			for _, callback := range a.configCallbacks {
				callback(cfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	a.startBackgroundTasks(bgCtx)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	stopBackground()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// buffered views are written before exit
	if err := a.repos.views.Flush(ctx); err != nil {
		logger.Log.Error("final view counter flush error", zap.Error(err))
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	logger.Log.Info("Server exiting")
}
