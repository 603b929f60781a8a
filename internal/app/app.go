package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"survey_backend/internal/bot"
	"survey_backend/internal/config"
	"survey_backend/internal/controller"
	"survey_backend/internal/repository"
	"survey_backend/internal/service"
	"survey_backend/internal/util"
	"survey_backend/pkg/database"
	"survey_backend/pkg/logger"
	"survey_backend/pkg/monitoring"
	"survey_backend/pkg/security"
	"survey_backend/pkg/tracing"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services *services
	tracer   *sdktrace.TracerProvider
	limiter  *security.Limiter

	mu              sync.Mutex
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	role        *repository.RoleRepository
	surveyType  *repository.SurveyTypeRepository
	surveyGroup *repository.SurveyGroupRepository
	survey      *repository.SurveyRepository
	answer      *repository.AnswerRepository
	result      *repository.ResultRepository
}

type services struct {
	auth         *service.AuthService
	registration *service.RegistrationService
	admin        *service.AdminService
	user         *service.UserService
	surveyType   *service.SurveyTypeService
	surveyGroup  *service.SurveyGroupService
	survey       *service.SurveyService
	answer       *service.AnswerService
	result       *service.ResultService
	export       *service.ExportService
}

type controllers struct {
	auth        *controller.AuthController
	admin       *controller.AdminController
	surveyType  *controller.SurveyTypeController
	surveyGroup *controller.SurveyGroupController
	survey      *controller.SurveyController
	answer      *controller.AnswerController
	result      *controller.ResultController
	health      *controller.HealthController
}

// RegisterConfigCallback 配置热更新时回调
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 由 configwatcher 调用
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		role:        repository.NewRoleRepository(db),
		surveyType:  repository.NewSurveyTypeRepository(db),
		surveyGroup: repository.NewSurveyGroupRepository(db),
		survey:      repository.NewSurveyRepository(db),
		answer:      repository.NewAnswerRepository(db),
		result:      repository.NewResultRepository(db),
	}
}

func (a *App) tokenDenylist(rdb *redis.Client) service.TokenDenylist {
	if rdb != nil {
		return service.NewRedisTokenDenylist(rdb)
	}
	return service.NewMemoryTokenDenylist()
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, a.tokenDenylist(rdb), cfg)
	s.registration = service.NewRegistrationService(repos.user, repos.role)
	s.admin = service.NewAdminService(repos.user, repos.role)
	s.user = service.NewUserService(repos.user)
	s.surveyType = service.NewSurveyTypeService(repos.surveyType)
	s.surveyGroup = service.NewSurveyGroupService(repos.surveyGroup, repos.surveyType)
	s.survey = service.NewSurveyService(repos.survey, repos.surveyGroup)
	s.answer = service.NewAnswerService(repos.answer, repos.survey)
	s.result = service.NewResultService(repos.result)
	s.export = service.NewExportService(s.surveyGroup, repos.survey, repos.result, repos.user, service.NewStorageProvider(cfg))

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.registration),
		admin:       controller.NewAdminController(s.admin, s.user),
		surveyType:  controller.NewSurveyTypeController(s.surveyType),
		surveyGroup: controller.NewSurveyGroupController(s.surveyGroup),
		survey:      controller.NewSurveyController(s.survey),
		answer:      controller.NewAnswerController(s.answer),
		result:      controller.NewResultController(s.result, s.export),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if cfg.RateLimit.MaxRequests > 0 && window > 0 {
		a.limiter = security.NewLimiter(cfg.RateLimit.MaxRequests, window)
		router.Use(a.limiter.Middleware())
	}

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// ensureAdmin 按配置创建初始管理员
func (a *App) ensureAdmin(ctx context.Context) {
	admin := a.Config.Admin
	if admin.Username == "" || admin.Password == "" {
		return
	}
	if err := a.services.registration.EnsureAdmin(ctx, admin.Username, admin.Password); err != nil {
		logger.Log.Error("Failed to ensure admin user", zap.String("username", admin.Username), zap.Error(err))
	}
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	app.RegisterConfigCallback(logger.SetLevel)

	if cfg.MigrateOnly {
		return app, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		return nil, err
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("survey-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, err
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

	app.ensureAdmin(context.Background())

	return app, nil
}

// newSurveyBot 组装机器人；未启用时返回 nil
func (a *App) newSurveyBot() (*bot.Telegram, *bot.SurveyBot, error) {
	cfg := a.Config
	if cfg.DisableBot || !cfg.Telegram.Enabled {
		return nil, nil, nil
	}

	var sessions bot.SessionStore = bot.NewMemoryStore()
	if cfg.Telegram.SessionStore == "redis" && a.Redis != nil {
		sessions = bot.NewRedisStore(a.Redis, cfg.Telegram.SessionTTL)
	}

	telegram, err := bot.NewTelegram(cfg.Telegram.Token)
	if err != nil {
		return nil, nil, err
	}

	s := a.services
	assembler := bot.NewAssembler(s.surveyGroup, s.survey, s.surveyType)
	surveyBot := bot.NewSurveyBot(telegram, sessions, assembler, s.user, s.surveyGroup, s.result, cfg.Telegram.RecentGroups)
	return telegram, surveyBot, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telegram, surveyBot, err := a.newSurveyBot()
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	if telegram != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			telegram.Start(ctx, surveyBot)
		}()
		logger.Log.Info("Telegram bot started", zap.String("name", a.Config.Telegram.Name))
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Log.Info("Shutting down server...")
	case err := <-errCh:
		stop()
		wg.Wait()
		return err
	}

	// 关闭服务（5秒超时）
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	wg.Wait()

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return nil
}

// Close 释放外部连接
func (a *App) Close(ctx context.Context) {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
}
