package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/Juninho21/split-de-pagamentos/cmd/server/docs" // swagger docs
	"github.com/Juninho21/split-de-pagamentos/internal/module/admin"
	"github.com/Juninho21/split-de-pagamentos/internal/module/onboarding"
	"github.com/Juninho21/split-de-pagamentos/internal/module/payment"
	"github.com/Juninho21/split-de-pagamentos/internal/module/report"
	"github.com/Juninho21/split-de-pagamentos/internal/module/seller"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/config"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/crypto"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/events"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/logger"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/middleware"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/task"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	DB         *gorm.DB
	Redis      goredis.UniversalClient
	HTTPClient *http.Client
	Metrics    *metrics.Metrics
	EventBus   *events.Bus
	Dispatcher *task.Dispatcher
	Sealer     crypto.Sealer

	SellerRepo  seller.Repository
	PaymentRepo payment.Repository
	AdminRepo   admin.Repository

	SellerService     *seller.Service
	OnboardingService *onboarding.Service
	PaymentService    *payment.Service
	ReportService     *report.Service
	AdminService      *admin.Service
	JWTManager        *admin.JWTManager

	SellerHandler     *seller.Handler
	OnboardingHandler *onboarding.Handler
	PaymentHandler    *payment.Handler
	WebhookHandler    *payment.WebhookHandler
	ReportHandler     *report.Handler
	AdminHandler      *admin.Handler
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	httpClient *http.Client
}

// WithLogger replaces the configured logger.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithHTTPClient replaces the gateway HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// App represents the application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.New(&logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		})
	}

	deps, cleanup, err := buildDependencies(cfg, o)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}

	app := &App{deps: deps, cleanup: cleanup}
	app.router = app.setupRouter()
	return app, nil
}

// buildDependencies wires the provider sets by hand, in dependency order.
func buildDependencies(cfg *config.Config, o *options) (*Dependencies, func(), error) {
	log := o.logger
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	db, closeDB, err := ProvideDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	cleanups = append(cleanups, closeDB)

	sealer, err := ProvideSealer(cfg)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("init sealer: %w", err)
	}

	redisClient, closeRedis := ProvideRedisClient(cfg, log)
	cleanups = append(cleanups, closeRedis)

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = ProvideHTTPClient(cfg)
	}
	m := ProvideMetrics()
	bus := ProvideEventBus(log)
	dispatcher, stopDispatcher := ProvideDispatcher(cfg, log)
	cleanups = append(cleanups, stopDispatcher)

	sellerRepo := ProvideSellerRepository(cfg, db, sealer)
	paymentRepo := ProvidePaymentRepository(cfg, db)
	adminRepo := ProvideAdminRepository(cfg, db)

	sellerService := ProvideSellerService(sellerRepo, log)
	onboardingService := ProvideOnboardingService(ProvideOAuthProvider(cfg, httpClient), sellerService, bus, m, log)
	paymentService := ProvidePaymentService(cfg, paymentRepo, sellerService, ProvidePaymentGateway(cfg, httpClient, m, log), bus, m, log)
	reportService := ProvideReportService(sellerService, paymentService)
	jwtManager := ProvideJWTManager(cfg)
	adminService := ProvideAdminService(adminRepo, jwtManager, log)

	deps := &Dependencies{
		Config:     cfg,
		Logger:     log,
		DB:         db,
		Redis:      redisClient,
		HTTPClient: httpClient,
		Metrics:    m,
		EventBus:   bus,
		Dispatcher: dispatcher,
		Sealer:     sealer,

		SellerRepo:  sellerRepo,
		PaymentRepo: paymentRepo,
		AdminRepo:   adminRepo,

		SellerService:     sellerService,
		OnboardingService: onboardingService,
		PaymentService:    paymentService,
		ReportService:     reportService,
		AdminService:      adminService,
		JWTManager:        jwtManager,

		SellerHandler:     seller.NewHandler(sellerService),
		OnboardingHandler: ProvideOnboardingHandler(cfg, onboardingService),
		PaymentHandler:    payment.NewHandler(paymentService),
		WebhookHandler:    ProvideWebhookHandler(cfg, paymentService, dispatcher, m, log),
		ReportHandler:     report.NewHandler(reportService),
		AdminHandler:      admin.NewHandler(adminService),
	}
	return deps, cleanup, nil
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	cfg := a.deps.Config
	log := a.deps.Logger

	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowOrigins)))
	r.Use(middleware.Metrics(a.deps.Metrics))
	r.Use(middleware.Idempotency(a.deps.Redis, middleware.IdempotencyConfig{
		TTL:    cfg.Idempotency.TTL,
		Logger: log,
	}))

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(a.deps.Metrics.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	a.deps.OnboardingHandler.RegisterRoutes(r)
	a.deps.PaymentHandler.RegisterRoutes(r)
	a.deps.WebhookHandler.RegisterRoutes(r)

	api := r.Group("/api")
	a.deps.AdminHandler.RegisterPublicRoutes(api)

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.RequireAdmin(a.deps.JWTManager))
	}
	a.deps.SellerHandler.RegisterRoutes(protected)
	a.deps.ReportHandler.RegisterRoutes(protected)
	a.deps.AdminHandler.RegisterRoutes(protected)

	return r
}

func (a *App) health(c *gin.Context) {
	if err := a.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Check verifies the store is reachable.
func (a *App) Check(ctx context.Context) error {
	if a.deps.DB == nil {
		return nil
	}
	sqlDB, err := a.deps.DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Deps exposes the wired dependencies to operator tooling.
func (a *App) Deps() *Dependencies {
	return a.deps
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.deps.Logger
}

// Stop drains background work and releases connections.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
	_ = a.deps.Logger.Sync()
}
