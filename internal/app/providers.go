package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Juninho21/split-de-pagamentos/internal/module/admin"
	"github.com/Juninho21/split-de-pagamentos/internal/module/onboarding"
	"github.com/Juninho21/split-de-pagamentos/internal/module/onboarding/oauth"
	"github.com/Juninho21/split-de-pagamentos/internal/module/payment"
	"github.com/Juninho21/split-de-pagamentos/internal/module/payment/provider"
	"github.com/Juninho21/split-de-pagamentos/internal/module/report"
	"github.com/Juninho21/split-de-pagamentos/internal/module/seller"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/cache"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/config"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/crypto"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/database"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/events"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/httpclient"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/metrics"
	"github.com/Juninho21/split-de-pagamentos/internal/shared/task"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideDatabase,
	ProvideRedisClient,
	ProvideHTTPClient,
	ProvideMetrics,
	ProvideEventBus,
	ProvideDispatcher,
	ProvideSealer,
)

// ProvideDatabase opens the configured store. The memory driver needs no
// connection and yields a nil *gorm.DB.
func ProvideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		return nil, func() {}, nil
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(&seller.Seller{}, &payment.Payment{}, &admin.User{}); err != nil {
			_ = database.Close(db)
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, func() { _ = database.Close(db) }, nil
}

// ProvideRedisClient creates a Redis client. Redis is optional: without it
// idempotent replay is disabled.
func ProvideRedisClient(cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, func()) {
	if cfg.Redis.Address == "" {
		return nil, func() {}
	}
	client, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, idempotent replay disabled", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideHTTPClient creates the client used for gateway calls.
func ProvideHTTPClient(cfg *config.Config) *http.Client {
	return httpclient.New(cfg.HTTPClient, cfg.MercadoPago.Timeout)
}

// ProvideMetrics creates the metrics registry.
func ProvideMetrics() *metrics.Metrics {
	return metrics.New("splitpay")
}

// ProvideEventBus creates the event bus with a logging subscriber.
func ProvideEventBus(log *zap.Logger) *events.Bus {
	bus := events.NewBus(log)
	eventLog := log.Named("events")
	bus.Register(events.NewHandlerFunc(
		[]string{events.SellerConnectedType, events.PaymentCreatedType, events.PaymentReconciledType},
		func(e events.Event) error {
			eventLog.Info("domain event",
				zap.String("type", e.EventType()),
				zap.String("aggregate", e.AggregateType()),
				zap.String("aggregate_id", e.AggregateID()),
				zap.Time("occurred_at", e.OccurredAt()))
			return nil
		}))
	return bus
}

// ProvideDispatcher starts the background worker pool.
func ProvideDispatcher(cfg *config.Config, log *zap.Logger) (*task.Dispatcher, func()) {
	d := task.NewDispatcher(log, &task.Config{
		Workers:    cfg.Webhook.Workers,
		QueueSize:  cfg.Webhook.QueueSize,
		JobTimeout: cfg.Webhook.JobTimeout,
	})
	d.Start()
	return d, d.Stop
}

// ProvideSealer creates the credential sealer.
func ProvideSealer(cfg *config.Config) (crypto.Sealer, error) {
	return crypto.NewSealer(cfg.Auth.MasterKey)
}

// ===== Repository Providers =====

// RepositorySet provides storage for every module.
var RepositorySet = wire.NewSet(
	ProvideSellerRepository,
	ProvidePaymentRepository,
	ProvideAdminRepository,
)

// ProvideSellerRepository creates the seller store, sealing tokens when configured.
func ProvideSellerRepository(cfg *config.Config, db *gorm.DB, sealer crypto.Sealer) seller.Repository {
	var repo seller.Repository
	if cfg.Database.Driver == config.DriverMemory {
		repo = seller.NewMemoryRepository()
	} else {
		repo = seller.NewRepository(db)
	}
	return seller.NewSealedRepository(repo, sealer)
}

// ProvidePaymentRepository creates the payment store.
func ProvidePaymentRepository(cfg *config.Config, db *gorm.DB) payment.Repository {
	if cfg.Database.Driver == config.DriverMemory {
		return payment.NewMemoryRepository()
	}
	return payment.NewRepository(db)
}

// ProvideAdminRepository creates the admin account store.
func ProvideAdminRepository(cfg *config.Config, db *gorm.DB) admin.Repository {
	if cfg.Database.Driver == config.DriverMemory {
		return admin.NewMemoryRepository()
	}
	return admin.NewRepository(db)
}

// ===== Module Providers =====

// ModuleSet provides services and handlers.
var ModuleSet = wire.NewSet(
	ProvideSellerService,
	ProvideOAuthProvider,
	ProvideOnboardingService,
	ProvidePaymentGateway,
	ProvidePaymentService,
	ProvideReportService,
	ProvideJWTManager,
	ProvideAdminService,
	seller.NewHandler,
	ProvideOnboardingHandler,
	payment.NewHandler,
	ProvideWebhookHandler,
	report.NewHandler,
	admin.NewHandler,
	wire.Bind(new(onboarding.Provider), new(*oauth.MercadoPagoProvider)),
	wire.Bind(new(onboarding.SellerStore), new(*seller.Service)),
	wire.Bind(new(payment.Gateway), new(*provider.MercadoPago)),
	wire.Bind(new(payment.SellerLookup), new(*seller.Service)),
	wire.Bind(new(payment.Reconciler), new(*payment.Service)),
	wire.Bind(new(payment.Submitter), new(*task.Dispatcher)),
)

// AppSet combines every provider set.
var AppSet = wire.NewSet(InfraSet, RepositorySet, ModuleSet)

// ProvideSellerService creates the seller service.
func ProvideSellerService(repo seller.Repository, log *zap.Logger) *seller.Service {
	return seller.NewService(repo, log)
}

// ProvideOAuthProvider creates the OAuth client for seller onboarding.
func ProvideOAuthProvider(cfg *config.Config, client *http.Client) *oauth.MercadoPagoProvider {
	mp := cfg.MercadoPago
	return oauth.NewMercadoPagoProvider(&oauth.Config{
		ClientID:     mp.AppID,
		ClientSecret: mp.ClientSecret,
		RedirectURL:  mp.RedirectURI,
		AuthURL:      mp.AuthURL,
		TokenURL:     strings.TrimRight(mp.APIURL, "/") + "/oauth/token",
	}, client)
}

// ProvideOnboardingService creates the onboarding service.
func ProvideOnboardingService(p onboarding.Provider, sellers onboarding.SellerStore, bus *events.Bus, m *metrics.Metrics, log *zap.Logger) *onboarding.Service {
	return onboarding.NewService(p, sellers, bus, m, log)
}

// ProvidePaymentGateway creates the payments API client.
func ProvidePaymentGateway(cfg *config.Config, client *http.Client, m *metrics.Metrics, log *zap.Logger) *provider.MercadoPago {
	mp := cfg.MercadoPago
	return provider.NewMercadoPago(&provider.Config{
		BaseURL:                 mp.APIURL,
		PlatformToken:           mp.AccessToken,
		BreakerFailureThreshold: mp.BreakerFailureThreshold,
		BreakerOpenTimeout:      mp.BreakerOpenTimeout,
	}, client, m, log)
}

// ProvidePaymentService creates the split payment service.
func ProvidePaymentService(cfg *config.Config, repo payment.Repository, sellers payment.SellerLookup, gateway payment.Gateway, bus *events.Bus, m *metrics.Metrics, log *zap.Logger) *payment.Service {
	mk := cfg.Marketplace
	return payment.NewService(repo, sellers, gateway, payment.Options{
		Description:      mk.Description,
		PaymentMethod:    mk.PaymentMethod,
		PayerIDType:      mk.PayerIDType,
		PayerIDNumber:    mk.PayerIDNumber,
		NotificationURL:  cfg.MercadoPago.NotificationURL(),
		ConfirmationText: mk.ConfirmationText,
	}, bus, m, log)
}

// ProvideReportService creates the statistics service.
func ProvideReportService(sellers *seller.Service, payments *payment.Service) *report.Service {
	return report.NewService(sellers, payments)
}

// ProvideJWTManager creates the admin session token manager.
func ProvideJWTManager(cfg *config.Config) *admin.JWTManager {
	return admin.NewJWTManager(&admin.JWTConfig{
		Secret:            cfg.Auth.JWTSecret,
		AccessTokenExpiry: cfg.Auth.AccessTokenExpiry,
	})
}

// ProvideAdminService creates the admin account service.
func ProvideAdminService(repo admin.Repository, jwt *admin.JWTManager, log *zap.Logger) *admin.Service {
	return admin.NewService(repo, jwt, log)
}

// ProvideOnboardingHandler creates the onboarding handler.
func ProvideOnboardingHandler(cfg *config.Config, svc *onboarding.Service) *onboarding.Handler {
	return onboarding.NewHandler(svc, cfg.Marketplace.DashboardRedirect)
}

// ProvideWebhookHandler creates the webhook handler.
func ProvideWebhookHandler(cfg *config.Config, r payment.Reconciler, s payment.Submitter, m *metrics.Metrics, log *zap.Logger) *payment.WebhookHandler {
	return payment.NewWebhookHandler(r, s, cfg.MercadoPago.WebhookSecret, m, log)
}
