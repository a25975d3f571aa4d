package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	HTTPClient  HTTPClientConfig  `mapstructure:"http_client"`
	MercadoPago MercadoPagoConfig `mapstructure:"mercadopago"`
	Marketplace MarketplaceConfig `mapstructure:"marketplace"`
	Webhook     WebhookConfig     `mapstructure:"webhook"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Log         LogConfig         `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowOrigins    []string      `mapstructure:"allow_origins"`
}

// Database drivers understood by database.New.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	Path            string        `mapstructure:"path"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// DSN returns the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Database)
	case DriverSQLite:
		return c.Path
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Database, c.SSLMode)
		if c.Password != "" {
			dsn += " password=" + c.Password
		}
		return dsn
	}
}

// RedisConfig holds Redis configuration. An empty address disables Redis.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// HTTPClientConfig holds outbound HTTP transport settings.
type HTTPClientConfig struct {
	DialTimeout         time.Duration `mapstructure:"dial_timeout"`
	KeepAlive           time.Duration `mapstructure:"keep_alive"`
	TLSHandshakeTimeout time.Duration `mapstructure:"tls_handshake_timeout"`
	IdleConnTimeout     time.Duration `mapstructure:"idle_conn_timeout"`
	MaxIdleConns        int           `mapstructure:"max_idle_conns"`
	MaxIdleConnsPerHost int           `mapstructure:"max_idle_conns_per_host"`
	MaxConnsPerHost     int           `mapstructure:"max_conns_per_host"`
}

// MercadoPagoConfig holds gateway credentials and endpoints.
type MercadoPagoConfig struct {
	AppID         string        `mapstructure:"app_id"`
	ClientSecret  string        `mapstructure:"client_secret"`
	AccessToken   string        `mapstructure:"access_token"`
	RedirectURI   string        `mapstructure:"redirect_uri"`
	AuthURL       string        `mapstructure:"auth_url"`
	APIURL        string        `mapstructure:"api_url"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	Timeout       time.Duration `mapstructure:"timeout"`

	BreakerFailureThreshold uint32        `mapstructure:"breaker_failure_threshold"`
	BreakerOpenTimeout      time.Duration `mapstructure:"breaker_open_timeout"`
}

// NotificationURL is the webhook address derived from the redirect URI's origin.
func (c *MercadoPagoConfig) NotificationURL() string {
	u, err := url.Parse(c.RedirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/webhook"
}

// MarketplaceConfig holds the fixed values attached to every split payment.
type MarketplaceConfig struct {
	Description       string `mapstructure:"description"`
	PaymentMethod     string `mapstructure:"payment_method"`
	PayerIDType       string `mapstructure:"payer_id_type"`
	PayerIDNumber     string `mapstructure:"payer_id_number"`
	ConfirmationText  string `mapstructure:"confirmation_text"`
	DashboardRedirect string `mapstructure:"dashboard_redirect"`
}

// WebhookConfig holds the background reconciliation settings.
type WebhookConfig struct {
	Workers    int           `mapstructure:"workers"`
	QueueSize  int           `mapstructure:"queue_size"`
	JobTimeout time.Duration `mapstructure:"job_timeout"`
}

// AuthConfig holds admin authentication and credential sealing settings.
type AuthConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	JWTSecret         string        `mapstructure:"jwt_secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"`
	MasterKey         string        `mapstructure:"master_key"`
}

// IdempotencyConfig holds the replay cache settings.
type IdempotencyConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/splitpay")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("SPLITPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides maps the legacy variable names used by existing deployments.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MP_APP_ID"); v != "" {
		cfg.MercadoPago.AppID = v
	}
	if v := os.Getenv("MP_CLIENT_SECRET"); v != "" {
		cfg.MercadoPago.ClientSecret = v
	}
	if v := os.Getenv("MP_ACCESS_TOKEN"); v != "" {
		cfg.MercadoPago.AccessToken = v
	}
	if v := os.Getenv("REDIRECT_URI"); v != "" {
		cfg.MercadoPago.RedirectURI = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("SPLITPAY_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("SPLITPAY_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("SPLITPAY_REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("SPLITPAY_MASTER_KEY"); v != "" {
		cfg.Auth.MasterKey = v
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":3000")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.database", "splitpay")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "splitpay.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 30*time.Minute)

	v.SetDefault("redis.db", 0)

	v.SetDefault("http_client.dial_timeout", 5*time.Second)
	v.SetDefault("http_client.keep_alive", 30*time.Second)
	v.SetDefault("http_client.tls_handshake_timeout", 5*time.Second)
	v.SetDefault("http_client.idle_conn_timeout", 90*time.Second)
	v.SetDefault("http_client.max_idle_conns", 100)
	v.SetDefault("http_client.max_idle_conns_per_host", 10)
	v.SetDefault("http_client.max_conns_per_host", 50)

	v.SetDefault("mercadopago.auth_url", "https://auth.mercadopago.com.br/authorization")
	v.SetDefault("mercadopago.api_url", "https://api.mercadopago.com")
	v.SetDefault("mercadopago.timeout", 15*time.Second)
	v.SetDefault("mercadopago.breaker_failure_threshold", 5)
	v.SetDefault("mercadopago.breaker_open_timeout", 30*time.Second)

	v.SetDefault("marketplace.description", "Venda Marketplace com Split (%)")
	v.SetDefault("marketplace.payment_method", "pix")
	v.SetDefault("marketplace.payer_id_type", "CPF")
	v.SetDefault("marketplace.payer_id_number", "19119119100")
	v.SetDefault("marketplace.confirmation_text", "Pagamento criado em nome do vendedor. Comissão retida automaticamente.")
	v.SetDefault("marketplace.dashboard_redirect", "/?status=success_connected")

	v.SetDefault("webhook.workers", 4)
	v.SetDefault("webhook.queue_size", 256)
	v.SetDefault("webhook.job_timeout", 30*time.Second)

	v.SetDefault("auth.enabled", false)
	v.SetDefault("auth.access_token_expiry", 12*time.Hour)

	v.SetDefault("idempotency.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
