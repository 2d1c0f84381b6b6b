package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Backend  BackendConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	AllowedOrigin string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// BackendConfig points at the remote LuminaCine REST API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName   string
	ExpiryHours  int
	Secret       string
	SecureCookie bool
}

type CheckoutConfig struct {
	ServiceFee     int64
	FlowTTLMinutes int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "luminacine-web")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("ALLOWED_ORIGIN", "*")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("BACKEND_URL", "https://luminacine-be-901699795850.us-central1.run.app")
	viper.SetDefault("BACKEND_TIMEOUT", "10s")
	viper.SetDefault("SESSION_COOKIE", "luminacine_session")
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_SECURE_COOKIE", true)
	viper.SetDefault("CHECKOUT_SERVICE_FEE", 5000)
	viper.SetDefault("CHECKOUT_FLOW_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATALOG_CACHE_TTL", "60s")

	// .env is optional, container deployments only set real env vars
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Port:          viper.GetString("PORT"),
			Debug:         viper.GetBool("DEBUG"),
			LogPath:       viper.GetString("LOG_PATH"),
			AllowedOrigin: viper.GetString("ALLOWED_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_URL"),
			Timeout: viper.GetDuration("BACKEND_TIMEOUT"),
		},
		Session: SessionConfig{
			CookieName:   viper.GetString("SESSION_COOKIE"),
			ExpiryHours:  viper.GetInt("SESSION_EXPIRY_HOURS"),
			Secret:       viper.GetString("SESSION_SECRET"),
			SecureCookie: viper.GetBool("SESSION_SECURE_COOKIE"),
		},
		Checkout: CheckoutConfig{
			ServiceFee:     viper.GetInt64("CHECKOUT_SERVICE_FEE"),
			FlowTTLMinutes: viper.GetInt("CHECKOUT_FLOW_TTL_MINUTES"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetDuration("CATALOG_CACHE_TTL"),
		},
	}

	if config.Session.Secret == "" {
		return nil, errors.New("SESSION_SECRET is required")
	}

	return config, nil
}
