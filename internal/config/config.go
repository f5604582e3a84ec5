package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Aggregation AggregationConfig `mapstructure:"aggregation"`
	Monitoring  MonitoringConfig  `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Host      string        `mapstructure:"host"`
	Port      int           `mapstructure:"port"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	DeviceTTL time.Duration `mapstructure:"device_ttl"`
}

type AuthConfig struct {
	Mode     string         `mapstructure:"mode"`
	Secret   string         `mapstructure:"secret"`
	TokenTTL time.Duration  `mapstructure:"token_ttl"`
	Keycloak KeycloakConfig `mapstructure:"keycloak"`
}

type KeycloakConfig struct {
	URL          string `mapstructure:"url"`
	Realm        string `mapstructure:"realm"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type AggregationConfig struct {
	Window time.Duration `mapstructure:"window"`
}

type MonitoringConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	AuthModeJWT      = "jwt"
	AuthModeKeycloak = "keycloak"
)

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	return LoadWith(viper.GetViper())
}

// LoadWith reads the configuration through v, which may carry bound CLI flags.
func LoadWith(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("AIRSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Load config file if exists
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 7325)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("server.request_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.driver", DriverPostgres)
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "airsense")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.dbname", "airsense")
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.sqlite.path", "./data/airsense.db")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.device_ttl", "5m")

	// Auth defaults
	v.SetDefault("auth.mode", AuthModeJWT)
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.keycloak.url", "")
	v.SetDefault("auth.keycloak.realm", "")
	v.SetDefault("auth.keycloak.client_id", "")
	v.SetDefault("auth.keycloak.client_secret", "")

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.rps", 10)
	v.SetDefault("ratelimit.burst", 20)

	// Aggregation defaults
	v.SetDefault("aggregation.window", "24h")

	// Monitoring defaults
	v.SetDefault("monitoring.log_level", "info")
}

func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Postgres.Host == "" {
			return fmt.Errorf("postgres host is required")
		}
	case DriverSQLite:
		if config.Database.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	switch config.Auth.Mode {
	case AuthModeJWT:
		if config.Auth.Secret == "" {
			return fmt.Errorf("auth secret is required")
		}
	case AuthModeKeycloak:
		if config.Auth.Keycloak.URL == "" {
			return fmt.Errorf("keycloak URL is required")
		}
	default:
		return fmt.Errorf("unsupported auth mode %q", config.Auth.Mode)
	}

	if config.Aggregation.Window <= 0 {
		return fmt.Errorf("aggregation window must be positive")
	}
	if config.RateLimit.Enabled && (config.RateLimit.RPS <= 0 || config.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}
	return nil
}
