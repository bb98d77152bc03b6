package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Portal   PortalConfig   `mapstructure:"portal"`
	QR       QRConfig       `mapstructure:"qr"`
}

type ServerConfig struct {
	Host               string   `mapstructure:"host"`
	Port               int      `mapstructure:"port"`
	Mode               string   `mapstructure:"mode"` // debug, release, test
	MaxBodyBytes       int64    `mapstructure:"max_body_bytes"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// PortalConfig drives the transfer page workflow.
type PortalConfig struct {
	// APIBaseURL is where the QR gallery fetches /api/qr-codes/{userId} from.
	APIBaseURL        string            `mapstructure:"api_base_url"`
	FetchTimeout      time.Duration     `mapstructure:"fetch_timeout"`
	ErrorMessageTTL   time.Duration     `mapstructure:"error_message_ttl"`
	SuccessMessageTTL time.Duration     `mapstructure:"success_message_ttl"`
	MaxSessions       int               `mapstructure:"max_sessions"`
	// SessionTTL bounds how long an opened page lives without being reopened.
	SessionTTL        time.Duration     `mapstructure:"session_ttl"`
	Recipients        []RecipientConfig `mapstructure:"recipients"` // empty = built-in seed list
}

// RecipientConfig is one directory entry supplied through configuration.
type RecipientConfig struct {
	ID            string `mapstructure:"id"`
	Name          string `mapstructure:"name"`
	AccountNumber string `mapstructure:"account_number"` // stored pre-masked
	Bank          string `mapstructure:"bank"`
	Recent        bool   `mapstructure:"recent"`
}

type QRConfig struct {
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PTL_ (payment portal).
// Nested keys use underscore: PTL_DATABASE_HOST, PTL_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_portal")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "payment-portal")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("portal.api_base_url", "http://localhost:8080")
	v.SetDefault("portal.fetch_timeout", "10s")
	v.SetDefault("portal.error_message_ttl", "3s")
	v.SetDefault("portal.success_message_ttl", "5s")
	v.SetDefault("portal.max_sessions", 1024)
	v.SetDefault("portal.session_ttl", "1h")
	v.SetDefault("qr.cache_ttl", "10m")
	v.SetDefault("qr.max_upload_bytes", 5<<20)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PTL_DATABASE_HOST -> database.host
	v.SetEnvPrefix("PTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
