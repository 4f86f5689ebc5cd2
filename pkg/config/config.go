package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Tracing   TracingConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Renderer  RendererConfig
	Inventory InventoryConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name     string
	Env      string
	HTTPPort string
	LogLevel string
}

// IsDevelopment reports whether the service runs in development mode
func (a AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

type DatabaseConfig struct {
	Driver          string // postgres or sqlite
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled   bool
	Addr      string
	Password  string
	DB        int
	ReportTTL time.Duration
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	GroupID string
}

type TracingConfig struct {
	Enabled        bool
	JaegerEndpoint string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type StorageConfig struct {
	Enabled      bool
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

type RendererConfig struct {
	ChromeURL       string
	Timeout         time.Duration
	BreakerFailures int
	BreakerCooldown time.Duration
}

type InventoryConfig struct {
	MaxReserveRetries int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pos-backoffice")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "posdb")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.report_ttl", 5*time.Minute)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.group_id", "pos-backoffice")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")

	v.SetDefault("auth.jwt_secret", "change-me")
	v.SetDefault("auth.issuer", "pos-backoffice")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.endpoint", "http://localhost:9000")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "pos-documents")
	v.SetDefault("storage.use_path_style", true)

	v.SetDefault("renderer.timeout", 30*time.Second)
	v.SetDefault("renderer.breaker_failures", 5)
	v.SetDefault("renderer.breaker_cooldown", 30*time.Second)

	v.SetDefault("inventory.max_reserve_retries", 5)

	v.SetDefault("ratelimit.requests", 100)
	v.SetDefault("ratelimit.window", time.Minute)
}

// Load reads config.yaml (optional) and POS_* environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pos")

	return load(v)
}

// LoadFile reads configuration from an explicit file path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name:     v.GetString("app.name"),
			Env:      v.GetString("app.env"),
			HTTPPort: v.GetString("app.http_port"),
			LogLevel: v.GetString("app.log_level"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		Redis: RedisConfig{
			Enabled:   v.GetBool("redis.enabled"),
			Addr:      v.GetString("redis.addr"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			ReportTTL: v.GetDuration("redis.report_ttl"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("kafka.enabled"),
			Brokers: v.GetStringSlice("kafka.brokers"),
			GroupID: v.GetString("kafka.group_id"),
		},
		Tracing: TracingConfig{
			Enabled:        v.GetBool("tracing.enabled"),
			JaegerEndpoint: v.GetString("tracing.jaeger_endpoint"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
		},
		Storage: StorageConfig{
			Enabled:      v.GetBool("storage.enabled"),
			Endpoint:     v.GetString("storage.endpoint"),
			Region:       v.GetString("storage.region"),
			Bucket:       v.GetString("storage.bucket"),
			AccessKey:    v.GetString("storage.access_key"),
			SecretKey:    v.GetString("storage.secret_key"),
			UsePathStyle: v.GetBool("storage.use_path_style"),
		},
		Renderer: RendererConfig{
			ChromeURL:       v.GetString("renderer.chrome_url"),
			Timeout:         v.GetDuration("renderer.timeout"),
			BreakerFailures: v.GetInt("renderer.breaker_failures"),
			BreakerCooldown: v.GetDuration("renderer.breaker_cooldown"),
		},
		Inventory: InventoryConfig{
			MaxReserveRetries: v.GetInt("inventory.max_reserve_retries"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("ratelimit.requests"),
			Window:   v.GetDuration("ratelimit.window"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at runtime
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Inventory.MaxReserveRetries < 1 {
		return fmt.Errorf("inventory.max_reserve_retries must be at least 1")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage is enabled")
	}
	return nil
}
