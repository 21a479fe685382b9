package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// PathEnv переменная окружения с путем к конфигу
const PathEnv = "CONFIG_PATH"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var (
	// ErrReadConfig не удалось прочитать или распарсить файл
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig недопустимые значения
	ErrInvalidConfig = errors.New("config: invalid config")
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Storage   StorageConfig   `toml:"storage"`
	Session   SessionConfig   `toml:"session"`
	Redis     RedisConfig     `toml:"redis"`
	RabbitMQ  RabbitMQConfig  `toml:"rabbitmq"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Payment   PaymentConfig   `toml:"payment"`
	Booking   BookingConfig   `toml:"booking"`
	Seed      SeedConfig      `toml:"seed"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// StorageConfig хранилище каталога слотов и броней: memory | postgres
type StorageConfig struct {
	Driver string `toml:"driver"`
}

// SessionConfig хранилище сессий бронирования: memory | redis
type SessionConfig struct {
	Driver     string `toml:"driver"`
	TTLMinutes int    `toml:"ttl_minutes"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type RabbitMQConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Queue   string `toml:"queue"`
}

type RateLimitConfig struct {
	Enabled        bool    `toml:"enabled"`
	RPS            float64 `toml:"rps"`
	Burst          int     `toml:"burst"`
	IdleTTLSeconds int     `toml:"idle_ttl_seconds"`
}

// PaymentConfig симулятор платежного шлюза
type PaymentConfig struct {
	LatencyMillis int `toml:"latency_ms"`
}

func (p PaymentConfig) Latency() time.Duration {
	return time.Duration(p.LatencyMillis) * time.Millisecond
}

type BookingConfig struct {
	WindowDays       int `toml:"window_days"`
	MinNoticeMinutes int `toml:"min_notice_minutes"`
}

// SeedConfig слоты, создаваемые при старте на все окно бронирования
type SeedConfig struct {
	Enabled     bool     `toml:"enabled"`
	ResourceIDs []string `toml:"resource_ids"`
	OpenTime    string   `toml:"open_time"`
	CloseTime   string   `toml:"close_time"`
	Price       int64    `toml:"price"`
}

// Load читает конфиг из path (или из CONFIG_PATH, если задан), применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	if envPath := strings.TrimSpace(os.Getenv(PathEnv)); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "playground_booking"
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Session.Driver == "" {
		c.Session.Driver = DriverMemory
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 30
	}

	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.RabbitMQ.Queue == "" {
		c.RabbitMQ.Queue = "reservations.confirmed"
	}

	if c.RateLimit.RPS == 0 {
		c.RateLimit.RPS = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
	if c.RateLimit.IdleTTLSeconds == 0 {
		c.RateLimit.IdleTTLSeconds = 600
	}

	if c.Booking.WindowDays == 0 {
		c.Booking.WindowDays = domain.DefaultBookingWindowDays
	}

	if c.Seed.OpenTime == "" {
		c.Seed.OpenTime = domain.DefaultOpenTime
	}
	if c.Seed.CloseTime == "" {
		c.Seed.CloseTime = domain.DefaultCloseTime
	}
	if c.Seed.Price == 0 {
		c.Seed.Price = domain.DefaultSlotPrice
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	switch c.Session.Driver {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("%w: unknown session.driver %q", ErrInvalidConfig, c.Session.Driver)
	}
	if c.Session.TTLMinutes < 0 {
		return fmt.Errorf("%w: session.ttl_minutes must be positive", ErrInvalidConfig)
	}

	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: ratelimit.rps and ratelimit.burst must not be negative", ErrInvalidConfig)
	}

	if c.Payment.LatencyMillis < 0 {
		return fmt.Errorf("%w: payment.latency_ms must not be negative", ErrInvalidConfig)
	}

	if c.Booking.WindowDays < 1 {
		return fmt.Errorf("%w: booking.window_days must be at least 1", ErrInvalidConfig)
	}
	if c.Booking.MinNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.min_notice_minutes must not be negative", ErrInvalidConfig)
	}

	if c.Seed.Enabled && len(c.Seed.ResourceIDs) == 0 {
		return fmt.Errorf("%w: seed.resource_ids is required when seeding is enabled", ErrInvalidConfig)
	}

	return nil
}
