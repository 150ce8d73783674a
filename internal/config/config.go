package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/khan47650/central-kitchen/internal/domain"
	"github.com/khan47650/central-kitchen/pkg/zonetime"
)

// Драйверы хранилища
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	Redis      RedisConfig      `toml:"redis"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Cache      CacheConfig      `toml:"cache"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig хранилище слотов и магазинов
type DatabaseConfig struct {
	Driver          string `toml:"driver"` // postgres | memory
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
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - только stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig правила расписания кухни
type SchedulingConfig struct {
	TimeZone        string `toml:"time_zone"`
	MaxBookingHours int    `toml:"max_booking_hours"`
	EditLockHours   int    `toml:"edit_lock_hours"`
}

// EditLock время до открытия, с которого строка расписания блокируется
func (s SchedulingConfig) EditLock() time.Duration {
	return time.Duration(s.EditLockHours) * time.Hour
}

// RedisConfig поток подтверждений бронирований. Пустой адрес отключает публикацию.
type RedisConfig struct {
	Address   string `toml:"address"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	Stream    string `toml:"stream"`
	StreamMax int64  `toml:"stream_max_len"`
}

// Enabled настроен ли Redis
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type RateLimitConfig struct {
	RPS   float64 `toml:"rps"` // 0 - без ограничения
	Burst int     `toml:"burst"`
}

type CacheConfig struct {
	ShopTimingsTTLSeconds int `toml:"shop_timings_ttl_seconds"` // 0 - без кэша
}

// ShopTimingsTTL время жизни записи кэша расписаний
func (c CacheConfig) ShopTimingsTTL() time.Duration {
	return time.Duration(c.ShopTimingsTTLSeconds) * time.Second
}

// Load читает .env (если есть), TOML файл и переменные окружения поверх него
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "central-kitchen",
		},
		Scheduling: SchedulingConfig{
			TimeZone:        zonetime.DefaultZone,
			MaxBookingHours: domain.DefaultMaxBookingHours,
			EditLockHours:   domain.DefaultEditLockHours,
		},
		Redis: RedisConfig{
			Stream:    "kitchen:bookings",
			StreamMax: 10000,
		},
		RateLimit: RateLimitConfig{RPS: 20, Burst: 40},
		Cache:     CacheConfig{ShopTimingsTTLSeconds: 30},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Redis.Address, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	if err := setInt(&c.Server.HTTPPort, "HTTP_PORT"); err != nil {
		return err
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("env %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate проверяет значения после применения окружения
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range: %d", c.Server.HTTPPort)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverPostgres, DriverMemory, c.Database.Driver)
	}
	if c.Scheduling.MaxBookingHours < domain.MinDurationHours {
		return fmt.Errorf("scheduling.max_booking_hours must be at least %d", domain.MinDurationHours)
	}
	if c.Scheduling.EditLockHours < 0 {
		return errors.New("scheduling.edit_lock_hours cannot be negative")
	}
	if _, err := zonetime.Load(c.Scheduling.TimeZone); err != nil {
		return err
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values cannot be negative")
	}
	return nil
}
