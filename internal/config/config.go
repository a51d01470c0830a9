package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // часовые пояса в образах без zoneinfo

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса (config.toml)
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Plans     PlansConfig     `toml:"plans"`
	Payments  PaymentsConfig  `toml:"payments"`
	Webhook   WebhookConfig   `toml:"webhook"`
	Sessions  SessionsConfig  `toml:"sessions"`
	Admin     AdminConfig     `toml:"admin"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто = stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	Timezone             string `toml:"timezone"`
	PendingWindowMinutes int    `toml:"pending_window_minutes"`
	SweepIntervalSeconds int    `toml:"sweep_interval_seconds"`
}

// Location загружает часовой пояс календаря
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

func (b BookingConfig) PendingWindow() time.Duration {
	return time.Duration(b.PendingWindowMinutes) * time.Minute
}

func (b BookingConfig) SweepInterval() time.Duration {
	return time.Duration(b.SweepIntervalSeconds) * time.Second
}

type PlansConfig struct {
	CommonMonthlyFreeCuts int     `toml:"common_monthly_free_cuts"`
	CommonMonthlyPrice    float64 `toml:"common_monthly_price"`
	PlusMonthlyPrice      float64 `toml:"plus_monthly_price"`
}

type PaymentsConfig struct {
	Provider    string            `toml:"provider"` // mock | mercadopago
	PixKey      string            `toml:"pix_key"`  // ключ для mock провайдера, пусто = случайный
	MercadoPago MercadoPagoConfig `toml:"mercadopago"`
}

type MercadoPagoConfig struct {
	BaseURL         string `toml:"base_url"`
	AccessToken     string `toml:"access_token"`
	Timeout         int    `toml:"timeout"` // секунды
	NotificationURL string `toml:"notification_url"`
	PayerEmail      string `toml:"payer_email"`
	WebhookSecret   string `toml:"webhook_secret"`
}

type WebhookConfig struct {
	Token string `toml:"token"` // пусто = проверка отключена
}

type SessionsConfig struct {
	Backend              string      `toml:"backend"` // memory | redis
	TTLMinutes           int         `toml:"ttl_minutes"`
	SweepIntervalSeconds int         `toml:"sweep_interval_seconds"`
	Redis                RedisConfig `toml:"redis"`
}

func (s SessionsConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

func (s SessionsConfig) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalSeconds) * time.Second
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type AdminConfig struct {
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	DisplayName string `toml:"display_name"`
}

type RateLimitConfig struct {
	LoginRPS   float64 `toml:"login_rps"`
	LoginBurst int     `toml:"login_burst"`
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация для локального запуска
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 3000)
	setInt(&c.Server.ReadTimeout, 15)
	setInt(&c.Server.WriteTimeout, 15)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Database.Host, "localhost")
	setInt(&c.Database.Port, 5432)
	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.MaxOpenConns, 25)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "barbershop_booking")

	setString(&c.Booking.Timezone, "America/Sao_Paulo")
	setInt(&c.Booking.PendingWindowMinutes, 20)
	setInt(&c.Booking.SweepIntervalSeconds, 30)

	setInt(&c.Plans.CommonMonthlyFreeCuts, 2)
	setFloat(&c.Plans.CommonMonthlyPrice, 39.90)
	setFloat(&c.Plans.PlusMonthlyPrice, 79.90)

	setString(&c.Payments.Provider, "mock")
	setString(&c.Payments.MercadoPago.BaseURL, "https://api.mercadopago.com")
	setInt(&c.Payments.MercadoPago.Timeout, 10)
	setString(&c.Payments.MercadoPago.PayerEmail, "cliente@evilazio.com.br")

	setString(&c.Sessions.Backend, "memory")
	setInt(&c.Sessions.TTLMinutes, 12*60)
	setInt(&c.Sessions.SweepIntervalSeconds, 60)
	setString(&c.Sessions.Redis.Addr, "localhost:6379")

	setString(&c.Admin.Username, "admin")
	setString(&c.Admin.DisplayName, "Administrador")

	setFloat(&c.RateLimit.LoginRPS, 1)
	setInt(&c.RateLimit.LoginBurst, 5)
}

// Validate проверяет значения, с которыми сервис не может работать
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone=%q: %v", ErrInvalidConfig, c.Booking.Timezone, err)
	}

	if c.Plans.CommonMonthlyFreeCuts < 0 {
		return fmt.Errorf("%w: plans.common_monthly_free_cuts must not be negative", ErrInvalidConfig)
	}

	if c.Plans.CommonMonthlyPrice <= 0 || c.Plans.PlusMonthlyPrice <= 0 {
		return fmt.Errorf("%w: plan prices must be positive", ErrInvalidConfig)
	}

	switch c.Payments.Provider {
	case "mock":
	case "mercadopago":
		if c.Payments.MercadoPago.AccessToken == "" {
			return fmt.Errorf("%w: payments.mercadopago.access_token is required", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown payments.provider %q", ErrInvalidConfig, c.Payments.Provider)
	}

	switch c.Sessions.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("%w: unknown sessions.backend %q", ErrInvalidConfig, c.Sessions.Backend)
	}

	if c.Admin.Password != "" && len(c.Admin.Password) < 6 {
		return fmt.Errorf("%w: admin.password must have at least 6 characters", ErrInvalidConfig)
	}

	if c.RateLimit.LoginRPS <= 0 || c.RateLimit.LoginBurst <= 0 {
		return fmt.Errorf("%w: ratelimit values must be positive", ErrInvalidConfig)
	}

	return nil
}

func setInt(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}

func setFloat(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func setString(v *string, def string) {
	if *v == "" {
		*v = def
	}
}
