package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/PicklePlay-BookingService/internal/domain"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Slots    SlotsConfig    `toml:"slots"`
	Booking  BookingConfig  `toml:"booking"`
	Razorpay RazorpayConfig `toml:"razorpay"`
	Email    EmailConfig    `toml:"email"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN собирает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SlotsConfig настройки инвентаря слотов
type SlotsConfig struct {
	Price           float64 `toml:"price"`             // цена часа, INR
	HorizonDays     int     `toml:"horizon_days"`      // скользящий горизонт генерации
	LeadTimeMinutes int     `toml:"lead_time_minutes"` // буфер до начала слота
}

// BookingConfig настройки жизненного цикла бронирований
type BookingConfig struct {
	PendingTTLMinutes    int `toml:"pending_ttl_minutes"`    // срок жизни неоплаченного online-бронирования
	SweepIntervalSeconds int `toml:"sweep_interval_seconds"` // период очистки просроченных
}

// RazorpayConfig настройки платёжного шлюза
type RazorpayConfig struct {
	BaseURL   string `toml:"base_url"`
	KeyID     string `toml:"key_id"`
	KeySecret string `toml:"key_secret"`
	Timeout   int    `toml:"timeout"` // seconds
}

// EmailConfig настройки отправки подтверждений
type EmailConfig struct {
	Enabled    bool   `toml:"enabled"`
	BaseURL    string `toml:"base_url"`
	ServiceID  string `toml:"service_id"`
	TemplateID string `toml:"template_id"`
	UserID     string `toml:"user_id"`
	Timeout    int    `toml:"timeout"` // seconds
}

// AdminConfig настройки админ-доступа
type AdminConfig struct {
	Token string `toml:"token"` // shared secret, X-Admin-Token
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "pickleplay-booking",
		},
		Slots: SlotsConfig{
			Price:           domain.DefaultSlotPrice,
			HorizonDays:     domain.DefaultHorizonDays,
			LeadTimeMinutes: domain.DefaultLeadTimeMinutes,
		},
		Booking: BookingConfig{
			PendingTTLMinutes:    domain.DefaultPendingTTLMinutes,
			SweepIntervalSeconds: 60,
		},
		Razorpay: RazorpayConfig{
			BaseURL: "https://api.razorpay.com",
			Timeout: 10,
		},
		Email: EmailConfig{
			BaseURL: "https://api.emailjs.com",
			Timeout: 10,
		},
	}
}

func (c *Config) validate() error {
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("config: database user and dbname are required")
	}
	if c.Admin.Token == "" {
		return fmt.Errorf("config: admin token is required")
	}
	if c.Slots.Price <= 0 {
		return fmt.Errorf("config: slot price must be positive")
	}
	if c.Slots.HorizonDays < domain.MinGenerationDays || c.Slots.HorizonDays > domain.MaxGenerationDays {
		return fmt.Errorf("config: horizon_days must be in [%d, %d]", domain.MinGenerationDays, domain.MaxGenerationDays)
	}
	if c.Slots.LeadTimeMinutes < 0 {
		return fmt.Errorf("config: lead_time_minutes must not be negative")
	}
	if c.Booking.PendingTTLMinutes <= 0 {
		return fmt.Errorf("config: pending_ttl_minutes must be positive")
	}
	return nil
}
