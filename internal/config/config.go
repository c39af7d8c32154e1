package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig ошибка чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server" validate:"required"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs" validate:"required"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Storage  StorageConfig  `toml:"storage" validate:"required"`
	Redis    RedisConfig    `toml:"redis"`
	Calendar CalendarConfig `toml:"calendar"`
	Payment  PaymentConfig  `toml:"payment"`
	Booking  BookingConfig  `toml:"booking" validate:"required"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" validate:"required,min=1,max=65535"`
	ReadTimeout     int `toml:"read_timeout" validate:"gt=0"`
	WriteTimeout    int `toml:"write_timeout" validate:"gt=0"`
	IdleTimeout     int `toml:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout int `toml:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port" validate:"omitempty,min=1,max=65535"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxOpenConns    int    `toml:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int    `toml:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" validate:"min=0"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" validate:"required,oneof=debug info warn error"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path" validate:"required_if=Enabled true"`
	ServiceName string `toml:"service_name" validate:"required_if=Enabled true"`
}

// StorageConfig выбор хранилища: postgres или memory
type StorageConfig struct {
	Driver string `toml:"driver" validate:"required,oneof=postgres memory"`
}

// RedisConfig кэш занятости из внешнего календаря
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr" validate:"required_if=Enabled true"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"min=0"`
	TTL      int    `toml:"ttl" validate:"min=0"` // секунды
}

// CalendarConfig клиент внешнего календаря
type CalendarConfig struct {
	Enabled     bool   `toml:"enabled"`
	URL         string `toml:"url" validate:"required_if=Enabled true"`
	AccessToken string `toml:"access_token"`
	Timeout     int    `toml:"timeout" validate:"min=0"`
}

// PaymentConfig клиент платёжного провайдера.
// Если провайдер выключен, оформление принимает ручной ввод карты.
type PaymentConfig struct {
	Enabled       bool   `toml:"enabled"`
	URL           string `toml:"url" validate:"required_if=Enabled true"`
	SecretKey     string `toml:"secret_key"`
	CallbackToken string `toml:"callback_token"` // сверяется с заголовком X-Callback-Token
	Timeout       int    `toml:"timeout" validate:"min=0"`
}

// BookingConfig параметры бронирования
type BookingConfig struct {
	Timezone       string `toml:"timezone" validate:"required"`
	Currency       string `toml:"currency" validate:"required,len=3"`
	ExpiryInterval int    `toml:"expiry_interval" validate:"min=0"` // секунды, 0 отключает планировщик
}

// Location таймзона, в которой считается "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Load читает TOML-файл, подмешивает переменные окружения (в том числе из .env) и валидирует результат
func Load(path string) (*Config, error) {
	// .env необязателен, но если он есть, то должен разбираться
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrReadConfig, err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	applyEnv(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет конфигурацию по тегам validate
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Storage.Driver == "postgres" && (cfg.Database.Host == "" || cfg.Database.DBName == "") {
		return fmt.Errorf("%w: database host and dbname are required for postgres storage", ErrInvalidConfig)
	}
	if _, err := cfg.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Storage: StorageConfig{Driver: "postgres"},
		Redis:   RedisConfig{TTL: 300},
		Calendar: CalendarConfig{
			Timeout: 5,
		},
		Payment: PaymentConfig{
			Timeout: 10,
		},
		Booking: BookingConfig{
			Timezone:       "UTC",
			Currency:       "USD",
			ExpiryInterval: 3600,
		},
	}
}

// applyEnv переопределяет секреты и адреса из переменных окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Storage.Driver, "STORAGE_DRIVER")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Calendar.AccessToken, "CALENDAR_ACCESS_TOKEN")
	setString(&cfg.Payment.SecretKey, "PAYMENT_SECRET_KEY")
	setString(&cfg.Payment.CallbackToken, "PAYMENT_CALLBACK_TOKEN")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
	setInt(&cfg.Server.HTTPPort, "HTTP_PORT")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
