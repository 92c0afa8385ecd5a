package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix префикс переменных окружения: JOBFAIR_DATABASE__HOST -> database.host
	EnvPrefix = "JOBFAIR_"

	envSectionDelimiter = "__"
)

var (
	// ErrReadConfig возвращается, когда не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrEnvOverride возвращается, когда не удалось применить переменные окружения
	ErrEnvOverride = errors.New("config: failed to apply environment overrides")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server" koanf:"server"`
	Database        DatabaseConfig        `toml:"database" koanf:"database"`
	Logs            LogsConfig            `toml:"logs" koanf:"logs"`
	Metrics         MetricsConfig         `toml:"metrics" koanf:"metrics"`
	EventService    ServiceClientConfig   `toml:"event_service" koanf:"event_service"`
	MeetingProvider MeetingProviderConfig `toml:"meeting_provider" koanf:"meeting_provider"`
	Notifier        NotifierConfig        `toml:"notifier" koanf:"notifier"`
	Booking         BookingConfig         `toml:"booking" koanf:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" koanf:"http_port"`
	ReadTimeout     int `toml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout" koanf:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout" koanf:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host" koanf:"host"`
	Port            int    `toml:"port" koanf:"port"`
	User            string `toml:"user" koanf:"user"`
	Password        string `toml:"password" koanf:"password"`
	DBName          string `toml:"dbname" koanf:"dbname"`
	SSLMode         string `toml:"sslmode" koanf:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns" koanf:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns" koanf:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" koanf:"conn_max_lifetime"` // секунды
	TxIsolation     string `toml:"tx_isolation" koanf:"tx_isolation"`           // read_committed | serializable
	TxMaxAttempts   int    `toml:"tx_max_attempts" koanf:"tx_max_attempts"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" koanf:"level"`
	File  string `toml:"file" koanf:"file"` // пусто - только stdout
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" koanf:"enabled"`
	Path        string `toml:"path" koanf:"path"`
	ServiceName string `toml:"service_name" koanf:"service_name"`
}

// ServiceClientConfig настройки HTTP клиента внешнего сервиса
type ServiceClientConfig struct {
	URL     string `toml:"url" koanf:"url"`
	Timeout int    `toml:"timeout" koanf:"timeout"` // секунды
}

// MeetingProviderConfig настройки провайдера видеовстреч
type MeetingProviderConfig struct {
	Enabled bool   `toml:"enabled" koanf:"enabled"`
	URL     string `toml:"url" koanf:"url"`
	Timeout int    `toml:"timeout" koanf:"timeout"` // секунды
	APIKey  string `toml:"api_key" koanf:"api_key"`
}

// NotifierConfig настройки отправки уведомлений
type NotifierConfig struct {
	Backends      []string `toml:"backends" koanf:"backends"` // redis | nats | log
	ChannelPrefix string   `toml:"channel_prefix" koanf:"channel_prefix"`
	Timeout       int      `toml:"timeout" koanf:"timeout"` // секунды на одну отправку
	RedisAddr     string   `toml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string   `toml:"redis_password" koanf:"redis_password"`
	RedisDB       int      `toml:"redis_db" koanf:"redis_db"`
	NATSURL       string   `toml:"nats_url" koanf:"nats_url"`
}

// BookingConfig бизнес-правила слотов
type BookingConfig struct {
	RequireEventWindow bool `toml:"require_event_window" koanf:"require_event_window"`
	MaxSlotsPerRequest int  `toml:"max_slots_per_request" koanf:"max_slots_per_request"`
	MinSlotMinutes     int  `toml:"min_slot_minutes" koanf:"min_slot_minutes"`
	MaxSlotMinutes     int  `toml:"max_slot_minutes" koanf:"max_slot_minutes"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "jobfair_interviews",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			TxIsolation:     "read_committed",
			TxMaxAttempts:   3,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "jobfair_interviews",
		},
		EventService: ServiceClientConfig{
			URL:     "http://localhost:8081",
			Timeout: 5,
		},
		MeetingProvider: MeetingProviderConfig{
			Enabled: true,
			URL:     "http://localhost:8082",
			Timeout: 10,
		},
		Notifier: NotifierConfig{
			Backends:      []string{"log"},
			ChannelPrefix: "jobfair",
			Timeout:       3,
		},
		Booking: BookingConfig{
			RequireEventWindow: true,
			MaxSlotsPerRequest: 50,
			MinSlotMinutes:     10,
			MaxSlotMinutes:     240,
		},
	}
}

// Load загружает конфигурацию
// Порядок (от низшего приоритета к высшему): значения по умолчанию, TOML файл, .env, переменные окружения JOBFAIR_*
// Отсутствующий файл не считается ошибкой, если path пустой
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
		}
	}

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: .env: %v", ErrEnvOverride, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv накладывает переменные окружения поверх уже загруженных значений
func applyEnv(cfg *Config) error {
	k := koanf.New(".")

	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), envSectionDelimiter, ".")
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}

	if len(k.Keys()) == 0 {
		return nil
	}

	// Списки в переменных окружения задаются через запятую
	if k.Exists("notifier.backends") {
		backends := strings.Split(k.String("notifier.backends"), ",")
		for i := range backends {
			backends[i] = strings.TrimSpace(backends[i])
		}
		cfg.Notifier.Backends = backends
		k.Delete("notifier.backends")
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("%w: %v", ErrEnvOverride, err)
	}
	return nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, "server.http_port must be in 1..65535")
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	switch c.Database.TxIsolation {
	case "read_committed", "serializable":
	default:
		problems = append(problems, "database.tx_isolation must be read_committed or serializable")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	if c.EventService.URL == "" {
		problems = append(problems, "event_service.url is required")
	}
	if c.MeetingProvider.Enabled && c.MeetingProvider.URL == "" {
		problems = append(problems, "meeting_provider.url is required when enabled")
	}
	for _, backend := range c.Notifier.Backends {
		switch backend {
		case "log":
		case "redis":
			if c.Notifier.RedisAddr == "" {
				problems = append(problems, "notifier.redis_addr is required for redis backend")
			}
		case "nats":
			if c.Notifier.NATSURL == "" {
				problems = append(problems, "notifier.nats_url is required for nats backend")
			}
		default:
			problems = append(problems, fmt.Sprintf("notifier.backends: unknown backend %q", backend))
		}
	}
	if c.Booking.MinSlotMinutes <= 0 {
		problems = append(problems, "booking.min_slot_minutes must be positive")
	}
	if c.Booking.MaxSlotMinutes < c.Booking.MinSlotMinutes {
		problems = append(problems, "booking.max_slot_minutes must not be less than min_slot_minutes")
	}
	if c.Booking.MaxSlotsPerRequest <= 0 {
		problems = append(problems, "booking.max_slots_per_request must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
