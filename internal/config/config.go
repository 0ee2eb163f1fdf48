package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Calendar  CalendarConfig  `yaml:"calendar"`
	Storage   StorageConfig   `yaml:"storage"`
	Reminder  ReminderConfig  `yaml:"reminder"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel maps the configured level name, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type CalendarConfig struct {
	// Timezone is an IANA name. Empty or "Local" uses the host zone.
	Timezone string `yaml:"timezone"`
}

type StorageConfig struct {
	Backend  string         `yaml:"backend"`
	CacheMB  int            `yaml:"cache_mb"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type PostgresConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Name       string `yaml:"name"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	SSLMode    string `yaml:"sslmode"`
	Migrations string `yaml:"migrations"`
}

// DSN returns a PostgreSQL connection string.
func (d PostgresConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

type ReminderConfig struct {
	Enabled bool   `yaml:"enabled"`
	Time    string `yaml:"time"` // HH:MM, local to calendar.timezone
}

// Clock parses Time into hour and minute.
func (r ReminderConfig) Clock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", r.Time)
	if err != nil {
		return 0, 0, fmt.Errorf("reminder.time %q: want HH:MM", r.Time)
	}
	return t.Hour(), t.Minute(), nil
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Host: "127.0.0.1", Port: 8080},
		Log:      LogConfig{Level: "info"},
		Calendar: CalendarConfig{Timezone: "Local"},
		Storage: StorageConfig{
			Backend:  BackendSQLite,
			CacheMB:  8,
			SQLite:   SQLiteConfig{Path: "speedifit.db"},
			Redis:    RedisConfig{Addr: "localhost:6379"},
			Postgres: PostgresConfig{Port: 5432, Migrations: "migrations"},
		},
		Reminder:  ReminderConfig{Time: "09:00"},
		Tailscale: TailscaleConfig{Hostname: "speedifit"},
	}
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix SPEEDIFIT_ and underscore-separated paths:
//
//	SPEEDIFIT_SERVER_HOST, SPEEDIFIT_SERVER_PORT, SPEEDIFIT_AUTH_API_KEY,
//	SPEEDIFIT_LOG_LEVEL, SPEEDIFIT_TIMEZONE,
//	SPEEDIFIT_STORAGE_BACKEND, SPEEDIFIT_SQLITE_PATH,
//	SPEEDIFIT_REDIS_ADDR, SPEEDIFIT_REDIS_PASSWORD, SPEEDIFIT_REDIS_DB,
//	SPEEDIFIT_DB_HOST, SPEEDIFIT_DB_PORT, SPEEDIFIT_DB_NAME,
//	SPEEDIFIT_DB_USER, SPEEDIFIT_DB_PASSWORD, SPEEDIFIT_DB_SSLMODE,
//	SPEEDIFIT_REMINDER_TIME
//
// An empty path skips the file and uses defaults plus the environment.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func envString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	envString("SPEEDIFIT_SERVER_HOST", &cfg.Server.Host)
	envInt("SPEEDIFIT_SERVER_PORT", &cfg.Server.Port)
	envString("SPEEDIFIT_AUTH_API_KEY", &cfg.Auth.APIKey)
	envString("SPEEDIFIT_LOG_LEVEL", &cfg.Log.Level)
	envString("SPEEDIFIT_TIMEZONE", &cfg.Calendar.Timezone)

	envString("SPEEDIFIT_STORAGE_BACKEND", &cfg.Storage.Backend)
	envString("SPEEDIFIT_SQLITE_PATH", &cfg.Storage.SQLite.Path)
	envString("SPEEDIFIT_REDIS_ADDR", &cfg.Storage.Redis.Addr)
	envString("SPEEDIFIT_REDIS_PASSWORD", &cfg.Storage.Redis.Password)
	envInt("SPEEDIFIT_REDIS_DB", &cfg.Storage.Redis.DB)

	envString("SPEEDIFIT_DB_HOST", &cfg.Storage.Postgres.Host)
	envInt("SPEEDIFIT_DB_PORT", &cfg.Storage.Postgres.Port)
	envString("SPEEDIFIT_DB_NAME", &cfg.Storage.Postgres.Name)
	envString("SPEEDIFIT_DB_USER", &cfg.Storage.Postgres.User)
	envString("SPEEDIFIT_DB_PASSWORD", &cfg.Storage.Postgres.Password)
	envString("SPEEDIFIT_DB_SSLMODE", &cfg.Storage.Postgres.SSLMode)

	envString("SPEEDIFIT_REMINDER_TIME", &cfg.Reminder.Time)
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Calendar.Timezone != "" && c.Calendar.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
			return fmt.Errorf("calendar.timezone: %w", err)
		}
	}

	switch c.Storage.Backend {
	case BackendSQLite:
		if c.Storage.SQLite.Path == "" {
			return fmt.Errorf("storage.sqlite.path is required")
		}
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr is required")
		}
	case BackendPostgres:
		p := c.Storage.Postgres
		if p.Host == "" {
			return fmt.Errorf("storage.postgres.host is required")
		}
		if p.Port == 0 {
			return fmt.Errorf("storage.postgres.port is required")
		}
		if p.Name == "" {
			return fmt.Errorf("storage.postgres.name is required")
		}
		if p.User == "" {
			return fmt.Errorf("storage.postgres.user is required")
		}
	default:
		return fmt.Errorf("storage.backend %q: want sqlite, redis or postgres", c.Storage.Backend)
	}
	if c.Storage.CacheMB < 0 {
		return fmt.Errorf("storage.cache_mb must not be negative")
	}

	if c.Reminder.Enabled {
		if _, _, err := c.Reminder.Clock(); err != nil {
			return err
		}
	}
	return nil
}
