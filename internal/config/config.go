package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort             = "5000"
	defaultDatabaseURL      = "file:curtaincrm.db"
	defaultJWTSecret        = "change-me-jwt-secret"
	defaultResetTokenPepper = "change-me-reset-pepper"
	defaultJWTTTL           = "24h"
	defaultResetTokenTTL    = "1h"
	defaultConnMaxLifetime  = "30m"
	defaultShutdownTimeout  = "10s"
	defaultRateLimitWindow  = "15m"
	defaultFrontendURL      = "http://localhost:3000"
	defaultEmailFrom        = "no-reply@curtaincrm.local"
	defaultBcryptCost       = 10
	defaultMaxOpenConns     = 10
	defaultMaxIdleConns     = 5
	defaultRateLimitPerWin  = 100
	defaultSMTPPort         = 587
	defaultSMTPTimeout      = "10s"
)

type Config struct {
	AppEnv             string
	Port               string
	FrontendURL        string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration

	Database  DatabaseConfig
	Auth      AuthConfig
	Log       LogConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret        string
	JWTTTL           time.Duration
	ResetTokenTTL    time.Duration
	ResetTokenPepper string
	BcryptCost       int
}

type LogConfig struct {
	Level  string
	Format string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Timeout  time.Duration
}

func (c SMTPConfig) Enabled() bool { return strings.TrimSpace(c.Host) != "" }

type RateLimitConfig struct {
	RedisAddr     string
	RedisPassword string
	PerWindow     int
	Window        time.Duration
}

func (c RateLimitConfig) Enabled() bool { return strings.TrimSpace(c.RedisAddr) != "" }

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// fileConfig is the optional YAML file named by CONFIG_FILE. Environment
// variables override every key.
type fileConfig struct {
	AppEnv             string `yaml:"appEnv"`
	Port               string `yaml:"port"`
	DatabaseURL        string `yaml:"databaseURL"`
	DBMaxOpenConns     int    `yaml:"dbMaxOpenConns"`
	DBMaxIdleConns     int    `yaml:"dbMaxIdleConns"`
	DBConnMaxLifetime  string `yaml:"dbConnMaxLifetime"`
	JWTSecret          string `yaml:"jwtSecret"`
	JWTTTL             string `yaml:"jwtTTL"`
	ResetTokenTTL      string `yaml:"resetTokenTTL"`
	ResetTokenPepper   string `yaml:"resetTokenPepper"`
	BcryptCost         int    `yaml:"bcryptCost"`
	FrontendURL        string `yaml:"frontendURL"`
	CORSAllowedOrigins string `yaml:"corsAllowedOrigins"`
	LogLevel           string `yaml:"logLevel"`
	LogFormat          string `yaml:"logFormat"`
	SMTPHost           string `yaml:"smtpHost"`
	SMTPPort           int    `yaml:"smtpPort"`
	SMTPUser           string `yaml:"smtpUser"`
	SMTPPassword       string `yaml:"smtpPassword"`
	SMTPTimeout        string `yaml:"smtpTimeout"`
	EmailFrom          string `yaml:"emailFrom"`
	RateLimitRedisAddr string `yaml:"rateLimitRedisAddr"`
	RateLimitRedisPass string `yaml:"rateLimitRedisPassword"`
	RateLimitPerWindow int    `yaml:"rateLimitPerWindow"`
	RateLimitWindow    string `yaml:"rateLimitWindow"`
	ShutdownTimeout    string `yaml:"shutdownTimeout"`
}

// Load reads .env (when present), the optional YAML file and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not load .env file", "error", err)
	}

	var file fileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	return build(file)
}

func build(file fileConfig) (*Config, error) {
	cfg := &Config{
		AppEnv:      strings.ToLower(pick("APP_ENV", file.AppEnv, "dev")),
		Port:        pick("PORT", file.Port, defaultPort),
		FrontendURL: strings.TrimRight(pick("FRONTEND_URL", file.FrontendURL, defaultFrontendURL), "/"),
		Database: DatabaseConfig{
			URL: pick("DATABASE_URL", file.DatabaseURL, defaultDatabaseURL),
		},
		Auth: AuthConfig{
			JWTSecret:        pick("JWT_SECRET", file.JWTSecret, defaultJWTSecret),
			ResetTokenPepper: pick("RESET_TOKEN_PEPPER", file.ResetTokenPepper, defaultResetTokenPepper),
		},
		Log: LogConfig{
			Level:  strings.ToLower(pick("LOG_LEVEL", file.LogLevel, "info")),
			Format: strings.ToLower(pick("LOG_FORMAT", file.LogFormat, "json")),
		},
		SMTP: SMTPConfig{
			Host:     pick("SMTP_HOST", file.SMTPHost, ""),
			User:     pick("SMTP_USER", file.SMTPUser, ""),
			Password: pick("SMTP_PASSWORD", file.SMTPPassword, ""),
			From:     pick("EMAIL_FROM", file.EmailFrom, defaultEmailFrom),
		},
		RateLimit: RateLimitConfig{
			RedisAddr:     pick("RATE_LIMIT_REDIS_ADDR", file.RateLimitRedisAddr, ""),
			RedisPassword: pick("RATE_LIMIT_REDIS_PASSWORD", file.RateLimitRedisPass, ""),
		},
		Seed: SeedConfig{
			AdminEmail:    pick("SEED_ADMIN_EMAIL", "", ""),
			AdminPassword: pick("SEED_ADMIN_PASSWORD", "", ""),
		},
	}
	cfg.CORSAllowedOrigins = splitList(pick("CORS_ALLOWED_ORIGINS", file.CORSAllowedOrigins, cfg.FrontendURL))

	var err error
	if cfg.Database.MaxOpenConns, err = pickInt("DB_MAX_OPEN_CONNS", file.DBMaxOpenConns, defaultMaxOpenConns); err != nil {
		return nil, err
	}
	if cfg.Database.MaxIdleConns, err = pickInt("DB_MAX_IDLE_CONNS", file.DBMaxIdleConns, defaultMaxIdleConns); err != nil {
		return nil, err
	}
	if cfg.Database.ConnMaxLifetime, err = pickDuration("DB_CONN_MAX_LIFETIME", file.DBConnMaxLifetime, defaultConnMaxLifetime); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTTTL, err = pickDuration("JWT_TTL", file.JWTTTL, defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.Auth.ResetTokenTTL, err = pickDuration("RESET_TOKEN_TTL", file.ResetTokenTTL, defaultResetTokenTTL); err != nil {
		return nil, err
	}
	if cfg.Auth.BcryptCost, err = pickInt("BCRYPT_COST", file.BcryptCost, defaultBcryptCost); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = pickInt("SMTP_PORT", file.SMTPPort, defaultSMTPPort); err != nil {
		return nil, err
	}
	if cfg.SMTP.Timeout, err = pickDuration("SMTP_TIMEOUT", file.SMTPTimeout, defaultSMTPTimeout); err != nil {
		return nil, err
	}
	if cfg.RateLimit.PerWindow, err = pickInt("RATE_LIMIT_PER_WINDOW", file.RateLimitPerWindow, defaultRateLimitPerWin); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = pickDuration("RATE_LIMIT_WINDOW", file.RateLimitWindow, defaultRateLimitWindow); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = pickDuration("SHUTDOWN_TIMEOUT", file.ShutdownTimeout, defaultShutdownTimeout); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
		slog.Warn("JWT_SECRET is not set, using the development default")
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return errors.New("PORT must not be empty")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if cfg.Auth.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.Auth.ResetTokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be > 0")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.RateLimit.Enabled() && (cfg.RateLimit.PerWindow <= 0 || cfg.RateLimit.Window <= 0) {
		return fmt.Errorf("RATE_LIMIT_PER_WINDOW and RATE_LIMIT_WINDOW must be > 0 when RATE_LIMIT_REDIS_ADDR is set")
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be one of: json, text")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.Auth.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.Auth.ResetTokenPepper, defaultResetTokenPepper) {
			return fmt.Errorf("in prod/release RESET_TOKEN_PEPPER must be set and not default")
		}
		if len(cfg.Auth.JWTSecret) < 32 {
			return fmt.Errorf("in prod/release JWT_SECRET must be at least 32 characters")
		}
	}

	return nil
}

func IsProdLike(env string) bool { return isProdLike(env) }

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

// pick returns the environment value, then the file value, then fallback.
func pick(name, fileValue, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	if v := strings.TrimSpace(fileValue); v != "" {
		return v
	}
	return fallback
}

func pickInt(name string, fileValue, fallback int) (int, error) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", name, v, err)
		}
		return n, nil
	}
	if fileValue != 0 {
		return fileValue, nil
	}
	return fallback, nil
}

func pickDuration(name, fileValue, fallback string) (time.Duration, error) {
	value := pick(name, fileValue, fallback)
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
