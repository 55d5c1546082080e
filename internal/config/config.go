package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"narrabridge/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Narratheque NarrathequeConfig
	Dispatch    DispatchConfig
	Auth        AuthConfig
	DB          DBConfig
	S3          S3Config
	Email       EmailConfig
	Log         LogConfig
	CORS        CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxBodyMB    int64         `mapstructure:"max_body_mb"`
}

// NarrathequeConfig holds the document service endpoint and stored credential.
type NarrathequeConfig struct {
	Region       string `mapstructure:"region"`
	UseCustomURL bool   `mapstructure:"use_custom_url"`
	CustomURL    string `mapstructure:"custom_url"`
	Token        string `mapstructure:"token"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// PredefinedURL returns the base URL of the configured region.
func (n *NarrathequeConfig) PredefinedURL() string {
	return domain.RegionURL(n.Region)
}

// DispatchConfig holds defaults applied to every batch.
type DispatchConfig struct {
	Policy         string `mapstructure:"policy"`
	BinaryProperty string `mapstructure:"binary_property"`
	InputFieldName string `mapstructure:"input_field_name"`
}

// AuthConfig holds settings for API tokens accepted by the HTTP server.
type AuthConfig struct {
	Secret      string        `mapstructure:"secret"`
	Issuer      string        `mapstructure:"issuer"`
	Audience    string        `mapstructure:"audience"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	// FingerprintKey keys the hash stored in place of document service tokens.
	FingerprintKey string `mapstructure:"fingerprint_key"`
}

// DBConfig holds PostgreSQL connection settings for the run audit store.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for attachment fetches and result archives.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	ArchiveBucket string `mapstructure:"archive_bucket"`
	ArchivePrefix string `mapstructure:"archive_prefix"`
}

// Enabled reports whether S3 access was configured.
func (s *S3Config) Enabled() bool {
	return s.Region != ""
}

// EmailConfig holds failure notification settings.
type EmailConfig struct {
	Provider    string   `mapstructure:"provider"`
	Region      string   `mapstructure:"region"`
	FromAddress string   `mapstructure:"from_address"`
	FromName    string   `mapstructure:"from_name"`
	NotifyTo    []string `mapstructure:"notify_to"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the NARRA_ prefix.
// A .env file in the working directory is loaded first when present; it
// never overrides variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NARRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_mb", 64)

	// Document service defaults
	v.SetDefault("narratheque.region", "europe")
	v.SetDefault("narratheque.use_custom_url", false)
	v.SetDefault("narratheque.custom_url", "")
	v.SetDefault("narratheque.token", "")
	v.SetDefault("narratheque.timeout_secs", 0)

	// Dispatch defaults
	v.SetDefault("dispatch.policy", string(domain.PolicyFailFast))
	v.SetDefault("dispatch.binary_property", domain.DefaultBinaryProperty)
	v.SetDefault("dispatch.input_field_name", "url")

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "narrabridge")
	v.SetDefault("auth.audience", "dispatch")
	v.SetDefault("auth.token_expiry", "720h")
	v.SetDefault("auth.fingerprint_key", "")

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "narrabridge")
	v.SetDefault("db.password", "narrabridge_secret")
	v.SetDefault("db.name", "narrabridge_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.archive_bucket", "")
	v.SetDefault("s3.archive_prefix", "runs")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-3")
	v.SetDefault("email.from_address", "noreply@narrabridge.local")
	v.SetDefault("email.from_name", "narrabridge")
	v.SetDefault("email.notify_to", "")

	// Log defaults
	v.SetDefault("log.level", "info")

	v.SetDefault("cors.allowed_origins", "http://localhost:5678,http://127.0.0.1:5678")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "NARRA_SERVER_PORT",
		"server.read_timeout":        "NARRA_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "NARRA_SERVER_WRITE_TIMEOUT",
		"server.environment":         "NARRA_SERVER_ENVIRONMENT",
		"server.max_body_mb":         "NARRA_SERVER_MAX_BODY_MB",
		"narratheque.region":         "NARRA_NARRATHEQUE_REGION",
		"narratheque.use_custom_url": "NARRA_NARRATHEQUE_USE_CUSTOM_URL",
		"narratheque.custom_url":     "NARRA_NARRATHEQUE_CUSTOM_URL",
		"narratheque.token":          "NARRA_NARRATHEQUE_TOKEN",
		"narratheque.timeout_secs":   "NARRA_NARRATHEQUE_TIMEOUT_SECS",
		"dispatch.policy":            "NARRA_DISPATCH_POLICY",
		"dispatch.binary_property":   "NARRA_DISPATCH_BINARY_PROPERTY",
		"dispatch.input_field_name":  "NARRA_DISPATCH_INPUT_FIELD_NAME",
		"auth.secret":                "NARRA_AUTH_SECRET",
		"auth.issuer":                "NARRA_AUTH_ISSUER",
		"auth.audience":              "NARRA_AUTH_AUDIENCE",
		"auth.token_expiry":          "NARRA_AUTH_TOKEN_EXPIRY",
		"auth.fingerprint_key":       "NARRA_AUTH_FINGERPRINT_KEY",
		"db.enabled":                 "NARRA_DB_ENABLED",
		"db.host":                    "NARRA_DB_HOST",
		"db.port":                    "NARRA_DB_PORT",
		"db.user":                    "NARRA_DB_USER",
		"db.password":                "NARRA_DB_PASSWORD",
		"db.name":                    "NARRA_DB_NAME",
		"db.sslmode":                 "NARRA_DB_SSLMODE",
		"db.max_open":                "NARRA_DB_MAX_OPEN",
		"db.max_idle":                "NARRA_DB_MAX_IDLE",
		"s3.region":                  "NARRA_S3_REGION",
		"s3.endpoint":                "NARRA_S3_ENDPOINT",
		"s3.access_key":              "NARRA_S3_ACCESS_KEY",
		"s3.secret_key":              "NARRA_S3_SECRET_KEY",
		"s3.archive_bucket":          "NARRA_S3_ARCHIVE_BUCKET",
		"s3.archive_prefix":          "NARRA_S3_ARCHIVE_PREFIX",
		"email.provider":             "NARRA_EMAIL_PROVIDER",
		"email.region":               "NARRA_EMAIL_REGION",
		"email.from_address":         "NARRA_EMAIL_FROM_ADDRESS",
		"email.from_name":            "NARRA_EMAIL_FROM_NAME",
		"email.notify_to":            "NARRA_EMAIL_NOTIFY_TO",
		"log.level":                  "NARRA_LOG_LEVEL",
		"cors.allowed_origins":       "NARRA_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Hosting platforms set PORT. Use it if NARRA_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("NARRA_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxBodyMB:    v.GetInt64("server.max_body_mb"),
	}
	cfg.Narratheque = NarrathequeConfig{
		Region:       v.GetString("narratheque.region"),
		UseCustomURL: v.GetBool("narratheque.use_custom_url"),
		CustomURL:    v.GetString("narratheque.custom_url"),
		Token:        v.GetString("narratheque.token"),
		TimeoutSecs:  v.GetInt("narratheque.timeout_secs"),
	}
	cfg.Dispatch = DispatchConfig{
		Policy:         v.GetString("dispatch.policy"),
		BinaryProperty: v.GetString("dispatch.binary_property"),
		InputFieldName: v.GetString("dispatch.input_field_name"),
	}
	if _, err := domain.ParsePolicy(cfg.Dispatch.Policy); err != nil {
		return nil, fmt.Errorf("dispatch.policy %q: %w", cfg.Dispatch.Policy, err)
	}
	cfg.Auth = AuthConfig{
		Secret:         v.GetString("auth.secret"),
		Issuer:         v.GetString("auth.issuer"),
		Audience:       v.GetString("auth.audience"),
		TokenExpiry:    v.GetDuration("auth.token_expiry"),
		FingerprintKey: v.GetString("auth.fingerprint_key"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	if cfg.DB.Enabled && cfg.Auth.FingerprintKey == "" {
		return nil, errors.New("auth.fingerprint_key is required when db.enabled is set")
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		ArchiveBucket: v.GetString("s3.archive_bucket"),
		ArchivePrefix: v.GetString("s3.archive_prefix"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		NotifyTo:    splitList(v.GetString("email.notify_to")),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}

	return cfg, nil
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
