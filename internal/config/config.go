package config

import (
	"strings"
	"time"
)

// Environment names recognised by App.Environment.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	Search    SearchConfig    `yaml:"search"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// AppConfig holds process-wide settings.
type AppConfig struct {
	Environment string `yaml:"environment" env:"APP_ENV" env-default:"development"`
}

// IsProduction reports whether the process runs in production mode.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Environment, EnvProduction)
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Admin-Passcode"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	TrustProxy      bool          `yaml:"trust_proxy"      env:"SERVER_TRUST_PROXY"      env-default:"false"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN              string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns         int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns         int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime  time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime  time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ConnectTimeout   time.Duration `yaml:"connect_timeout"    env:"DATABASE_CONNECT_TIMEOUT"    env-default:"5s"`
	StatementTimeout time.Duration `yaml:"statement_timeout"  env:"DATABASE_STATEMENT_TIMEOUT"  env-default:"15s"`
	ApplicationName  string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"clauson-dictionary"`
}

// AdminConfig holds the shared secret guarding corpus and report mutations.
//
// Passcode may be plain text or a bcrypt hash. An empty Passcode disables
// every admin operation. DevPasscode is consulted only outside production.
type AdminConfig struct {
	Passcode    string `yaml:"passcode"     env:"ADMIN_PASSCODE"`
	DevPasscode string `yaml:"dev_passcode" env:"ADMIN_DEV_PASSCODE"`
}

// Secret returns the passcode effective for the given environment.
func (a AdminConfig) Secret(app AppConfig) string {
	if a.Passcode != "" {
		return a.Passcode
	}
	if !app.IsProduction() {
		return a.DevPasscode
	}
	return ""
}

// SearchConfig holds search and autocomplete limits.
type SearchConfig struct {
	DefaultPageSize     int     `yaml:"default_page_size"     env:"SEARCH_DEFAULT_PAGE_SIZE"     env-default:"15"`
	MaxPageSize         int     `yaml:"max_page_size"         env:"SEARCH_MAX_PAGE_SIZE"         env-default:"200"`
	DefaultFuzzy        float64 `yaml:"default_fuzzy"         env:"SEARCH_DEFAULT_FUZZY"         env-default:"0.3"`
	AutocompleteMinLen  int     `yaml:"autocomplete_min_len"  env:"SEARCH_AUTOCOMPLETE_MIN_LEN"  env-default:"2"`
	AutocompleteLimit   int     `yaml:"autocomplete_limit"    env:"SEARCH_AUTOCOMPLETE_LIMIT"    env-default:"10"`
	AutocompleteMaxSize int     `yaml:"autocomplete_max_size" env:"SEARCH_AUTOCOMPLETE_MAX_SIZE" env-default:"50"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits for write endpoints.
type RateLimitConfig struct {
	ReportsPerMinute int           `yaml:"reports_per_minute" env:"RATE_LIMIT_REPORTS_PER_MINUTE" env-default:"10"`
	AdminPerMinute   int           `yaml:"admin_per_minute"   env:"RATE_LIMIT_ADMIN_PER_MINUTE"   env-default:"30"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}
