package config

import (
	"strings"
	"time"
)

// Config is the root application configuration shared by the API server and
// the rater client.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Review    ReviewConfig    `yaml:"review"`
	Points    PointsConfig    `yaml:"points"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors"`
	Client    ClientConfig    `yaml:"client"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c CORSConfig) Origins() []string { return splitList(c.AllowedOrigins) }

// Methods splits AllowedMethods into trimmed, non-empty entries.
func (c CORSConfig) Methods() []string { return splitList(c.AllowedMethods) }

// Headers splits AllowedHeaders into trimmed, non-empty entries.
func (c CORSConfig) Headers() []string { return splitList(c.AllowedHeaders) }

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// AuthConfig holds access-token validation settings. Tokens are issued by the
// account service; this API only verifies them.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"scanrate"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ReviewConfig holds Acceptance Gate settings. DailyCap seeds the
// review_limits row; the database trigger is the enforcing side.
type ReviewConfig struct {
	DailyCap      int `yaml:"daily_cap"       env:"REVIEW_DAILY_CAP"       env-default:"4"`
	MaxBatchItems int `yaml:"max_batch_items" env:"REVIEW_MAX_BATCH_ITEMS" env-default:"50"`
}

// PointsConfig holds Points Ledger settings.
type PointsConfig struct {
	DefaultPerRating int `yaml:"default_per_rating" env:"POINTS_DEFAULT_PER_RATING" env-default:"10"`
	MaxSpend         int `yaml:"max_spend"          env:"POINTS_MAX_SPEND"          env-default:"100000"`
}

// RateLimitConfig holds per-client request limits for the public API.
type RateLimitConfig struct {
	Enabled        bool    `yaml:"enabled"         env:"RATE_LIMIT_ENABLED"         env-default:"true"`
	RequestsPerSec float64 `yaml:"requests_per_sec" env:"RATE_LIMIT_RPS"            env-default:"5"`
	Burst          int     `yaml:"burst"           env:"RATE_LIMIT_BURST"           env-default:"20"`
}

// ClientConfig holds settings of the handheld rater client.
type ClientConfig struct {
	APIBaseURL     string        `yaml:"api_base_url"    env:"CLIENT_API_BASE_URL"    env-default:"http://localhost:8080"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"CLIENT_REQUEST_TIMEOUT" env-default:"10s"`
	DataDir        string        `yaml:"data_dir"        env:"CLIENT_DATA_DIR"        env-default:"./.rater"`
	AccessToken    string        `yaml:"access_token"    env:"CLIENT_ACCESS_TOKEN"`
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
