package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Assistant AssistantConfig `yaml:"assistant"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
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
	// RateLimitPerMinute caps API requests per client IP. Zero disables
	// the limiter.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"0"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds bearer-token verification settings. Token issuance lives
// with the hosted identity provider; this service only verifies.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string        `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"slateroom"`
	AccessTTL time.Duration `yaml:"access_ttl" env:"AUTH_ACCESS_TTL" env-default:"15m"`
}

// AssistantConfig holds settings for the AI assistant pipeline.
type AssistantConfig struct {
	// StreamBaseURL is the chat-completion endpoint consumed for streaming
	// quick actions (SSE, chat-completion convention).
	StreamBaseURL string        `yaml:"stream_base_url" env:"ASSISTANT_STREAM_BASE_URL" env-default:"https://api.openai.com/v1"`
	StreamAPIKey  string        `yaml:"stream_api_key"  env:"ASSISTANT_STREAM_API_KEY"`
	StreamModel   string        `yaml:"stream_model"    env:"ASSISTANT_STREAM_MODEL"    env-default:"gpt-4o-mini"`
	StreamTimeout time.Duration `yaml:"stream_timeout"  env:"ASSISTANT_STREAM_TIMEOUT"  env-default:"5m"`

	// BatchModel is the Anthropic model used by the offline breakdown
	// pipeline (cmd/breakdown).
	BatchModel     string `yaml:"batch_model"      env:"ASSISTANT_BATCH_MODEL"      env-default:"claude-sonnet-4-5"`
	BatchMaxTokens int    `yaml:"batch_max_tokens" env:"ASSISTANT_BATCH_MAX_TOKENS" env-default:"4096"`

	// Per-task prompt truncation limits, in characters.
	MaxCharsFormat    int `yaml:"max_chars_format"    env:"ASSISTANT_MAX_CHARS_FORMAT"    env-default:"2000"`
	MaxCharsBreakdown int `yaml:"max_chars_breakdown" env:"ASSISTANT_MAX_CHARS_BREAKDOWN" env-default:"1500"`
	MaxCharsShotlist  int `yaml:"max_chars_shotlist"  env:"ASSISTANT_MAX_CHARS_SHOTLIST"  env-default:"1500"`
	MaxCharsCallsheet int `yaml:"max_chars_callsheet" env:"ASSISTANT_MAX_CHARS_CALLSHEET" env-default:"1000"`
}

// ScheduleConfig holds stripboard defaults.
type ScheduleConfig struct {
	// DefaultTargetMins is applied when a day is created without a target.
	DefaultTargetMins int `yaml:"default_target_mins" env:"SCHEDULE_DEFAULT_TARGET_MINS" env-default:"480"`
	// WatchRetryInterval is how long the realtime watcher waits before
	// re-establishing a dropped LISTEN connection.
	WatchRetryInterval time.Duration `yaml:"watch_retry_interval" env:"SCHEDULE_WATCH_RETRY_INTERVAL" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
