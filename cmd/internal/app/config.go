package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	ShutdownTimeout   time.Duration

	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// If true, /readyz returns 503 unless both stores are configured and
	// reachable. Off by default so dev mode can run on memory stores.
	ReadinessRequireStores bool

	// Security policy:
	// If true, CHONGGAK_TOKEN_HMAC_KEY MUST be set (>= 32 bytes) and refresh-token hashing must be HMAC-based.
	RequireTokenHMAC bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:  EnvString("CHONGGAK_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:  EnvString("CHONGGAK_LOG_LEVEL", "info"),
		LogFormat: EnvString("CHONGGAK_LOG_FORMAT", "json"),

		ReadHeaderTimeout: EnvDuration("CHONGGAK_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("CHONGGAK_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("CHONGGAK_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("CHONGGAK_HTTP_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout:   EnvDuration("CHONGGAK_HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),

		MaxHeaderBytes: EnvInt("CHONGGAK_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL: EnvString("CHONGGAK_DATABASE_URL", ""),
		DBMaxConns:  EnvInt32("CHONGGAK_DB_MAX_CONNS", 10),
		DBMinConns:  EnvInt32("CHONGGAK_DB_MIN_CONNS", 0),

		RedisAddr:     EnvString("CHONGGAK_REDIS_ADDR", ""),
		RedisPassword: EnvString("CHONGGAK_REDIS_PASSWORD", ""),
		RedisDB:       EnvInt("CHONGGAK_REDIS_DB", 0),

		ReadinessRequireStores: EnvBool("CHONGGAK_READINESS_REQUIRE_STORES", false),

		RequireTokenHMAC: EnvBool("CHONGGAK_REQUIRE_TOKEN_HMAC", false),
	}
}
