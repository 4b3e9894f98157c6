package authapi

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls auth API behavior and security defaults.
type Config struct {
	MaxBodyBytes int64

	// LoginFailureMax failed logins per identifier within LoginFailureWindow
	// block further attempts until the window slides past.
	LoginFailureMax    int
	LoginFailureWindow time.Duration
}

// DefaultConfig returns the auth API defaults.
func DefaultConfig() Config {
	return Config{
		MaxBodyBytes:       1 << 20, // 1 MiB
		LoginFailureMax:    5,
		LoginFailureWindow: 15 * time.Minute,
	}
}

// LoadConfigFromEnv loads auth API config from environment variables with
// safe defaults:
//   - CHONGGAK_AUTH_MAX_BODY_BYTES
//   - CHONGGAK_AUTH_LOGIN_FAILURE_MAX
//   - CHONGGAK_AUTH_LOGIN_FAILURE_WINDOW
func LoadConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		MaxBodyBytes:       envInt64("CHONGGAK_AUTH_MAX_BODY_BYTES", def.MaxBodyBytes),
		LoginFailureMax:    envInt("CHONGGAK_AUTH_LOGIN_FAILURE_MAX", def.LoginFailureMax),
		LoginFailureWindow: envDuration("CHONGGAK_AUTH_LOGIN_FAILURE_WINDOW", def.LoginFailureWindow),
	}
}

func envInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
