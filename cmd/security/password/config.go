package password

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Argon2idParams controls Argon2id hashing cost.
// MemoryKiB is in KiB, matching argon2.IDKey.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// Policy controls password validation.
type Policy struct {
	MinLength int
	MaxLength int
	// RejectVeryWeak enables the minimal weak-pattern check in Validate.
	RejectVeryWeak bool
}

// Config is the single configuration surface for this package.
type Config struct {
	Params Argon2idParams
	Policy Policy
}

// DefaultConfig returns a baseline tuned for interactive member logins.
func DefaultConfig() Config {
	// Parallelism follows the host CPU count, clamped to [1..4] so
	// resource usage stays predictable in containers.
	threads := runtime.NumCPU()
	if threads < 1 {
		threads = 1
	}
	if threads > 4 {
		threads = 4
	}

	return Config{
		Params: Argon2idParams{
			MemoryKiB:   64 * 1024,
			Iterations:  3,
			Parallelism: uint8(threads), // #nosec G115 -- clamped to [1..4] above.
			SaltLength:  16,
			KeyLength:   32,
		},
		Policy: Policy{
			MinLength:      8,
			MaxLength:      256,
			RejectVeryWeak: false,
		},
	}
}

// FromEnv starts from DefaultConfig and applies any overrides found in
// the environment. Unlike the app package's forgiving env helpers, a
// malformed or out-of-range value here is a hard error: silently
// falling back on a hashing-cost knob would be a silent security
// downgrade.
//
// Recognized variables:
// CHONGGAK_PASSWORD_MIN_LEN, CHONGGAK_PASSWORD_MAX_LEN,
// CHONGGAK_PASSWORD_REJECT_VERY_WEAK, CHONGGAK_ARGON2_MEMORY_KIB,
// CHONGGAK_ARGON2_ITERATIONS, CHONGGAK_ARGON2_PARALLELISM,
// CHONGGAK_ARGON2_SALT_LEN, CHONGGAK_ARGON2_KEY_LEN.
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	err := firstError(
		loadInt("CHONGGAK_PASSWORD_MIN_LEN", 1, 1024, &cfg.Policy.MinLength),
		loadInt("CHONGGAK_PASSWORD_MAX_LEN", 1, 4096, &cfg.Policy.MaxLength),
		loadBool("CHONGGAK_PASSWORD_REJECT_VERY_WEAK", &cfg.Policy.RejectVeryWeak),
		loadUint32("CHONGGAK_ARGON2_MEMORY_KIB", 8*1024, 1024*1024, &cfg.Params.MemoryKiB),
		loadUint32("CHONGGAK_ARGON2_ITERATIONS", 1, 20, &cfg.Params.Iterations),
		loadUint8("CHONGGAK_ARGON2_PARALLELISM", 1, 64, &cfg.Params.Parallelism),
		loadUint32("CHONGGAK_ARGON2_SALT_LEN", 8, 64, &cfg.Params.SaltLength),
		loadUint32("CHONGGAK_ARGON2_KEY_LEN", 16, 64, &cfg.Params.KeyLength),
	)
	if err != nil {
		return Config{}, err
	}

	if cfg.Policy.MinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf(
			"password policy invalid: min_len(%d) > max_len(%d)",
			cfg.Policy.MinLength,
			cfg.Policy.MaxLength,
		)
	}

	return cfg, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func loadInt(key string, minVal, maxVal int, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return fmt.Errorf("%s: not an integer", key)
	}
	if n < int64(minVal) || n > int64(maxVal) {
		return fmt.Errorf("%s: out of range [%d..%d]", key, minVal, maxVal)
	}
	*dst = int(n)
	return nil
}

func loadUint32(key string, minVal, maxVal uint32, dst *uint32) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil {
		return fmt.Errorf("%s: not an unsigned integer", key)
	}
	u := uint32(n)
	if u < minVal || u > maxVal {
		return fmt.Errorf("%s: out of range [%d..%d]", key, minVal, maxVal)
	}
	*dst = u
	return nil
}

func loadUint8(key string, minVal, maxVal uint32, dst *uint8) error {
	var u uint32
	if err := loadUint32(key, minVal, maxVal, &u); err != nil {
		return err
	}
	if u == 0 {
		return nil // env var absent, keep default
	}
	if u > math.MaxUint8 {
		return fmt.Errorf("%s: out of range [0..%d]", key, math.MaxUint8)
	}
	*dst = uint8(u)
	return nil
}

func loadBool(key string, dst *bool) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		return fmt.Errorf("%s: invalid boolean", key)
	}
	return nil
}
