// ABOUTME: Configuration loader for the dimensioning service
// ABOUTME: Loads settings from an optional .env file and environment variables

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, for cached dimensioning responses
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	MaxRequestMB       int      // request body limit for POST /dimension (default: 32)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitDefault int  // Requests per minute per client (default: 100)

	// Dimensioning
	TopNDays            int     // busiest days averaged per cell (default: 5)
	BlockingProbability float64 // target SDCCH blocking (default: 0.001)
	MaxChannels         int     // Erlang-B search bound (default: 4096)
	PlanWorkers         int     // parallel per-cell planners (default: 8)
}

// Default returns the configuration used when no variables are set.
func Default() *Config {
	return &Config{
		Port:                "8080",
		CacheTTL:            300,
		MaxRequestMB:        32,
		RateLimitEnabled:    true,
		RateLimitDefault:    100,
		TopNDays:            5,
		BlockingProbability: 0.001,
		MaxChannels:         4096,
		PlanWorkers:         8,
	}
}

// Load reads ENV_FILE (default .env) when present, then the environment.
// Variables already set in the environment win over the file. A value that
// does not parse or is out of range is an error naming its variable.
func Load() (*Config, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	d := Default()
	var errs []error
	intVar := func(key string, def int) int {
		v, err := getEnvInt(key, def)
		errs = append(errs, err)
		return v
	}

	cfg := &Config{
		Port:               getEnv("PORT", d.Port),
		CacheTTL:           intVar("CACHE_TTL", d.CacheTTL),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		MaxRequestMB:       intVar("MAX_REQUEST_MB", d.MaxRequestMB),

		RateLimitDefault: intVar("RATE_LIMIT_DEFAULT", d.RateLimitDefault),

		TopNDays:    intVar("TOP_N_DAYS", d.TopNDays),
		MaxChannels: intVar("MAX_CHANNELS", d.MaxChannels),
		PlanWorkers: intVar("PLAN_WORKERS", d.PlanWorkers),
	}

	var err error
	cfg.RateLimitEnabled, err = getEnvBool("RATE_LIMIT_ENABLED", d.RateLimitEnabled)
	errs = append(errs, err)
	cfg.BlockingProbability, err = getEnvFloat("BLOCKING_PROBABILITY", d.BlockingProbability)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.RateLimitDefault < 1 || cfg.RateLimitDefault > 10000 {
		return nil, fmt.Errorf("RATE_LIMIT_DEFAULT must be between 1 and 10000, got %d", cfg.RateLimitDefault)
	}
	if cfg.TopNDays < 1 {
		return nil, fmt.Errorf("TOP_N_DAYS must be at least 1, got %d", cfg.TopNDays)
	}
	if !(cfg.BlockingProbability > 0 && cfg.BlockingProbability < 1) {
		return nil, fmt.Errorf("BLOCKING_PROBABILITY must be in (0, 1), got %v", cfg.BlockingProbability)
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"MAX_CHANNELS", cfg.MaxChannels},
		{"PLAN_WORKERS", cfg.PlanWorkers},
		{"MAX_REQUEST_MB", cfg.MaxRequestMB},
	} {
		if v.value < 1 {
			return nil, fmt.Errorf("%s must be positive, got %d", v.name, v.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return intVal, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	floatVal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return floatVal, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	boolVal, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be true or false, got %q", key, value)
	}
	return boolVal, nil
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
