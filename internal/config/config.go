package config

import (
	"os"
	"strconv"
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// External services
	TransactionsAPIURL string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration
	MaxConcurrency int

	// Cache
	CacheTTL  time.Duration
	RedisAddr string
	UseRedis  bool // USE_REDIS=true swaps the in-memory cache for Redis

	// Observability
	OTLPEndpoint string

	// Supabase
	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string
	UseSupabase        bool

	// Detection tunables
	MinOccurrences     int
	MonthlyMinDays     int
	MonthlyMaxDays     int
	AmountTolerancePct float64
	AmountToleranceAbs float64
	DropInvalidDates   bool
	LookaheadDays      int
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	defaults := domain.DefaultDetectionConfig()

	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		TransactionsAPIURL: getEnv("TRANSACTIONS_API_URL", "http://localhost:8082"),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 50),

		CacheTTL:  getEnvDuration("CACHE_TTL", 6*time.Hour),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		UseRedis:  getEnv("USE_REDIS", "false") == "true",

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		UseSupabase:        getEnv("USE_SUPABASE", "false") == "true",

		MinOccurrences:     getEnvInt("DETECTION_MIN_OCCURRENCES", defaults.MinOccurrences),
		MonthlyMinDays:     getEnvInt("DETECTION_MONTHLY_MIN_DAYS", defaults.MonthlyMinDays),
		MonthlyMaxDays:     getEnvInt("DETECTION_MONTHLY_MAX_DAYS", defaults.MonthlyMaxDays),
		AmountTolerancePct: getEnvFloat("DETECTION_TOLERANCE_PCT", defaults.AmountTolerancePct),
		AmountToleranceAbs: getEnvFloat("DETECTION_TOLERANCE_ABS", defaults.AmountToleranceAbs),
		DropInvalidDates:   getEnv("DETECTION_DROP_INVALID_DATES", "true") == "true",
		LookaheadDays:      getEnvInt("REMINDER_LOOKAHEAD_DAYS", 7),
	}
}

// Detection assembles the detection settings for the engine.
func (c *Config) Detection() domain.DetectionConfig {
	return domain.DetectionConfig{
		MinOccurrences:     c.MinOccurrences,
		MonthlyMinDays:     c.MonthlyMinDays,
		MonthlyMaxDays:     c.MonthlyMaxDays,
		AmountTolerancePct: c.AmountTolerancePct,
		AmountToleranceAbs: c.AmountToleranceAbs,
		DropInvalidDates:   c.DropInvalidDates,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
