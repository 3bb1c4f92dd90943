package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string

	PlatformAPIURL   string
	PlatformAPIToken string
	APITimeout       time.Duration
	APIRatePerSecond float64
	APIRateBurst     int

	RealtimeURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	SessionCapacity int
	ViewMemoSize    int
	SettleDelay     time.Duration
	EchoWindow      time.Duration
	RefreshDelay    time.Duration

	WatchCampaigns []string

	EnableRealtimeGateway bool
	EnableSwagger         bool
	EnableRedisCache      bool
}

// Load reads the process environment. A .env file in the working directory
// is applied first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		ServiceName: envString("SERVICE_NAME", "reviewdesk"),
		HTTPPort:    envString("HTTP_PORT", "8080"),

		PlatformAPIURL:   strings.TrimRight(strings.TrimSpace(os.Getenv("PLATFORM_API_URL")), "/"),
		PlatformAPIToken: strings.TrimSpace(os.Getenv("PLATFORM_API_TOKEN")),
		APITimeout:       envDuration("PLATFORM_API_TIMEOUT", 15*time.Second),
		APIRatePerSecond: envFloat("PLATFORM_API_RATE", 10),
		APIRateBurst:     envInt("PLATFORM_API_BURST", 20),

		RealtimeURL:   strings.TrimSpace(os.Getenv("REALTIME_URL")),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		CacheTTL:      envDuration("SUBMISSION_CACHE_TTL", 5*time.Minute),

		SessionCapacity: envInt("REVIEW_SESSION_CAPACITY", 512),
		ViewMemoSize:    envInt("REVIEW_VIEW_MEMO_SIZE", 1024),
		SettleDelay:     envDuration("REVIEW_SETTLE_DELAY", 200*time.Millisecond),
		EchoWindow:      envDuration("REVIEW_ECHO_WINDOW", 500*time.Millisecond),
		RefreshDelay:    envDuration("REVIEW_REFRESH_DELAY", 100*time.Millisecond),

		WatchCampaigns: envList("WATCH_CAMPAIGNS"),

		EnableRealtimeGateway: envBool("ENABLE_REALTIME_GATEWAY", true),
		EnableSwagger:         envBool("ENABLE_SWAGGER", true),
		EnableRedisCache:      envBool("ENABLE_REDIS_CACHE", false),
	}
	if cfg.EchoWindow < cfg.SettleDelay {
		return Config{}, errors.New("REVIEW_ECHO_WINDOW must not be shorter than REVIEW_SETTLE_DELAY")
	}
	if cfg.EnableRedisCache && cfg.RedisAddr == "" {
		return Config{}, errors.New("REDIS_ADDR is required when ENABLE_REDIS_CACHE is set")
	}
	return cfg, nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envList(name string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(name), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(name)))
	if err != nil {
		return fallback
	}
	return value
}

func envFloat(name string, fallback float64) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(name)), 64)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// envDuration accepts Go durations ("250ms") or bare milliseconds.
func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
