package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultHonorRatePerHour is the honor paid per verified hour of TA work.
const DefaultHonorRatePerHour = 27500.0

// Config holds runtime configuration values for the web tier.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	BackendURL        string
	BackendTimeout    time.Duration
	JWTSecret         string
	CookieSecure      bool
	CORSAllowOrigins  string
	HonorRatePerHour  float64
	HonorCacheTTL     time.Duration
	RedisURL          string
	DatabaseURL       string
	NATSURL           string
	NATSSubjectPrefix string
	LoginRateLimit    int
	LoginRateWindow   time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Production reports whether the service runs with production defaults.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ASDOS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Asdos Web")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "3000")
	v.SetDefault("backend.timeout", "10s")
	v.SetDefault("cors.allow_origins", "http://localhost:3000")
	v.SetDefault("honor.rate_per_hour", DefaultHonorRatePerHour)
	v.SetDefault("honor.cache_ttl", "10m")
	v.SetDefault("nats.subject_prefix", "asdos")
	v.SetDefault("login.rate_limit", 10)
	v.SetDefault("login.rate_window", "1m")

	backendTimeout, err := parseDuration(v, "backend.timeout")
	if err != nil {
		return Config{}, err
	}

	honorTTL, err := parseDuration(v, "honor.cache_ttl")
	if err != nil {
		return Config{}, err
	}

	loginWindow, err := parseDuration(v, "login.rate_window")
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		BackendURL:        strings.TrimRight(strings.TrimSpace(v.GetString("backend.url")), "/"),
		BackendTimeout:    backendTimeout,
		JWTSecret:         v.GetString("jwt.secret"),
		CORSAllowOrigins:  v.GetString("cors.allow_origins"),
		HonorRatePerHour:  v.GetFloat64("honor.rate_per_hour"),
		HonorCacheTTL:     honorTTL,
		RedisURL:          v.GetString("redis.url"),
		DatabaseURL:       v.GetString("database.url"),
		NATSURL:           v.GetString("nats.url"),
		NATSSubjectPrefix: v.GetString("nats.subject_prefix"),
		LoginRateLimit:    v.GetInt("login.rate_limit"),
		LoginRateWindow:   loginWindow,
	}

	cfg.CookieSecure = cfg.Production()
	if v.IsSet("cookie.secure") {
		cfg.CookieSecure = v.GetBool("cookie.secure")
	}

	if cfg.BackendURL == "" {
		return Config{}, fmt.Errorf("backend url must be provided")
	}

	if cfg.HonorRatePerHour <= 0 {
		return Config{}, fmt.Errorf("honor rate per hour must be positive, got %v", cfg.HonorRatePerHour)
	}

	if cfg.LoginRateLimit <= 0 {
		cfg.LoginRateLimit = 10
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	duration, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", strings.ReplaceAll(key, ".", " "), err)
	}
	return duration, nil
}
