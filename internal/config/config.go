package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCORSOrigins are the front-end development servers allowed by default.
var DefaultCORSOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Config struct {
	AppPort     string
	DatabaseURL string
	CORSOrigins []string
	Version     string
	GinMode     string

	LogLevel string
	LogJSON  bool

	// Rate limiting; Redis is optional, an in-process limiter is used without it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	APIRateLimit  int
	APIRateWindow time.Duration
}

// Load reads .env, an optional YAML/JSON file named by CONFIG_FILE, and the
// environment, in increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("DATABASE_URL", "todo.db")
	v.SetDefault("CORS_ORIGINS", strings.Join(DefaultCORSOrigins, ","))
	v.SetDefault("VERSION", "dev")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("API_RATE_LIMIT", 120)
	v.SetDefault("API_RATE_WINDOW_SECONDS", 60)
	v.AutomaticEnv()

	if file := os.Getenv("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		AppPort:       strings.TrimPrefix(strings.TrimSpace(v.GetString("APP_PORT")), ":"),
		DatabaseURL:   strings.TrimSpace(v.GetString("DATABASE_URL")),
		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		Version:       v.GetString("VERSION"),
		GinMode:       v.GetString("GIN_MODE"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogJSON:       v.GetBool("LOG_JSON"),
		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		APIRateLimit:  v.GetInt("API_RATE_LIMIT"),
		APIRateWindow: time.Duration(v.GetInt("API_RATE_WINDOW_SECONDS")) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AppPort == "" {
		return errors.New("APP_PORT must not be empty")
	}
	if c.APIRateLimit < 0 {
		return fmt.Errorf("API_RATE_LIMIT must be >= 0, got %d", c.APIRateLimit)
	}
	if c.APIRateLimit > 0 && c.APIRateWindow <= 0 {
		return errors.New("API_RATE_WINDOW_SECONDS must be positive when rate limiting is enabled")
	}
	return nil
}

// splitList parses a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
