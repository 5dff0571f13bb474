package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	HTTPPort        int
	DatabaseURL     string // empty keeps everything in process memory
	RedisAddr       string // empty disables the cart cache
	KafkaBrokers    []string
	KafkaOrderTopic string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string
	CartCacheTTL    time.Duration
}

// Load reads the given env files, .env by default, then the process environment.
// Missing env files are ignored, variables already set in the environment win.
func Load(envFiles ...string) (Config, error) {
	var cfg Config

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("godotenv.Load[%s]: %w", file, err)
		}
	}

	var err error

	if cfg.HTTPPort, err = getInt("HTTP_PORT", 8080); err != nil {
		return cfg, err
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return cfg, fmt.Errorf("HTTP_PORT[%d] is out of range", cfg.HTTPPort)
	}

	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", ""))
	cfg.KafkaOrderTopic = getEnv("KAFKA_ORDER_TOPIC", "orders")

	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return cfg, err
	}
	if cfg.CartCacheTTL, err = getDuration("CART_CACHE_TTL", 15*time.Minute); err != nil {
		return cfg, err
	}

	cfg.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s[%s] is not a number: %w", key, value, err)
	}

	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s[%s] is not a duration: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s[%s] must be positive", key, value)
	}

	return d, nil
}

func splitList(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	})

	return lo.Compact(parts)
}
