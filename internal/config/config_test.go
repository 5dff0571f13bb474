package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"HTTP_PORT", "DATABASE_URL", "REDIS_ADDR", "KAFKA_BROKERS", "KAFKA_ORDER_TOPIC",
	"REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "CART_CACHE_TTL",
}

// clearEnv unsets all config keys for the test, t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, Config{
		HTTPPort:        8080,
		KafkaBrokers:    []string{},
		KafkaOrderTopic: "orders",
		RequestTimeout:  10 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		LogLevel:        "info",
		CartCacheTTL:    15 * time.Minute,
	}, cfg)
}

func TestLoad_EnvAndFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	content := "HTTP_PORT=9090\nREDIS_ADDR=localhost:6379\nKAFKA_BROKERS=a:9092, b:9092,\nLOG_LEVEL=DEBUG\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("CART_CACHE_TTL", "1m")

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.HTTPPort, "environment wins over the file")
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.CartCacheTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		wantError string
	}{
		{
			name:      "port not a number",
			key:       "HTTP_PORT",
			value:     "http",
			wantError: `HTTP_PORT[http] is not a number: strconv.Atoi: parsing "http": invalid syntax`,
		},
		{
			name:      "port out of range",
			key:       "HTTP_PORT",
			value:     "70000",
			wantError: "HTTP_PORT[70000] is out of range",
		},
		{
			name:      "bad duration",
			key:       "REQUEST_TIMEOUT",
			value:     "soon",
			wantError: `REQUEST_TIMEOUT[soon] is not a duration: time: invalid duration "soon"`,
		},
		{
			name:      "negative duration",
			key:       "SHUTDOWN_TIMEOUT",
			value:     "-1s",
			wantError: "SHUTDOWN_TIMEOUT[-1s] must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.EqualError(t, err, tt.wantError)
		})
	}
}
