package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(ConfigFileEnv, "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, NewConfig().HTTP, cfg.HTTP)
	assert.Equal(t, 5*time.Second, cfg.Tracking.Debounce)
	assert.Equal(t, "@every 2s", cfg.Outbox.Schedule)
	assert.False(t, cfg.AutoDispatch.Enabled)
}

func TestLoadConfig_SourcesInOrder(t *testing.T) {
	tomlPath := writeFile(t, "dispatch.toml", `
log-level = "debug"

[http]
port = "9090"

[db]
host = "db.internal"
name = "from_toml"

[tracking]
debounce = "3s"

[auto-dispatch]
enabled = true
radius-km = 2.5

[kafka]
brokers = ["k1:9092", "k2:9092"]
`)
	envPath := writeFile(t, "test.env", "DB_NAME=from_env_file\nREDIS_ADDR=redis:6379\n")
	t.Cleanup(func() { _ = os.Unsetenv("REDIS_ADDR") })

	t.Setenv(ConfigFileEnv, tomlPath)
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("KAFKA_BROKERS", "k3:9092, k4:9092")
	t.Setenv("DB_NAME", "from_process")

	cfg, err := LoadConfig(envPath)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "7070", cfg.HTTP.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "from_process", cfg.DB.Name)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 3*time.Second, cfg.Tracking.Debounce)
	assert.True(t, cfg.AutoDispatch.Enabled)
	assert.InDelta(t, 2.5, cfg.AutoDispatch.RadiusKm, 1e-9)
	assert.Equal(t, []string{"k3:9092", "k4:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "5432", cfg.DB.Port)
}

func TestLoadConfig_UnreadableFile(t *testing.T) {
	t.Setenv(ConfigFileEnv, filepath.Join(t.TempDir(), "missing.toml"))

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestConfig_ApplyEnvRejectsMalformedValues(t *testing.T) {
	env := map[string]string{
		"OUTBOX_BATCH":          "many",
		"LOCATION_DEBOUNCE":     "5",
		"AUTO_DISPATCH_ENABLED": "sometimes",
	}
	cfg := NewConfig()

	err := cfg.applyEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})

	require.Error(t, err)
	assert.ErrorContains(t, err, "OUTBOX_BATCH")
	assert.ErrorContains(t, err, "LOCATION_DEBOUNCE")
	assert.ErrorContains(t, err, "AUTO_DISPATCH_ENABLED")
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			cfg := &Config{LogLevel: in}
			assert.Equal(t, want, cfg.SlogLevel())
		})
	}
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "d", SslMode: "disable"}

	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}
