package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "ENVIRONMENT", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"TOP_PRODUCTS_CACHE_TTL_SECONDS", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED",
}

// clearConfigEnv blanks every setting so viper falls back to defaults.
// Unset keys are restored by t.Setenv when the test ends.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, "local", cfg.Environment)
	require.Empty(t, cfg.PostgresDSN)
	require.Empty(t, cfg.Redis.Address)
	require.Equal(t, 30*time.Second, cfg.TopProductsTTL)
	require.Equal(t, "localhost:7233", cfg.TemporalAddress)
	require.Equal(t, "default", cfg.TemporalNamespace)
	require.False(t, cfg.TemporalDisabled)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_DSN", "postgres://catalog@db/catalog")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TOP_PRODUCTS_CACHE_TTL_SECONDS", "0")
	t.Setenv("TEMPORAL_DISABLED", "true")

	cfg, err := LoadConfig(missingEnvFile(t))
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Addr())
	require.Equal(t, "postgres://catalog@db/catalog", cfg.PostgresDSN)
	require.Equal(t, "cache:6379", cfg.Redis.Address)
	require.Equal(t, 2, cfg.Redis.DB)
	require.Zero(t, cfg.TopProductsTTL)
	require.True(t, cfg.TemporalDisabled)
}

func TestLoadConfigReadsDotEnvWithoutOverriding(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "7000")
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=6000\nREDIS_ADDR=dotenv:6379\n"), 0o600))

	cfg, err := LoadConfig(envFile)
	require.NoError(t, err)
	require.Equal(t, "7000", cfg.Port)
	require.Equal(t, "dotenv:6379", cfg.Redis.Address)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"TOP_PRODUCTS_CACHE_TTL_SECONDS": "-1",
		"REDIS_DB":                       "primary",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			t.Setenv(key, value)

			_, err := LoadConfig(missingEnvFile(t))
			require.ErrorContains(t, err, key)
		})
	}
}
