package api

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"

	platformredis "github.com/Apurer/franchise-catalog-api/internal/platform/redis"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port              string
	Environment       string
	PostgresDSN       string
	Redis             platformredis.Config
	TopProductsTTL    time.Duration
	TemporalAddress   string
	TemporalNamespace string
	TemporalDisabled  bool
}

// LoadConfig reads a .env file when present, then environment variables, applies defaults
// and validates basic constraints. Variables already set in the environment win over .env.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "local")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("TOP_PRODUCTS_CACHE_TTL_SECONDS", 30)
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("TEMPORAL_DISABLED", false)

	ttlSeconds, err := strconv.Atoi(strings.TrimSpace(v.GetString("TOP_PRODUCTS_CACHE_TTL_SECONDS")))
	if err != nil || ttlSeconds < 0 {
		return Config{}, fmt.Errorf("TOP_PRODUCTS_CACHE_TTL_SECONDS must be a non-negative integer")
	}
	redisDB, err := strconv.Atoi(strings.TrimSpace(v.GetString("REDIS_DB")))
	if err != nil || redisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be a non-negative integer")
	}

	return Config{
		Port:        strings.TrimSpace(v.GetString("PORT")),
		Environment: strings.TrimSpace(v.GetString("ENVIRONMENT")),
		PostgresDSN: strings.TrimSpace(v.GetString("POSTGRES_DSN")),
		Redis: platformredis.Config{
			Address:  strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		TopProductsTTL:    time.Duration(ttlSeconds) * time.Second,
		TemporalAddress:   strings.TrimSpace(v.GetString("TEMPORAL_ADDRESS")),
		TemporalNamespace: strings.TrimSpace(v.GetString("TEMPORAL_NAMESPACE")),
		TemporalDisabled:  isTruthy(v.GetString("TEMPORAL_DISABLED")),
	}, nil
}

// Addr is the listen address of the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
