package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hydroassist/go-hydro-chatbot/internal/models"
)

type Config struct {
	Server       ServerConfig
	EmergencyAPI EmergencyAPIConfig
	Geo          GeoConfig
	Logging      LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Debug        bool
	RateLimitRPS int
}

type EmergencyAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// GeoConfig carries the default coordinate applied when a message yields no
// usable location, and the bounding box that validates coordinates extracted
// from free text. Defaults cover La Plata, Berisso and Ensenada, with Plaza
// Moreno as the reference point.
type GeoConfig struct {
	DefaultCoordinate models.Coordinate
	Region            models.Region
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvInt("PORT", 5000),
			Debug:        getEnvBool("DEBUG", true),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 5),
		},
		EmergencyAPI: EmergencyAPIConfig{
			BaseURL: getEnv("EMERGENCY_API_URL", "http://localhost:8000/api"),
			Timeout: getEnvDuration("EMERGENCY_API_TIMEOUT", 5*time.Second),
		},
		Geo: GeoConfig{
			DefaultCoordinate: models.Coordinate{Lat: -34.9205, Lon: -57.9536},
			Region: models.Region{
				MinLat: -35.5,
				MaxLat: -34.5,
				MinLon: -58.5,
				MaxLon: -57.5,
			},
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.EmergencyAPI.BaseURL == "" {
		return fmt.Errorf("emergency API base URL must not be empty")
	}
	if c.EmergencyAPI.Timeout <= 0 {
		return fmt.Errorf("emergency API timeout must be positive")
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
