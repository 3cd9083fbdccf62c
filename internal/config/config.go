package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Backend
	BackendURL         string
	HTTPTimeoutSeconds int

	// Health polling
	HealthPollSeconds int

	// Platform audio commands. The recorder must write the encoded clip to
	// stdout and finalize it when its stdin closes; the player takes the
	// audio path or URL as its final argument.
	RecorderCmd  string
	RecorderMIME string
	PlayerCmd    string

	// Query defaults
	AutoSpeak  bool
	ReadScreen bool

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("No .env file found, using environment variables only")
	}

	cfg := &Config{
		// Backend
		BackendURL:         getEnvOrDefault("BACKEND_URL", "http://localhost:8000"),
		HTTPTimeoutSeconds: getIntEnvOrDefault("HTTP_TIMEOUT_SECONDS", 120),

		// Health
		HealthPollSeconds: getIntEnvOrDefault("HEALTH_POLL_SECONDS", 30),

		// Audio
		RecorderCmd:  getEnvOrDefault("RECORDER_CMD", "ffmpeg -loglevel quiet -f pulse -i default -ac 1 -ar 16000 -f wav -"),
		RecorderMIME: getEnvOrDefault("RECORDER_MIME", "audio/wav"),
		PlayerCmd:    getEnvOrDefault("PLAYER_CMD", "ffplay -loglevel quiet -nodisp -autoexit"),

		// Query defaults
		AutoSpeak:  getBoolEnvOrDefault("AUTO_SPEAK", false),
		ReadScreen: getBoolEnvOrDefault("READ_SCREEN", false),

		// Logging
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL: %q", c.BackendURL)
	}

	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}

	if c.HealthPollSeconds <= 0 {
		return fmt.Errorf("HEALTH_POLL_SECONDS must be positive")
	}

	if c.RecorderCmd == "" {
		return fmt.Errorf("RECORDER_CMD is required")
	}

	if c.PlayerCmd == "" {
		return fmt.Errorf("PLAYER_CMD is required")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnvOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
