package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/bingolive/backend/utils/logger"
)

const (
	defaultPort           = "4000"
	defaultDrawIntervalMS = 100
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port           string
	DrawInterval   time.Duration
	AllowedOrigins []string
	DatabaseURL    string // empty disables round history
}

// Load reads .env (if present) and the environment. Missing values fall back
// to defaults; only DATABASE_URL is allowed to stay empty.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file found, reading environment variables")
	}

	cfg := &Config{
		Port:           defaultPort,
		DrawInterval:   defaultDrawIntervalMS * time.Millisecond,
		AllowedOrigins: []string{"http://localhost:3000"},
		DatabaseURL:    os.Getenv("DATABASE_URL"),
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	if raw := os.Getenv("DRAW_INTERVAL_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			logger.Warnf("invalid DRAW_INTERVAL_MS %q, using default %dms", raw, defaultDrawIntervalMS)
		} else {
			cfg.DrawInterval = time.Duration(ms) * time.Millisecond
		}
	}

	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.AllowedOrigins = origins
	}

	return cfg
}
