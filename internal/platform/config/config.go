package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	// DefaultMountPath is the prefix the reverse proxy forwards to this service.
	DefaultMountPath = "/api/python"
	// DefaultPort is used when PORT is unset.
	DefaultPort = "8080"
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds process configuration resolved from the environment.
type Config struct {
	Env             string
	Port            string
	MountPath       string
	ShutdownTimeout time.Duration
	LogLevel        zapcore.Level
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads optional .env files and resolves configuration from environment variables.
// Variables already set in the process environment take precedence over file values.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	env := getenv("APP_ENV", "development")
	_ = godotenv.Load(".env." + env)
	return fromEnv(env)
}

func fromEnv(env string) (Config, error) {
	cfg := Config{
		Env:             env,
		Port:            getenv("PORT", DefaultPort),
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        zapcore.InfoLevel,
	}

	mount, ok := os.LookupEnv("MOUNT_PATH")
	if !ok {
		mount = DefaultMountPath
	}
	cfg.MountPath = NormalizeMountPath(mount)

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT %q: %w", raw, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		lvl, err := zapcore.ParseLevel(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = lvl
	}

	return cfg, nil
}

// NormalizeMountPath returns the prefix with a single leading slash and no trailing slash.
// An empty result means routes are served at the root.
func NormalizeMountPath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
