package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "")
	unsetEnv(t, "MOUNT_PATH")

	cfg, err := fromEnv("development")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("expected port %q, got %q", DefaultPort, cfg.Port)
	}
	if cfg.MountPath != DefaultMountPath {
		t.Errorf("expected mount path %q, got %q", DefaultMountPath, cfg.MountPath)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("expected shutdown timeout %v, got %v", DefaultShutdownTimeout, cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != zapcore.InfoLevel {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Addr())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("MOUNT_PATH", "/api/go/")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := fromEnv("production")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "production" {
		t.Errorf("expected env production, got %q", cfg.Env)
	}
	if cfg.Addr() != ":3000" {
		t.Errorf("expected addr :3000, got %q", cfg.Addr())
	}
	if cfg.MountPath != "/api/go" {
		t.Errorf("expected mount path /api/go, got %q", cfg.MountPath)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestFromEnvInvalidLogLevel(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := fromEnv("development"); err == nil {
		t.Fatal("expected error for invalid LOG_LEVEL")
	}
}

func TestFromEnvEmptyMountPathServesRoot(t *testing.T) {
	t.Setenv("MOUNT_PATH", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	cfg, err := fromEnv("development")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MountPath != "" {
		t.Errorf("expected empty mount path, got %q", cfg.MountPath)
	}
}

func TestFromEnvInvalidShutdownTimeout(t *testing.T) {
	tests := []string{"soon", "-1s", "0s"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "")
			t.Setenv("SHUTDOWN_TIMEOUT", raw)
			if _, err := fromEnv("development"); err == nil {
				t.Fatalf("expected error for SHUTDOWN_TIMEOUT=%q", raw)
			}
		})
	}
}

func TestNormalizeMountPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{"  ", ""},
		{"api/python", "/api/python"},
		{"/api/python", "/api/python"},
		{"/api/python/", "/api/python"},
		{"//api//", "/api"},
	}
	for _, tt := range tests {
		if got := NormalizeMountPath(tt.in); got != tt.want {
			t.Errorf("NormalizeMountPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadReadsDotEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7000\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env.staging"), []byte("MOUNT_PATH=/api/staging\n"), 0o600); err != nil {
		t.Fatalf("write .env.staging: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	unsetEnv(t, "PORT")
	unsetEnv(t, "MOUNT_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "7000" {
		t.Errorf("expected port from .env, got %q", cfg.Port)
	}
	if cfg.MountPath != "/api/staging" {
		t.Errorf("expected mount path from .env.staging, got %q", cfg.MountPath)
	}
}

func TestLoadProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7000\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected process env to win, got %q", cfg.Port)
	}
}

// unsetEnv removes key for the duration of the test, restoring the previous value afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}
