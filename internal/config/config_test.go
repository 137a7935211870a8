package config

import (
	"log/slog"
	"os"
	"slices"
	"testing"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadServerDefaults(t *testing.T) {
	unsetenv(t, "PORT", "DATABASE_URL", "JWT_SECRET", "ALLOWED_ORIGINS", "LOG_LEVEL")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level = %v", cfg.Level())
	}
}

func TestLoadServerOverrides(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "JWT_SECRET")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", " example.com , ,*.example.org")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if got := cfg.OriginPatterns(); !slices.Equal(got, []string{"example.com", "*.example.org"}) {
		t.Errorf("OriginPatterns = %q", got)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level = %v", cfg.Level())
	}

	cfg.LogLevel = "loud"
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("unknown level = %v, want info", cfg.Level())
	}
}

func TestLoadServerBadPort(t *testing.T) {
	unsetenv(t, "DATABASE_URL", "JWT_SECRET", "ALLOWED_ORIGINS", "LOG_LEVEL")
	t.Setenv("PORT", "eighty")
	if _, err := LoadServer(); err == nil {
		t.Fatal("LoadServer accepted a non-numeric port")
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("SKETCHPAD_SERVER", "http://localhost:8080")
	unsetenv(t, "SKETCHPAD_ORIGIN", "SKETCHPAD_LOG_FILE")
	t.Setenv("SKETCHPAD_SAMPLE", "true")

	cfg, err := LoadClient()
	if err != nil {
		t.Fatalf("LoadClient: %v", err)
	}
	if cfg.Server != "http://localhost:8080" || cfg.Origin != "local" || !cfg.Sample {
		t.Errorf("cfg = %+v", cfg)
	}
}
