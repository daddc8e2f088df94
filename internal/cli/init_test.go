package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"expensetracker/internal/config"
	applog "expensetracker/internal/log"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("EXPENSE_TRACKER_TEST_KEY=from-dotenv\n"), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("EXPENSE_TRACKER_TEST_KEY", "")
	os.Unsetenv("EXPENSE_TRACKER_TEST_KEY")

	if err := LoadEnvFile(filepath.Join(dir, "missing.env"), envFile); err != nil {
		t.Fatalf("LoadEnvFile: %v", err)
	}
	if got := os.Getenv("EXPENSE_TRACKER_TEST_KEY"); got != "from-dotenv" {
		t.Errorf("env value = %q, want from-dotenv", got)
	}
}

func TestLoadAndValidateConfig(t *testing.T) {
	t.Setenv("PORT", "notaport")
	if _, err := LoadAndValidateConfig(); err == nil {
		t.Fatal("expected validation error")
	}

	t.Setenv("PORT", "8090")
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		t.Fatalf("LoadAndValidateConfig: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("Port = %q", cfg.Port)
	}
}

func TestSetupLogger(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "json"}
	logger, err := SetupLogger(cfg)
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	if logger.Component() != applog.ComponentApp {
		t.Errorf("component = %q", logger.Component())
	}

	cfg.LogLevel = "chatty"
	if _, err := SetupLogger(cfg); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestShutdownContextCancel(t *testing.T) {
	logger := applog.New(applog.Config{Output: os.Stderr})
	ctx, cancel := ShutdownContext(context.Background(), logger)
	cancel()
	<-ctx.Done()
	if ctx.Err() == nil {
		t.Fatal("expected cancelled context")
	}
}
