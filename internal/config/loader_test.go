package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
bot:
  name: Nanobot
  max_blob_size: 4000

store:
  driver: mysql
  seed: false
  mysql:
    host: localhost
    port: 3307
    user: bot
    password: secret
    database: budabot
    tls: disable
    max_connections: 4

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bot.Name != "Nanobot" {
		t.Errorf("expected bot name 'Nanobot', got %s", cfg.Bot.Name)
	}
	if cfg.Bot.MaxBlobSize != 4000 {
		t.Errorf("expected max_blob_size 4000, got %d", cfg.Bot.MaxBlobSize)
	}
	if cfg.Store.Driver != DriverMySQL {
		t.Errorf("expected driver 'mysql', got %s", cfg.Store.Driver)
	}
	if cfg.Store.Seed {
		t.Error("expected seed disabled")
	}
	if cfg.Store.MySQL.Host != "localhost" {
		t.Errorf("expected mysql host 'localhost', got %s", cfg.Store.MySQL.Host)
	}
	if cfg.Store.MySQL.Port != 3307 {
		t.Errorf("expected mysql port 3307, got %d", cfg.Store.MySQL.Port)
	}
	if cfg.Store.MySQL.MaxConnections != 4 {
		t.Errorf("expected max_connections 4, got %d", cfg.Store.MySQL.MaxConnections)
	}
	// Unset keys keep their defaults
	if cfg.Store.MySQL.MaxIdleConnections != 5 {
		t.Errorf("expected default max_idle_connections 5, got %d", cfg.Store.MySQL.MaxIdleConnections)
	}
	if cfg.Store.Path != "discbot.db" {
		t.Errorf("expected default store path, got %s", cfg.Store.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "env-host")
	t.Setenv("TEST_DB_PASS", "env-pass")
	t.Setenv("TEST_BOT_NAME", "Envbot")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-env.yaml")

	configContent := `
bot:
  name: ${TEST_BOT_NAME}
store:
  driver: mysql
  mysql:
    host: ${TEST_DB_HOST}
    user: bot
    password: $TEST_DB_PASS
    database: budabot
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Store.MySQL.Host != "env-host" {
		t.Errorf("expected mysql host 'env-host', got %s", cfg.Store.MySQL.Host)
	}
	if cfg.Store.MySQL.Password != "env-pass" {
		t.Errorf("expected mysql password 'env-pass', got %s", cfg.Store.MySQL.Password)
	}
	if cfg.Bot.Name != "Envbot" {
		t.Errorf("expected bot name 'Envbot', got %s", cfg.Bot.Name)
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT}", "${NONEXISTENT}"}, // Unset vars remain unchanged
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		result := expandEnvVar(tt.input)
		if result != tt.expected {
			t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite {
		t.Errorf("expected default driver, got %s", cfg.Store.Driver)
	}
}

func TestLoadOrDefaultExistingFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bot.yaml")
	if err := os.WriteFile(configPath, []byte("bot:\n  name: Filebot\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadOrDefault(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Bot.Name != "Filebot" {
		t.Errorf("expected bot name 'Filebot', got %s", cfg.Bot.Name)
	}
}
