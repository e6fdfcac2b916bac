package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dbsmedya/discbot/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string // String representation of zapcore.Level
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"}, // empty defaults to info
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"}, // unknown defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.LoggingConfig
	}{
		{
			name: "json format info level",
			cfg:  &config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"},
		},
		{
			name: "text format debug level",
			cfg:  &config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"},
		},
		{
			name: "file output",
			cfg:  &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "bot.log")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger without error")
			}
			_ = logger.Sync()
		})
	}
}

func TestNewDefault(t *testing.T) {
	logger := NewDefault()
	if logger == nil {
		t.Fatal("NewDefault() returned nil")
	}

	// Should be able to log without panic
	logger.Info("test message")
	_ = logger.Sync()
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Errorw("discarded", "key", "value")
	if err := logger.Sync(); err != nil {
		t.Errorf("nop Sync() returned error: %v", err)
	}
}

func TestContextHelpers(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromCore(core)

	logger.WithCommand("disc").
		WithSender("Nady", "tell").
		WithDataset("NANO_MODULE", "discs").
		WithFields(map[string]interface{}{"matches": 3}).
		Info("lookup finished")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	expected := map[string]interface{}{
		"command": "disc",
		"sender":  "Nady",
		"channel": "tell",
		"module":  "NANO_MODULE",
		"dataset": "discs",
		"matches": int64(3),
	}
	for k, v := range expected {
		if fields[k] != v {
			t.Errorf("field %q = %v, expected %v", k, fields[k], v)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := FromCore(core)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry above warn, got %d", logs.Len())
	}
	if logs.All()[0].Message != "shown" {
		t.Errorf("unexpected message %q", logs.All()[0].Message)
	}
}

func TestBuildEncoder(t *testing.T) {
	if buildEncoder("json") == nil {
		t.Error("buildEncoder('json') returned nil")
	}
	if buildEncoder("text") == nil {
		t.Error("buildEncoder('text') returned nil")
	}
	if buildEncoder("unknown") == nil {
		t.Error("buildEncoder('unknown') returned nil")
	}
}

func TestBuildWriters(t *testing.T) {
	for _, output := range []string{"stdout", "stderr", "", filepath.Join(t.TempDir(), "out.log")} {
		if buildWriters(output) == nil {
			t.Errorf("buildWriters(%q) returned nil", output)
		}
	}
}

func TestLoggingOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logger-test.json")

	cfg := &config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: logFile,
	}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("test info message")
	logger.WithCommand("disc").Warn("message with command context")
	_ = logger.Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "test info message") {
		t.Error("Log file should contain 'test info message'")
	}
	if !strings.Contains(contentStr, `"command":"disc"`) {
		t.Error("Log file should contain command context")
	}
}
