package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if want := filepath.Join(logDir, "weekboard.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "row", 2)
	Error("Test error message")
}

func TestWarnReachesFile(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("filtered at warn level")
	Warn("save failed", "key", "current")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "save failed") || !strings.Contains(content, "key=current") {
		t.Errorf("log file missing warning, got %q", content)
	}
	if strings.Contains(content, "filtered at warn level") {
		t.Errorf("info message should be filtered in normal mode, got %q", content)
	}
}

func TestInitDebugModeQuiet(t *testing.T) {
	configDir := t.TempDir()

	if err := Init(Config{Debug: true, Quiet: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("Test debug message in debug mode")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test debug message in debug mode") {
		t.Errorf("debug message missing from log file, got %q", string(data))
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestOutputAndLevel(t *testing.T) {
	file := &strings.Builder{}
	tests := []struct {
		name      string
		cfg       Config
		wantFile  bool
		wantLevel string
	}{
		{"normal", Config{}, true, "warn"},
		{"debug", Config{Debug: true}, false, "debug"},
		{"debug quiet", Config{Debug: true, Quiet: true}, true, "debug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := output(tt.cfg, file)
			if (got == file) != tt.wantFile {
				t.Errorf("output() wrote only to the file = %v, want %v", got == file, tt.wantFile)
			}
			if lvl := level(tt.cfg.Debug).String(); lvl != tt.wantLevel {
				t.Errorf("level() = %q, want %q", lvl, tt.wantLevel)
			}
		})
	}
}
