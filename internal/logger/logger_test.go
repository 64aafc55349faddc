package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultIsNop(t *testing.T) {
	Set(nil)
	// Must not panic without Init.
	Warn("dropped")
	Named("frame").Debug("dropped")
	Sync()
}

func TestNamedCarriesComponent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	Named("camera").Info("fit sphere", zap.Float32("radius", 2))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "camera" {
		t.Errorf("logger name = %q, want camera", entries[0].LoggerName)
	}
	if got := entries[0].ContextMap()["radius"]; got != float32(2) {
		t.Errorf("radius field = %v", got)
	}
}

func TestFileOutputIsJSON(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "scene.log")
	cfg := FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	if err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Set(nil)

	Named("profile").Info("profile switched", zap.String("name", "ARCBALL"))
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &line); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, content)
	}
	if line["component"] != "profile" || line["name"] != "ARCBALL" || line["level"] != "info" {
		t.Errorf("unexpected log line: %v", line)
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{`"error"`}, excluded: []string{`"warn"`, `"info"`, `"debug"`}},
		{level: "warn", expected: []string{`"error"`, `"warn"`}, excluded: []string{`"info"`, `"debug"`}},
		{level: "info", expected: []string{`"error"`, `"warn"`, `"info"`}, excluded: []string{`"debug"`}},
		{level: "debug", expected: []string{`"error"`, `"warn"`, `"info"`, `"debug"`}},
		{level: "bogus", expected: []string{`"info"`}, excluded: []string{`"debug"`}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")

			err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, false)
			if err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}
			defer Set(nil)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, `"level":`+exp) {
					t.Errorf("expected level %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, `"level":`+exc) {
					t.Errorf("unexpected level %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/scene.log")

	if cfg.Path != "/tmp/scene.log" {
		t.Errorf("expected path /tmp/scene.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 || !cfg.Compress {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
