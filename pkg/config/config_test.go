package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pastelink/pkg/errors"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, ".cache"))
	for _, key := range []string{
		"PASTELINK_LOG_LEVEL",
		"PASTELINK_REQUIRE_LINK_PREVIEW",
		"PASTELINK_WATCH_INTERVAL",
		"PASTELINK_HISTORY_PATH",
	} {
		t.Setenv(key, "")
	}
	return tmpDir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	tmpDir := isolate(t)

	cfg, err := loadFromPath(filepath.Join(tmpDir, "missing.yaml"))
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if !cfg.RequireLinkPreview() {
		t.Error("RequireLinkPreview() = false, want true by default")
	}
	if cfg.Watch.Interval != DefaultWatchInterval {
		t.Errorf("Watch.Interval = %s, want %s", cfg.Watch.Interval, DefaultWatchInterval)
	}
	if cfg.Clipboard.ReadTimeout != DefaultReadTimeout {
		t.Errorf("Clipboard.ReadTimeout = %s, want %s", cfg.Clipboard.ReadTimeout, DefaultReadTimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if !cfg.HistoryEnabled() {
		t.Error("HistoryEnabled() = false, want true by default")
	}
	wantHistory := filepath.Join(tmpDir, ".cache", "pastelink", "history.db")
	if cfg.History.Path != wantHistory {
		t.Errorf("History.Path = %q, want %q", cfg.History.Path, wantHistory)
	}
}

func TestLoad_File(t *testing.T) {
	tmpDir := isolate(t)
	path := writeConfig(t, tmpDir, `log_level: debug
paste:
  require_link_preview: false
watch:
  interval: 250ms
clipboard:
  read_timeout: 5s
history:
  enabled: false
  path: /tmp/h.db
`)

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.RequireLinkPreview() {
		t.Error("RequireLinkPreview() = true, want false from file")
	}
	if cfg.Watch.Interval != 250*time.Millisecond {
		t.Errorf("Watch.Interval = %s, want 250ms", cfg.Watch.Interval)
	}
	if cfg.Clipboard.ReadTimeout != 5*time.Second {
		t.Errorf("Clipboard.ReadTimeout = %s, want 5s", cfg.Clipboard.ReadTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.HistoryEnabled() {
		t.Error("HistoryEnabled() = true, want false from file")
	}
	if cfg.History.Path != "/tmp/h.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
}

func TestLoad_EnvironmentFillsUnsetValues(t *testing.T) {
	tmpDir := isolate(t)
	t.Setenv("PASTELINK_REQUIRE_LINK_PREVIEW", "false")
	t.Setenv("PASTELINK_WATCH_INTERVAL", "3s")
	t.Setenv("PASTELINK_HISTORY_PATH", "/var/tmp/x.db")
	t.Setenv("PASTELINK_LOG_LEVEL", "warn")
	path := writeConfig(t, tmpDir, "watch:\n  interval: 2s\n")

	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}

	if cfg.RequireLinkPreview() {
		t.Error("RequireLinkPreview() = true, want false from environment")
	}
	if cfg.Watch.Interval != 2*time.Second {
		t.Errorf("Watch.Interval = %s, file value should win", cfg.Watch.Interval)
	}
	if cfg.History.Path != "/var/tmp/x.db" {
		t.Errorf("History.Path = %q", cfg.History.Path)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		env      map[string]string
		wantCode errors.ExitCode
		wantMsg  string
	}{
		{
			name:     "invalid yaml",
			content:  "watch: [unclosed\n",
			wantCode: errors.ExitCodeConfig,
			wantMsg:  "failed to parse config file",
		},
		{
			name:     "negative interval",
			content:  "watch:\n  interval: -1s\n",
			wantCode: errors.ExitCodeConfig,
			wantMsg:  "watch interval must be positive",
		},
		{
			name:     "bad bool env",
			content:  "",
			env:      map[string]string{"PASTELINK_REQUIRE_LINK_PREVIEW": "sometimes"},
			wantCode: errors.ExitCodeConfig,
			wantMsg:  "PASTELINK_REQUIRE_LINK_PREVIEW",
		},
		{
			name:     "bad duration env",
			content:  "",
			env:      map[string]string{"PASTELINK_WATCH_INTERVAL": "soon"},
			wantCode: errors.ExitCodeConfig,
			wantMsg:  "PASTELINK_WATCH_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := writeConfig(t, tmpDir, tt.content)

			_, err := loadFromPath(path)
			if err == nil {
				t.Fatal("loadFromPath() returned nil error")
			}
			if !errors.IsExitCode(err, tt.wantCode) {
				t.Errorf("error %v does not carry exit code %d", err, tt.wantCode)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := isolate(t)
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Watch.Interval = 750 * time.Millisecond
	off := false
	cfg.Paste.RequireLinkPreview = &off

	if err := saveToPath(path, cfg); err != nil {
		t.Fatalf("saveToPath() returned error: %v", err)
	}

	loaded, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath() returned error: %v", err)
	}
	if loaded.Watch.Interval != 750*time.Millisecond {
		t.Errorf("Watch.Interval = %s after round trip", loaded.Watch.Interval)
	}
	if loaded.RequireLinkPreview() {
		t.Error("RequireLinkPreview() = true after saving false")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := isolate(t)

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() failed: %v", err)
	}
	want := filepath.Join(tmpDir, ".config", "pastelink", "config.yaml")
	if path != want {
		t.Errorf("GetConfigPath() = %q, want %q", path, want)
	}
}
