package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points XDG and the working directory at a fresh temp dir and
// clears every CELEBTOUR_ variable so Load sees only what the test writes.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	origWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}

	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("CELEBTOUR_"+strings.ToUpper(key), "")
		_ = os.Unsetenv("CELEBTOUR_" + strings.ToUpper(key))
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		want := "/custom/config/celebtour/celebtour.yml"
		if got := GlobalPath(); got != want {
			t.Errorf("GlobalPath() = %v, want %v", got, want)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		if !filepath.IsAbs(got) {
			t.Errorf("GlobalPath() should return absolute path, got %v", got)
		}
		if !strings.HasSuffix(got, filepath.Join(".config", "celebtour", "celebtour.yml")) {
			t.Errorf("GlobalPath() should end with .config/celebtour/celebtour.yml, got %v", got)
		}
	})
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "celebtour.yml" {
		t.Errorf("ProjectPath() = %v, want celebtour.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Error("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
	_ = os.Remove(ProjectPath())

	if err := WriteGlobal(Default()); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when global config exists")
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.LogFile = "/tmp/celebtour.log"
	cfg.DataDir = ".test"
	cfg.TickInterval = 250 * time.Millisecond
	cfg.ShareBaseURL = "https://example.test"

	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"log_level: debug",
		"log_file: /tmp/celebtour.log",
		"data_dir: .test",
		"tick_interval: 250ms",
		"share_base_url: https://example.test",
		"persist: true",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Load() default LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.DataDir != ".celebtour" {
		t.Errorf("Load() default DataDir = %v, want .celebtour", cfg.DataDir)
	}
	if !cfg.Persist {
		t.Error("Load() default Persist = false, want true")
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("Load() default MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("Load() default TickInterval = %v, want 100ms", cfg.TickInterval)
	}
	if cfg.TickIncrement != 0.5 {
		t.Errorf("Load() default TickIncrement = %v, want 0.5", cfg.TickIncrement)
	}
	if cfg.CallDelay != time.Second {
		t.Errorf("Load() default CallDelay = %v, want 1s", cfg.CallDelay)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := Default()
	global.LogLevel = "warn"
	global.DataDir = ".global"
	global.ShareBaseURL = "https://global.test"
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	project := []byte("data_dir: .project\ntick_interval: 50ms\n")
	if err := os.WriteFile(ProjectPath(), project, 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	t.Setenv("CELEBTOUR_SHARE_BASE_URL", "https://env.test")
	t.Setenv("CELEBTOUR_PERSIST", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("global value lost: LogLevel = %v, want warn", cfg.LogLevel)
	}
	if cfg.DataDir != ".project" {
		t.Errorf("project should override global: DataDir = %v, want .project", cfg.DataDir)
	}
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("project TickInterval = %v, want 50ms", cfg.TickInterval)
	}
	if cfg.ShareBaseURL != "https://env.test" {
		t.Errorf("env should override files: ShareBaseURL = %v", cfg.ShareBaseURL)
	}
	if cfg.Persist {
		t.Error("env CELEBTOUR_PERSIST=false not applied")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)

	if err := os.WriteFile(ProjectPath(), []byte("tick_increment: 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if _, err := Load(); err == nil {
		t.Error("Load() with tick_increment 0 should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero upload limit", func(c *Config) { c.MaxUploadBytes = 0 }, true},
		{"negative tick", func(c *Config) { c.TickInterval = -time.Millisecond }, true},
		{"increment above 100", func(c *Config) { c.TickIncrement = 101 }, true},
		{"negative call delay", func(c *Config) { c.CallDelay = -time.Second }, true},
		{"zero call delay", func(c *Config) { c.CallDelay = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
