// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultMaxUploadBytes is the largest photo accepted by the upload page.
const DefaultMaxUploadBytes = 5 * 1024 * 1024

// Config holds all configuration values for celebtour.
type Config struct {
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
	DataDir        string        `mapstructure:"data_dir" yaml:"data_dir"`
	Persist        bool          `mapstructure:"persist" yaml:"persist"`
	CatalogFile    string        `mapstructure:"catalog_file" yaml:"catalog_file"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" yaml:"max_upload_bytes"`
	TickInterval   time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	TickIncrement  float64       `mapstructure:"tick_increment" yaml:"tick_increment"`
	CallDelay      time.Duration `mapstructure:"call_delay" yaml:"call_delay"`
	ShareBaseURL   string        `mapstructure:"share_base_url" yaml:"share_base_url"`
	DownloadsDir   string        `mapstructure:"downloads_dir" yaml:"downloads_dir"`
	EmailTemplate  string        `mapstructure:"email_template" yaml:"email_template"`
}

// envKeys lists every key bound to a CELEBTOUR_ environment variable.
var envKeys = []string{
	"log_level",
	"log_file",
	"data_dir",
	"persist",
	"catalog_file",
	"max_upload_bytes",
	"tick_interval",
	"tick_increment",
	"call_delay",
	"share_base_url",
	"downloads_dir",
	"email_template",
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		LogLevel:       "info",
		DataDir:        ".celebtour",
		Persist:        true,
		MaxUploadBytes: DefaultMaxUploadBytes,
		TickInterval:   100 * time.Millisecond,
		TickIncrement:  0.5,
		CallDelay:      time.Second,
		ShareBaseURL:   "https://celebtour.app",
		DownloadsDir:   defaultDownloadsDir(),
	}
}

// Load loads configuration with full precedence:
// ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("celebtour")

	def := Default()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("data_dir", def.DataDir)
	v.SetDefault("persist", def.Persist)
	v.SetDefault("catalog_file", def.CatalogFile)
	v.SetDefault("max_upload_bytes", def.MaxUploadBytes)
	v.SetDefault("tick_interval", def.TickInterval)
	v.SetDefault("tick_increment", def.TickIncrement)
	v.SetDefault("call_delay", def.CallDelay)
	v.SetDefault("share_base_url", def.ShareBaseURL)
	v.SetDefault("downloads_dir", def.DownloadsDir)
	v.SetDefault("email_template", def.EmailTemplate)

	v.SetEnvPrefix("CELEBTOUR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit bindings so typed values (bool, duration) parse from env
	for _, key := range envKeys {
		if err := v.BindEnv(key, "CELEBTOUR_"+strings.ToUpper(key)); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the timers and upload checks cannot work with.
func (c *Config) Validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.TickIncrement <= 0 || c.TickIncrement > 100 {
		return fmt.Errorf("tick_increment must be in (0, 100], got %g", c.TickIncrement)
	}
	if c.CallDelay < 0 {
		return fmt.Errorf("call_delay must not be negative, got %s", c.CallDelay)
	}
	return nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/celebtour/celebtour.yml or $XDG_CONFIG_HOME/celebtour/celebtour.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "celebtour", "celebtour.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "celebtour", "celebtour.yml")
}

// ProjectPath returns the project-local config path.
func ProjectPath() string {
	return "celebtour.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func defaultDownloadsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Downloads")
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
