package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SourceType identifies the document server backend
type SourceType string

const (
	SourceTypeExamVault SourceType = "examvault"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Sync    SyncConfig    `mapstructure:"sync"`
	Probe   ProbeConfig   `mapstructure:"probe"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds document server configuration
type ServerConfig struct {
	Type     SourceType    `mapstructure:"type"`
	URL      string        `mapstructure:"url"`       // Base URL serving GET /files
	Timeout  time.Duration `mapstructure:"timeout"`   // Per-request timeout
	RetryMax int           `mapstructure:"retry_max"` // Retries after the first attempt
}

// SyncConfig holds list synchronization settings
type SyncConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// ProbeConfig holds size probe settings
type ProbeConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CacheConfig holds local snapshot settings
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty disables persistence
}

// ViewerConfig holds the external PDF viewer configuration
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default handler
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Type:     SourceTypeExamVault,
			URL:      "https://upload-pdf-g77m.onrender.com",
			Timeout:  30 * time.Second,
			RetryMax: 2,
		},
		Sync: SyncConfig{
			PageSize: 10,
		},
		Probe: ProbeConfig{
			Timeout:   15 * time.Second,
			UserAgent: "Mozilla/5.0 (compatible; FileSizeBot/1.0)",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "examvault", "examvault.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "examvault", "examvault.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "examvault")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "examvault")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "examvault", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "examvault", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.GetViper(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides (EXAMVAULT_SERVER_URL, ...)
	v.SetEnvPrefix("EXAMVAULT")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	bindEnvKeys(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// configKeys lists every key so AutomaticEnv applies to Unmarshal
var configKeys = []string{
	"server.type", "server.url", "server.timeout", "server.retry_max",
	"sync.page_size",
	"probe.timeout", "probe.user_agent",
	"cache.dir",
	"viewer.command", "viewer.args",
	"logging.file", "logging.level",
}

var envKeyReplacer = strings.NewReplacer(".", "_")

func bindEnvKeys(v *viper.Viper) {
	for _, k := range configKeys {
		_ = v.BindEnv(k)
	}
}

// Validate reports configuration values the synchronizer cannot run with
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server.url is required")
	}
	if c.Sync.PageSize <= 0 {
		return fmt.Errorf("sync.page_size must be positive, got %d", c.Sync.PageSize)
	}
	if c.Server.RetryMax < 0 {
		return fmt.Errorf("server.retry_max must not be negative")
	}
	return nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.GetViper(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, configPath string) error {
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("server.type", cfg.Server.Type)
	v.Set("server.url", cfg.Server.URL)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("server.retry_max", cfg.Server.RetryMax)

	v.Set("sync.page_size", cfg.Sync.PageSize)

	v.Set("probe.timeout", cfg.Probe.Timeout.String())
	v.Set("probe.user_agent", cfg.Probe.UserAgent)

	v.Set("cache.dir", cfg.Cache.Dir)

	v.Set("viewer.command", cfg.Viewer.Command)
	v.Set("viewer.args", cfg.Viewer.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}
