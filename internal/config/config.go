package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds photo search API configuration
type APIConfig struct {
	Key         string        `mapstructure:"key"`
	BaseURL     string        `mapstructure:"base_url"`
	PerPage     int           `mapstructure:"per_page"`
	Timeout     time.Duration `mapstructure:"timeout"`
	ImageType   string        `mapstructure:"image_type"`  // "photo", "illustration", "vector", "all"
	Orientation string        `mapstructure:"orientation"` // "horizontal", "vertical", "all"
	SafeSearch  bool          `mapstructure:"safesearch"`
}

// UIConfig holds gallery configuration
type UIConfig struct {
	Trigger        string        `mapstructure:"trigger"`       // "manual" or "auto"
	PrefetchRows   int           `mapstructure:"prefetch_rows"` // sentinel distance from the end of the gallery
	EndNoticeDelay time.Duration `mapstructure:"end_notice_delay"` // 0 or negative shows it at once
}

// HistoryConfig holds search history configuration
type HistoryConfig struct {
	File  string `mapstructure:"file"` // empty keeps history in memory only
	Limit int    `mapstructure:"limit"`
}

// ViewerConfig holds the external image viewer
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // empty uses the system opener
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
		API: APIConfig{
			BaseURL:     "https://pixabay.com/api/",
			PerPage:     40,
			Timeout:     15 * time.Second,
			ImageType:   "photo",
			Orientation: "horizontal",
			SafeSearch:  true,
		},
		UI: UIConfig{
			Trigger:        "manual",
			PrefetchRows:   4,
			EndNoticeDelay: 4100 * time.Millisecond,
		},
		History: HistoryConfig{
			File:  filepath.Join(defaultDataPath(), "history.db"),
			Limit: 50,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "pixa.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the data directory for logs and history
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pixa")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "pixa")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "pixa")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "pixa")
	}
}

// newViper sets up a viper instance with defaults, search paths and env overrides
func newViper(cfg *Config, dirs ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Defaults are registered so env overrides work for every key
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.per_page", cfg.API.PerPage)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.image_type", cfg.API.ImageType)
	v.SetDefault("api.orientation", cfg.API.Orientation)
	v.SetDefault("api.safesearch", cfg.API.SafeSearch)
	v.SetDefault("ui.trigger", cfg.UI.Trigger)
	v.SetDefault("ui.prefetch_rows", cfg.UI.PrefetchRows)
	v.SetDefault("ui.end_notice_delay", cfg.UI.EndNoticeDelay)
	v.SetDefault("history.file", cfg.History.File)
	v.SetDefault("history.limit", cfg.History.Limit)
	v.SetDefault("viewer.command", cfg.Viewer.Command)
	v.SetDefault("viewer.args", cfg.Viewer.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// PIXA_API_KEY -> api.key
	v.SetEnvPrefix("PIXA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from the .env file, the config file and the
// environment
func LoadConfig() (*Config, error) {
	envFile := os.Getenv("PIXA_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := loadDotEnv(envFile); err != nil {
		return nil, err
	}
	return loadFrom(defaultConfigPath(), ".")
}

// loadDotEnv exports the variables of a dotenv file. Variables already set in
// the environment win. A missing file is fine.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error reading env file: %w", err)
	}
	return nil
}

func loadFrom(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg, dirs...)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	if c.API.PerPage < 3 || c.API.PerPage > 200 {
		return fmt.Errorf("api.per_page must be between 3 and 200, got %d", c.API.PerPage)
	}
	switch strings.ToLower(c.UI.Trigger) {
	case "", "manual", "auto":
	default:
		return fmt.Errorf("ui.trigger must be manual or auto, got %q", c.UI.Trigger)
	}
	if c.UI.PrefetchRows < 0 {
		return fmt.Errorf("ui.prefetch_rows must not be negative, got %d", c.UI.PrefetchRows)
	}
	return nil
}

// NoticeDelay returns the end-of-search delay for paging.Options, where only
// a negative value means immediate
func (u UIConfig) NoticeDelay() time.Duration {
	if u.EndNoticeDelay <= 0 {
		return -1
	}
	return u.EndNoticeDelay
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.API.Key) != ""
}

// SaveAPIKey writes the API key into the config file, keeping other settings
func SaveAPIKey(key string) error {
	return saveAPIKeyTo(defaultConfigPath(), key)
}

func saveAPIKeyTo(configPath, key string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	configFile := filepath.Join(configPath, "config.yaml")
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.Set("api.key", key)
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
