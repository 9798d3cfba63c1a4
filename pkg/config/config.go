package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultServerURL = "http://127.0.0.1:5000"
	DefaultAskPath   = "/ask"
	DefaultUserAgent = "scandoc-cli/1.0"

	// Environment overrides, applied after the config file.
	EnvServerURL = "SCANDOC_SERVER_URL"
	EnvLogLevel  = "SCANDOC_LOG_LEVEL"
	EnvLogFile   = "SCANDOC_LOG_FILE"
)

// Config represents the application configuration
type Config struct {
	ServerURL string `json:"server_url"`
	AskPath   string `json:"ask_path"`
	UserAgent string `json:"user_agent"`
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	LogFormat string `json:"log_format"`
	Theme     string `json:"theme"` // "default", "cyan" or "dark"
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		ServerURL: DefaultServerURL,
		AskPath:   DefaultAskPath,
		UserAgent: DefaultUserAgent,
		LogLevel:  "info",
		LogFile:   "",
		LogFormat: "json",
		Theme:     "default",
	}
}

// Load loads configuration from the specified path
// If the file doesn't exist, creates one with default values
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Unmarshal over defaults so keys missing from older files keep sane values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from envFile into the process environment.
// A missing file is not an error. Variables already set are left alone.
func LoadDotEnv(envFile string) error {
	if strings.TrimSpace(envFile) == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

// ApplyEnv returns cfg with environment overrides applied.
func ApplyEnv(cfg Config, getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvServerURL)); v != "" {
		cfg.ServerURL = v
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.ServerURL))
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server_url must use http or https, got: %q", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("server_url must include a host, got: %q", c.ServerURL)
	}

	if !strings.HasPrefix(c.AskPath, "/") {
		return fmt.Errorf("ask_path must start with '/', got: %q", c.AskPath)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log_level: %s", c.LogLevel)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("unsupported log_format: %s", c.LogFormat)
	}

	switch c.Theme {
	case "", "default", "cyan", "dark":
	default:
		return fmt.Errorf("unsupported theme: %s", c.Theme)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scandoc/config.json"
	}
	return filepath.Join(homeDir, ".scandoc", "config.json")
}
