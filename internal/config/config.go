package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const configFileName = "bloodlink_config.yaml"

// GeminiConfig configures the generated-text gateway. The API key comes
// from the environment (GEMINI_API_KEY), never from the config file; an
// empty key puts the gateway in fallback mode.
type GeminiConfig struct {
	Model string `yaml:"model"`
}

// SchedulingConfig configures the simulated booking backend
type SchedulingConfig struct {
	BackendLatencyMs int `yaml:"backendLatencyMs" validate:"min=0"`
}

// ChatConfig configures the chat session manager
type ChatConfig struct {
	AutoReplyDelayMs int `yaml:"autoReplyDelayMs" validate:"min=0"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Port           int    `yaml:"port" validate:"min=1,max=65535"`
	AllowedOrigins string `yaml:"allowedOrigins"`
}

// Config is the application configuration
type Config struct {
	Gemini     GeminiConfig     `yaml:"gemini"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	Chat       ChatConfig       `yaml:"chat"`
	Server     ServerConfig     `yaml:"server"`

	// GeminiAPIKey is populated from the environment after parsing
	GeminiAPIKey string `yaml:"-"`
}

// BackendLatency returns the booking backend latency as a duration
func (c *Config) BackendLatency() time.Duration {
	return time.Duration(c.Scheduling.BackendLatencyMs) * time.Millisecond
}

// AutoReplyDelay returns the chat auto-reply delay as a duration
func (c *Config) AutoReplyDelay() time.Duration {
	return time.Duration(c.Chat.AutoReplyDelayMs) * time.Millisecond
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Gemini:     GeminiConfig{Model: "gemini-2.5-flash"},
		Scheduling: SchedulingConfig{BackendLatencyMs: 1000},
		Chat:       ChatConfig{AutoReplyDelayMs: 2000},
		Server:     ServerConfig{Port: 8080, AllowedOrigins: "*"},
	}
}

// Load loads the configuration from bloodlink_config.yaml, looked up in the
// current directory first and then the user's home directory. A missing
// config file falls back to defaults. The Gemini API key is overlaid from
// the environment, with a .env file honored outside production.
func Load() (*Config, error) {
	var cfg *Config

	path, err := findConfigFile()
	if err != nil {
		cfg = Default()
	} else {
		cfg, err = LoadFromPath(path)
		if err != nil {
			return nil, err
		}
	}

	if os.Getenv("ENV") != "production" {
		_ = godotenv.Load()
	}
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	return cfg, nil
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in the current directory and
// the home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
