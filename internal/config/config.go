package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileEnv names the environment variable holding an optional config
// file path (yaml, json or toml).
const ConfigFileEnv = "KONDATE_CONFIG"

type Config struct {
	ListenAddr      string
	DBPath          string
	SuggestBackend  string
	SuggestTimeout  time.Duration
	ClaudeAPIKey    string
	ClaudeModel     string
	OllamaHost      string
	OllamaModel     string
	IngredientLabel string
	LogLevel        string
	LogFile         string
	LogFormat       string
}

// Load reads the configuration from defaults, the optional config file and
// the process environment, in increasing order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		ListenAddr:      v.GetString("listen_addr"),
		DBPath:          v.GetString("db_path"),
		SuggestBackend:  v.GetString("suggest_backend"),
		SuggestTimeout:  v.GetDuration("suggest_timeout"),
		ClaudeAPIKey:    v.GetString("claude_api_key"),
		ClaudeModel:     v.GetString("claude_model"),
		OllamaHost:      v.GetString("ollama_host"),
		OllamaModel:     v.GetString("ollama_model"),
		IngredientLabel: v.GetString("ingredient_label"),
		LogLevel:        v.GetString("log_level"),
		LogFile:         v.GetString("log_file"),
		LogFormat:       v.GetString("log_format"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("db_path", "food_items.db")
	v.SetDefault("suggest_backend", "claude")
	v.SetDefault("suggest_timeout", "60s")
	v.SetDefault("claude_api_key", "")
	v.SetDefault("claude_model", "claude-sonnet-4-5")
	v.SetDefault("ollama_host", "http://localhost:11434")
	v.SetDefault("ollama_model", "llama3.1")
	v.SetDefault("ingredient_label", "使用食材:")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("log_format", "json")
}

func (c *Config) validate() error {
	var errs []error
	switch c.SuggestBackend {
	case "claude", "ollama":
	default:
		errs = append(errs, fmt.Errorf("SUGGEST_BACKEND must be claude or ollama, got %q", c.SuggestBackend))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if c.SuggestTimeout <= 0 {
		errs = append(errs, errors.New("SUGGEST_TIMEOUT must be a positive duration such as 60s"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	if c.IngredientLabel == "" {
		errs = append(errs, errors.New("INGREDIENT_LABEL must not be empty"))
	}
	return errors.Join(errs...)
}
