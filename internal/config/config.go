// Package config loads AskSage credentials and endpoints from the
// environment and the user's local credential file.
//
// Priority order (highest to lowest):
//  1. ASKSAGE_* environment variables
//  2. ~/.asksage/config.json
//
// A missing or unreadable credential file is not an error; the environment
// alone is enough. Missing credentials surface as a MissingCredentialsError
// unless test mode is on.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "ASKSAGE"

// Config holds the resolved AskSage connection settings.
type Config struct {
	Email         string `mapstructure:"email"`
	APIKey        string `mapstructure:"api_key"`
	UserBaseURL   string `mapstructure:"user_base_url"`
	ServerBaseURL string `mapstructure:"server_base_url"`

	// TestMode selects the mock client instead of the HTTP client.
	TestMode bool `mapstructure:"-"`
}

// MissingCredentialsError is returned when neither the environment nor the
// credential file provides an email and API key.
type MissingCredentialsError struct {
	Path string
}

func (e *MissingCredentialsError) Error() string {
	return "AskSage credentials not found: set ASKSAGE_EMAIL and ASKSAGE_API_KEY, " +
		"create " + e.Path + " with your credentials, " +
		"or set ASKSAGE_TEST_MODE=1 to use the mock client"
}

// Path returns the location of the user's credential file.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".asksage", "config.json")
	}
	return filepath.Join(home, ".asksage", "config.json")
}

// Load resolves the configuration. It never fails on a bad credential
// file; it fails only when credentials end up missing outside test mode.
func Load() (*Config, error) {
	return load(Path())
}

// load is the file-path-injectable body of Load, used by tests.
func load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"email", "api_key", "user_base_url", "server_base_url"} {
		_ = v.BindEnv(key)
	}

	v.SetConfigFile(path)
	v.SetConfigType("json")
	// A corrupt or absent file degrades to env-only configuration.
	_ = v.ReadInConfig()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.TestMode = isTestMode(os.Getenv(envPrefix + "_TEST_MODE"))
	if cfg.TestMode {
		return &cfg, nil
	}

	if cfg.Email == "" || cfg.APIKey == "" {
		return nil, &MissingCredentialsError{Path: path}
	}
	return &cfg, nil
}

func isTestMode(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
