package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ServerHost         string `toml:"server_host"`
	UseTLS             bool   `toml:"use_tls"`
	IdleTimeoutSeconds int    `toml:"idle_timeout_seconds"`
	ShowThinking       bool   `toml:"show_thinking"`
}

func defaultConfig() Config {
	return Config{
		ServerHost:         "localhost:8000",
		UseTLS:             false,
		IdleTimeoutSeconds: 120,
		ShowThinking:       true,
	}
}

func configPath() string {
	if path := os.Getenv("VIDCHAT_CONFIG"); path != "" {
		return path
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "vidchat", "config.toml")
}

// LoadConfig reads the TOML config file when present and applies environment
// overrides on top. A missing file is not an error; defaults apply.
func LoadConfig() (Config, error) {
	config := defaultConfig()

	if path := configPath(); path != "" {
		if _, err := toml.DecodeFile(path, &config); err != nil && !os.IsNotExist(err) {
			return config, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	config.applyEnvOverrides()
	return config, nil
}

func (c *Config) applyEnvOverrides() {
	if host := os.Getenv("VIDCHAT_SERVER"); host != "" {
		c.ServerHost = host
	}
	if tls := os.Getenv("VIDCHAT_TLS"); tls != "" {
		c.UseTLS = tls == "true" || tls == "1"
	}
	if timeout := os.Getenv("VIDCHAT_IDLE_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil {
			c.IdleTimeoutSeconds = seconds
		}
	}
}

// BaseURL is the HTTP endpoint for upload and search.
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.UseTLS {
		scheme = "https"
	}
	return scheme + "://" + c.ServerHost
}
