package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	Database DatabaseConfig `yaml:"database"`
	Session  SessionConfig  `yaml:"session"`
	Cache    CacheConfig    `yaml:"cache"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// BackendConfig points at the SIVIACK REST API the portal talks to.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type SessionConfig struct {
	CookieName string        `yaml:"cookie_name"`
	TTL        time.Duration `yaml:"ttl"`
}

// CacheConfig controls the master-data refresher schedule (cron syntax).
type CacheConfig struct {
	RefreshSpec string `yaml:"refresh_spec"`
}

var AppConfig *Config

func Load(path string) (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: 8990,
			Host: "0.0.0.0",
		},
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Path: "./data/siviack-portal.db",
		},
		Session: SessionConfig{
			CookieName: "siviack_session",
			TTL:        12 * time.Hour,
		},
		Cache: CacheConfig{
			RefreshSpec: "@every 10m",
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			AppConfig = config
			return config, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// Override with environment variables
	if port := os.Getenv("SIVIACK_PORTAL_PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil {
			config.Server.Port = p
		}
	}
	if api := os.Getenv("SIVIACK_API_URL"); api != "" {
		config.Backend.BaseURL = api
	}

	AppConfig = config
	return config, nil
}
