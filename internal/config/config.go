package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Tag    TagConfig    `yaml:"tag"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig carries the signing secret for session tokens and the two
// fixed credential tables. Moderators are checked before students on login.
type AuthConfig struct {
	JWTSecret  string       `yaml:"jwt_secret"`
	TokenTTL   int          `yaml:"token_ttl_minutes"`
	Moderators []Credential `yaml:"moderators"`
	Students   []Credential `yaml:"students"`
}

type Credential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// TagConfig configures the simulated tag responder used when platform
// tag hardware is unavailable.
type TagConfig struct {
	SimulatePayload string `yaml:"simulate_payload"`
	SimulateDelayMS int    `yaml:"simulate_delay_ms"`
}

// TokenLifetime returns the configured token TTL as a duration.
func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenTTL) * time.Minute
}

// SimulateDelay returns the simulated scan delay as a duration.
func (t TagConfig) SimulateDelay() time.Duration {
	return time.Duration(t.SimulateDelayMS) * time.Millisecond
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "tapspace.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Auth: AuthConfig{
			TokenTTL: 12 * 60,
		},
		Tag: TagConfig{
			SimulatePayload: "TAG-SIM",
			SimulateDelayMS: 500,
		},
	}

	if path := os.Getenv("TAPSPACE_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TAPSPACE_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TAPSPACE_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TAPSPACE_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("TAPSPACE_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TAPSPACE_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if secret := os.Getenv("TAPSPACE_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
