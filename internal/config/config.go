package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Notify NotifyConfig `yaml:"notify"`
	Admin  AdminConfig  `yaml:"admin"`
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

// NotifyConfig controls status email delivery. With Enabled false the server
// logs messages instead of sending them.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	Region  string `yaml:"region"`
	Sender  string `yaml:"sender"`
}

// AdminConfig optionally seeds one staff account at startup.
type AdminConfig struct {
	Email string `yaml:"email"`
	Token string `yaml:"token"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "admissions.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Notify: NotifyConfig{
			Region: "us-east-1",
		},
	}

	if path := os.Getenv("ADMISSIONS_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ADMISSIONS_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ADMISSIONS_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ADMISSIONS_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("ADMISSIONS_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("ADMISSIONS_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if enabled := os.Getenv("ADMISSIONS_NOTIFY_ENABLED"); enabled != "" {
		cfg.Notify.Enabled = enabled == "true" || enabled == "1"
	}
	if region := os.Getenv("ADMISSIONS_NOTIFY_REGION"); region != "" {
		cfg.Notify.Region = region
	}
	if sender := os.Getenv("ADMISSIONS_NOTIFY_SENDER"); sender != "" {
		cfg.Notify.Sender = sender
	}
	if email := os.Getenv("ADMISSIONS_ADMIN_EMAIL"); email != "" {
		cfg.Admin.Email = email
	}
	if token := os.Getenv("ADMISSIONS_ADMIN_TOKEN"); token != "" {
		cfg.Admin.Token = token
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
