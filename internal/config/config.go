package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines c4board configuration shared by the server and the CLI.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Auth   AuthConfig   `yaml:"auth"`
	Client ClientConfig `yaml:"client"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// RateLimit caps requests per second per client. Zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AuthConfig struct {
	// Token, when set, is required as a bearer token on MCP traffic.
	Token string `yaml:"token"`
}

type ClientConfig struct {
	// ServerURL is the API base used by CLI commands that talk to a running
	// server (backup, restore, status).
	ServerURL string `yaml:"server_url"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8480,
		},
		DB: DBConfig{
			Path: defaultDBPath(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Client: ClientConfig{
			ServerURL: "http://127.0.0.1:8480",
		},
	}

	if path := os.Getenv("C4BOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("C4BOARD_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("C4BOARD_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid C4BOARD_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if limitStr := os.Getenv("C4BOARD_SERVER_RATE_LIMIT"); limitStr != "" {
		limit, err := strconv.ParseFloat(limitStr, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid C4BOARD_SERVER_RATE_LIMIT: %w", err)
		}
		cfg.Server.RateLimit = limit
	}
	if dbPath := os.Getenv("C4BOARD_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("C4BOARD_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("C4BOARD_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if token := os.Getenv("C4BOARD_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if serverURL := os.Getenv("C4BOARD_SERVER_URL"); serverURL != "" {
		cfg.Client.ServerURL = serverURL
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

// defaultDBPath places the database under the user's data directory, falling
// back to the working directory when no home is available.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "c4board.db"
	}
	return filepath.Join(home, ".local", "share", "c4board", "c4board.db")
}
