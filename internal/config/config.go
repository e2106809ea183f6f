package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every section a run mode may read.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Database  DatabaseConfig  `yaml:"database"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Inventory InventoryConfig `yaml:"inventory"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig points the billing terminal at the sales backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
	Prefetch int    `yaml:"prefetch"`
}

// TerminalConfig.Timezone is the IANA zone receipts are printed in; empty
// means local time.
type TerminalConfig struct {
	Port     int    `yaml:"port"`
	Timezone string `yaml:"timezone"`
}

// Location resolves Timezone, falling back to time.Local.
func (t TerminalConfig) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.Local, fmt.Errorf("terminal.timezone: %w", err)
	}
	return loc, nil
}

type InventoryConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// EnvAPIURL overrides api.base_url when set.
const EnvAPIURL = "POS_API_URL"

var ErrIncomplete = errors.New("config incomplete")

func Default() Config {
	return Config{
		API:       APIConfig{BaseURL: "http://localhost:3001", Timeout: 30 * time.Second},
		Database:  DatabaseConfig{Port: 5432, SSLMode: "disable"},
		RabbitMQ:  RabbitMQConfig{Port: 5672, VHost: "/", Prefetch: 1},
		Terminal:  TerminalConfig{Port: 3000},
		Inventory: InventoryConfig{Port: 3001},
		Log:       LogConfig{Level: "info"},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error:
// the defaults plus environment overrides are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("couldn't open the configuration file: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
	}

	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.RabbitMQ.VHost == "" {
		cfg.RabbitMQ.VHost = "/"
	}
	if cfg.RabbitMQ.Prefetch <= 0 {
		cfg.RabbitMQ.Prefetch = 1
	}
	return &cfg, nil
}

func (c *Config) ValidateAPI() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", ErrIncomplete)
	}
	return nil
}

func (c *Config) ValidateDatabase() error {
	if c.Database.Host == "" || c.Database.User == "" || c.Database.Database == "" {
		return fmt.Errorf("%w: database host/user/database", ErrIncomplete)
	}
	return nil
}

func (c *Config) ValidateRabbitMQ() error {
	if c.RabbitMQ.Host == "" || c.RabbitMQ.User == "" {
		return fmt.Errorf("%w: rabbitmq host/user", ErrIncomplete)
	}
	return nil
}
