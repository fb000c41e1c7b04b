package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		GlobalDuration string `yaml:"global_duration"`
		TickInterval   string `yaml:"tick_interval"`
		DefaultBank    string `yaml:"default_bank"`
		BankTTL        string `yaml:"bank_ttl"`
	} `yaml:"quiz"`
	Log struct {
		Level   string `yaml:"level"`
		NoColor bool   `yaml:"no_color"`
	} `yaml:"log"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but treats a missing file as an empty config.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}

// GlobalSeconds is the whole-session budget in whole seconds.
func (c Config) GlobalSeconds() int {
	return int(Duration(c.Quiz.GlobalDuration, 10*time.Minute) / time.Second)
}

// BankID is the bank served when a client does not name one.
func (c Config) BankID() string {
	if c.Quiz.DefaultBank == "" {
		return "general-knowledge"
	}
	return c.Quiz.DefaultBank
}
