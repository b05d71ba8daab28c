// Package config loads server configuration from defaults, an optional YAML
// file, and environment variable overrides — in that order, so the
// environment always wins. Each binary loads the same Config shape and uses
// the fields it needs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the servers can be configured with.
type Config struct {
	Port        int    `yaml:"port"`
	DBPath      string `yaml:"db_path"`
	TemplateDir string `yaml:"template_dir"`

	Session struct {
		Secret   string        `yaml:"secret"`
		Lifetime time.Duration `yaml:"lifetime"`
	} `yaml:"session"`

	// API is the member API's fixed HTTP Basic credential pair.
	API struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"api"`
}

// Load builds a Config for one app.
//
// defaultDBPath supplies the per-app database filename (questions.db,
// food_log.db, members.db); path points at an optional YAML file (empty
// string skips the file entirely). Environment overrides:
//
//	PORT, DB_PATH, TEMPLATE_DIR, SESSION_SECRET, SESSION_LIFETIME,
//	API_USERNAME, API_PASSWORD
func Load(path string, defaultDBPath string) (*Config, error) {
	cfg := &Config{
		Port:        8080,
		DBPath:      defaultDBPath,
		TemplateDir: "web/templates",
	}
	cfg.Session.Lifetime = 7 * 24 * time.Hour

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		c.Port = port
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TEMPLATE_DIR"); v != "" {
		c.TemplateDir = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		c.Session.Secret = v
	}
	if v := os.Getenv("SESSION_LIFETIME"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid SESSION_LIFETIME %q: %w", v, err)
		}
		c.Session.Lifetime = d
	}
	if v := os.Getenv("API_USERNAME"); v != "" {
		c.API.Username = v
	}
	if v := os.Getenv("API_PASSWORD"); v != "" {
		c.API.Password = v
	}
	return nil
}
