package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces environment overrides, e.g.
// SHELFWATCH_SERVER__ADDRESS=:8081 sets server.address.
const envPrefix = "SHELFWATCH_"

type Config struct {
	Dataset DatasetConfig `json:"dataset"`
	Server  ServerConfig  `json:"server"`
	Metrics MetricsConfig `json:"metrics"`
	Logging LoggingConfig `json:"logging"`
	Sentry  SentryConfig  `json:"sentry"`
}

// DatasetConfig locates the delivery records file.
type DatasetConfig struct {
	// Path is the CSV file holding the delivery records.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *DatasetConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "data/store_logistics.csv"
	}
}

// Validate checks mandatory fields.
func (c DatasetConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("dataset path is required")
	}
	return nil
}

// ServerConfig holds the dashboard HTTP server settings.
type ServerConfig struct {
	Address string `json:"address"`
	// TableLimit caps the raw record rows embedded in a dashboard snapshot.
	TableLimit int `json:"table_limit"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.TableLimit == 0 {
		c.TableLimit = 200
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.TableLimit < 0 {
		return fmt.Errorf("table_limit must not be negative")
	}
	return nil
}

// Default returns a configuration with every default applied. It is used
// when no config file exists at the default location.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	c.Dataset.SetDefaults()
	c.Server.SetDefaults()
	c.Metrics.SetDefaults()
	c.Logging.SetDefaults()
}

func (c *Config) validate() error {
	if err := c.Dataset.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Metrics.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Load reads the configuration file at path, applies environment overrides
// and validates the result. Yaml and json files are supported.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(envPrefix, "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
