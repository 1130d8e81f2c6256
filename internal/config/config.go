package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() error {
	configFile := os.Getenv("USERSVC_CONFIG_FILE")
	if configFile == "" {
		configFile = "usersvc.yaml"
	}

	err := loadFromFile(configFile)
	if err == nil {
		log.Printf("Loaded config from file: %s", configFile)
		return nil
	}
	// only a missing file falls back to defaults; a broken one stops startup
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	log.Printf("Config file %s not found, using defaults", configFile)

	cfg := defaultConfig
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	_loaded = &cfg
	return nil
}

// LoadDefault installs the defaults without reading a file or the environment
func LoadDefault() {
	cfg := defaultConfig
	_loaded = &cfg
}

// loadFromFile loads configuration from a YAML file, then applies environment
// overrides. Unlike Load, a missing file is an error.
func loadFromFile(filename string) error {
	cfg, err := readFile(filename)
	if err != nil {
		return err
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	_loaded = &cfg
	return nil
}

func readFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults so unset keys keep their default value
	cfg := defaultConfig

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate checks the values that the rest of the service relies on
func (c *Config) Validate() error {
	switch c.Common.Users.IDStrategy {
	case "length", "sequence":
	default:
		return fmt.Errorf("invalid users.id_strategy %q: must be \"length\" or \"sequence\"", c.Common.Users.IDStrategy)
	}

	switch c.Common.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Common.Log.Level)
	}

	switch c.Common.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log.format %q: must be \"json\" or \"console\"", c.Common.Log.Format)
	}

	if c.Common.Http.Port <= 0 || c.Common.Http.Port > 65535 {
		return fmt.Errorf("invalid http.port %d", c.Common.Http.Port)
	}

	return nil
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			MaxRequestSize:  1048576,
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 30,
		},
		Users: usersConfig{
			SeedName:   "Firat",
			IDStrategy: "length",
		},
	},
}

type Common struct {
	Log   logConfig   `yaml:"log"`
	Http  httpConfig  `yaml:"http"`
	Users usersConfig `yaml:"users"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	MaxRequestSize  int64  `yaml:"max_request_size"`
	ReadTimeout     int    `yaml:"read_timeout"`     // seconds
	WriteTimeout    int    `yaml:"write_timeout"`    // seconds
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
}

// Addr returns the host:port the server listens on
func (c httpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type usersConfig struct {
	SeedName   string `yaml:"seed_name"`   // name of the user created at startup with id 1
	IDStrategy string `yaml:"id_strategy"` // "length" or "sequence"
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Users() usersConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Users
}

// Get returns the full configuration
func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

func applyEnvOverrides(cfg *Config) {
	if httpHost := os.Getenv("USERSVC_HTTP_HOST"); httpHost != "" {
		cfg.Common.Http.Host = httpHost
	}
	// PORT is honoured for platforms that inject it; the prefixed variable wins
	for _, key := range []string{"PORT", "USERSVC_HTTP_PORT"} {
		if httpPort := os.Getenv(key); httpPort != "" {
			if port, err := strconv.Atoi(httpPort); err == nil {
				cfg.Common.Http.Port = port
			}
		}
	}
	if maxSize := os.Getenv("USERSVC_HTTP_MAX_REQUEST_SIZE"); maxSize != "" {
		if size, err := strconv.ParseInt(maxSize, 10, 64); err == nil {
			cfg.Common.Http.MaxRequestSize = size
		}
	}

	if level := os.Getenv("USERSVC_LOG_LEVEL"); level != "" {
		cfg.Common.Log.Level = level
	}
	if format := os.Getenv("USERSVC_LOG_FORMAT"); format != "" {
		cfg.Common.Log.Format = format
	}

	if seed := os.Getenv("USERSVC_SEED_NAME"); seed != "" {
		cfg.Common.Users.SeedName = seed
	}
	if strategy := os.Getenv("USERSVC_ID_STRATEGY"); strategy != "" {
		cfg.Common.Users.IDStrategy = strategy
	}
}
