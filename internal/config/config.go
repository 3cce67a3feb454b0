package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Port              string `yaml:"port"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

type Coinbase struct {
	// Endpoint is the spot price URL template; "{}" is replaced by the code.
	Endpoint          string `yaml:"endpoint"`
	LinkBase          string `yaml:"link_base"`
	RequestTimeoutSec int    `yaml:"request_timeout_sec"`
}

type Logging struct {
	Level string `yaml:"level"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	Coinbase Coinbase `yaml:"coinbase"`
	Logging  Logging  `yaml:"logging"`
}

// DefaultEnvFile is loaded by LoadEnvFile when no filenames are given.
const DefaultEnvFile = ".env"

// DefaultPath is read when Load is given an empty path and the file exists.
const DefaultPath = "config.yaml"

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 15},
		Coinbase: Coinbase{
			Endpoint:          "https://api.coinbase.com/v2/prices/{}-USD/spot",
			LinkBase:          "https://coinbase.com/price",
			RequestTimeoutSec: 10,
		},
		Logging: Logging{Level: "warn"},
	}
}

// Load reads YAML config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadEnvFile exports variables from dotenv files without overriding ones
// already set. A missing file is not an error; a malformed one is.
func LoadEnvFile(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{DefaultEnvFile}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func (c Config) validate() error {
	if !strings.Contains(c.Coinbase.Endpoint, "{}") {
		return fmt.Errorf("coinbase.endpoint %q has no {} placeholder", c.Coinbase.Endpoint)
	}
	if c.Coinbase.RequestTimeoutSec <= 0 {
		return fmt.Errorf("coinbase.request_timeout_sec must be positive, got %d", c.Coinbase.RequestTimeoutSec)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if x, ok := envInt("SERVER_TIMEOUT_SEC"); ok && x > 0 {
		cfg.Server.RequestTimeoutSec = x
	}
	if v := os.Getenv("COINPRICES_ENDPOINT"); v != "" {
		cfg.Coinbase.Endpoint = v
	}
	if v := os.Getenv("COINPRICES_LINK_BASE"); v != "" {
		cfg.Coinbase.LinkBase = v
	}
	if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 {
		cfg.Coinbase.RequestTimeoutSec = x
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	x, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return x, true
}
