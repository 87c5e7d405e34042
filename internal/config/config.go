// Public domain.

// Package config loads natal settings from defaults, an optional YAML file
// and NATAL_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/soniakeys/natal/houses"
)

// DefaultFile is read when no config file is named.  It may be absent.
const DefaultFile = "natal.yaml"

// Config holds application configuration.
type Config struct {
	HouseSystem  string        `yaml:"house_system" default:"placidus" validate:"required"`
	MinorAspects bool          `yaml:"minor_aspects"`
	Timeout      time.Duration `yaml:"timeout" default:"2s" validate:"gt=0"`
	Workers      int           `yaml:"workers" validate:"gte=0"` // 0 selects GOMAXPROCS

	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`

	HTTP struct {
		Addr        string   `yaml:"addr" default:":8080" validate:"required"`
		CORSOrigins []string `yaml:"cors_origins" default:"[\"*\"]"`
	} `yaml:"http"`
}

var validate = validator.New()

// Default returns the configuration with only defaults applied.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(err)
	}
	return &c
}

// Load builds the configuration.
//
// A named path must exist.  An empty path reads DefaultFile if present.
// Variables from a .env file in the working directory are added to the
// environment without replacing variables already set.  A .env file that
// exists but cannot be read or parsed is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	c := Default()
	file, required := path, true
	if file == "" {
		file, required = DefaultFile, false
	}
	b, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", file, err)
		}
	case required || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", key, err)
			}
			*dst = b
		}
		return nil
	}
	str("NATAL_HOUSE_SYSTEM", &c.HouseSystem)
	str("NATAL_LOG_LEVEL", &c.Log.Level)
	str("NATAL_HTTP_ADDR", &c.HTTP.Addr)
	if v := getenv("NATAL_CORS_ORIGINS"); v != "" {
		c.HTTP.CORSOrigins = strings.Split(v, ",")
	}
	if err := boolean("NATAL_MINOR_ASPECTS", &c.MinorAspects); err != nil {
		return err
	}
	if err := boolean("NATAL_LOG_PRETTY", &c.Log.Pretty); err != nil {
		return err
	}
	if v := getenv("NATAL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("NATAL_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := getenv("NATAL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NATAL_WORKERS: %w", err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks field constraints and the house system name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	_, err := c.System()
	return err
}

// System returns the configured house system.
func (c *Config) System() (houses.System, error) {
	return houses.ParseSystem(c.HouseSystem)
}

// WorkerCount returns Workers, or GOMAXPROCS when Workers is zero.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
