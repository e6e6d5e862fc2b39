package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration decodes yaml scalars like "250ms" as well as raw nanosecond
// integers.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents application configuration
type Config struct {
	App      AppConfig      `yaml:"app"`
	Server   ServerConfig   `yaml:"server"`
	Feed     FeedConfig     `yaml:"feed"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Log      LogConfig      `yaml:"log"`
}

// AppConfig represents application settings
type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
}

// ServerConfig represents HTTP listener settings. RateLimit is the sliding
// window for mutating requests and RateBurst the hits allowed inside it.
type ServerConfig struct {
	Addr      string   `yaml:"addr"`
	RateLimit Duration `yaml:"rate_limit"`
	RateBurst int      `yaml:"rate_burst"`
}

// FeedConfig represents the synthetic price feed settings
type FeedConfig struct {
	Interval Duration `yaml:"interval"`
}

// RedisConfig represents the session store connection. An empty addr keeps
// sessions in process memory.
type RedisConfig struct {
	Addr     string   `yaml:"addr"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTL      Duration `yaml:"ttl"`
}

// PostgresConfig represents the trade archive connection. An empty DSN
// disables archiving.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// LogConfig represents logging settings
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load loads configuration from a YAML file with env overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.loadEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) loadEnvOverrides() {
	if v := os.Getenv("QUILEX_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("QUILEX_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("QUILEX_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("QUILEX_PG_DSN"); v != "" {
		c.Postgres.DSN = v
	}
	if v := os.Getenv("QUILEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "quilex"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RateLimit <= 0 {
		c.Server.RateLimit = Duration(time.Second)
	}
	if c.Server.RateBurst <= 0 {
		c.Server.RateBurst = 10
	}
	if c.Feed.Interval <= 0 {
		c.Feed.Interval = Duration(time.Second)
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
