package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Socdash SocdashConfig `yaml:"socdash"`
}

// SocdashConfig is the project configuration.
type SocdashConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Hunt    HuntConfig    `yaml:"hunt"`
	Feed    FeedConfig    `yaml:"feed"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HuntConfig controls the simulated hunt backend.
type HuntConfig struct {
	LatencyMin time.Duration `yaml:"latency_min"`
	LatencyMax time.Duration `yaml:"latency_max"`
	// EmptyProbability is a pointer so an explicit 0 survives ApplyDefaults.
	EmptyProbability *float64 `yaml:"empty_probability"`
	MaxFallback      int      `yaml:"max_fallback"`
	Seed             uint64   `yaml:"seed"`
	Catalog          string   `yaml:"catalog"` // empty uses the built-in catalogue
}

// FeedConfig controls the domain refresh feed.
type FeedConfig struct {
	Enabled bool        `yaml:"enabled"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig controls a Redis list connection.
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	Key          string        `yaml:"key"`
	BlockTimeout time.Duration `yaml:"block_timeout"`
	MaxLen       int64         `yaml:"max_len"` // output only; 0 keeps every entry
}

// OutputConfig controls where finished hunts are recorded.
type OutputConfig struct {
	Mode  string           `yaml:"mode"` // none|file|http|redis
	File  FileOutputConfig `yaml:"file"`
	HTTP  HTTPOutputConfig `yaml:"http"`
	Redis RedisConfig      `yaml:"redis"`
}

// FileOutputConfig config for local JSON output.
type FileOutputConfig struct {
	Path string `yaml:"path"`
}

// HTTPOutputConfig config for remote output.
type HTTPOutputConfig struct {
	URL     string            `yaml:"url"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// LoggingConfig controls logging output.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	File    string `yaml:"file"`
	Console bool   `yaml:"console"`
}

// LoadConfig reads and parses a YAML config file and fills in defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	c := &cfg.Socdash

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Hunt.LatencyMin <= 0 {
		c.Hunt.LatencyMin = 1 * time.Second
	}
	if c.Hunt.LatencyMax <= 0 {
		c.Hunt.LatencyMax = 4 * time.Second
	}
	if c.Hunt.EmptyProbability == nil {
		p := 0.2
		c.Hunt.EmptyProbability = &p
	}
	if c.Hunt.MaxFallback <= 0 {
		c.Hunt.MaxFallback = 3
	}

	applyRedisDefaults(&c.Feed.Redis, "socdash_feed")

	if c.Output.Mode == "" {
		c.Output.Mode = "none"
	}
	if c.Output.File.Path == "" {
		c.Output.File.Path = "output/hunts.jsonl"
	}
	if c.Output.HTTP.Timeout <= 0 {
		c.Output.HTTP.Timeout = 5 * time.Second
	}
	applyRedisDefaults(&c.Output.Redis, "socdash_hunts")

	if c.Metrics.Listen == "" {
		c.Metrics.Listen = ":9464"
	}
}

func applyRedisDefaults(r *RedisConfig, key string) {
	if r.Addr == "" {
		r.Addr = "127.0.0.1:6379"
	}
	if r.Key == "" {
		r.Key = key
	}
	if r.BlockTimeout == 0 {
		r.BlockTimeout = 5 * time.Second
	}
}

// Validate rejects settings the session cannot run with.
func (c *Config) Validate() error {
	h := c.Socdash.Hunt
	if h.LatencyMax < h.LatencyMin {
		return fmt.Errorf("hunt.latency_max (%s) is below hunt.latency_min (%s)", h.LatencyMax, h.LatencyMin)
	}
	if h.EmptyProbability != nil && (*h.EmptyProbability < 0 || *h.EmptyProbability > 1) {
		return fmt.Errorf("hunt.empty_probability must be within [0,1], got %v", *h.EmptyProbability)
	}
	switch c.Socdash.Output.Mode {
	case "none", "file", "redis":
	case "http":
		if c.Socdash.Output.HTTP.URL == "" {
			return fmt.Errorf("output.http.url is required for http mode")
		}
	default:
		return fmt.Errorf("unsupported output mode %q", c.Socdash.Output.Mode)
	}
	return nil
}
