// Package config loads the worker-mgr configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const envPrefix = "WORKER_MGR_"

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

type StoreConfig struct {
	// Driver is "mysql" or "sqlite".
	Driver     string   `yaml:"driver"`
	SQLitePath string   `yaml:"sqlite_path"`
	MySQL      DBConfig `yaml:"mysql"`
}

type DockerConfig struct {
	// Host overrides DOCKER_HOST when set.
	Host string `yaml:"host"`
}

type SyncConfig struct {
	Interval    time.Duration `yaml:"interval"`
	Concurrency int           `yaml:"concurrency"`
}

type Config struct {
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Docker DockerConfig `yaml:"docker"`
	Store  StoreConfig  `yaml:"store"`
	// Redis is optional; an empty host disables distributed locking and the
	// shared report cache.
	Redis DBConfig   `yaml:"redis"`
	Sync  SyncConfig `yaml:"sync"`
	Stats struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"stats"`
	Lifecycle struct {
		StopTimeout time.Duration `yaml:"stop_timeout"`
	} `yaml:"lifecycle"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.HTTP.Addr = ":8082"
	cfg.Store.Driver = "sqlite"
	cfg.Store.SQLitePath = "worker-mgr.db"
	cfg.Store.MySQL.Port = 3306
	cfg.Redis.Port = 6379
	cfg.Sync.Interval = 10 * time.Second
	cfg.Sync.Concurrency = 4
	cfg.Stats.Timeout = 10 * time.Second
	cfg.Lifecycle.StopTimeout = 10 * time.Second
	return cfg
}

// Load reads path (if non-empty) over the defaults, then applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"LOG_LEVEL":      &c.Log.Level,
		"HTTP_ADDR":      &c.HTTP.Addr,
		"DOCKER_HOST":    &c.Docker.Host,
		"STORE_DRIVER":   &c.Store.Driver,
		"SQLITE_PATH":    &c.Store.SQLitePath,
		"MYSQL_HOST":     &c.Store.MySQL.Host,
		"MYSQL_USER":     &c.Store.MySQL.User,
		"MYSQL_PASSWORD": &c.Store.MySQL.Password,
		"MYSQL_DATABASE": &c.Store.MySQL.Database,
		"REDIS_HOST":     &c.Redis.Host,
		"REDIS_PASSWORD": &c.Redis.Password,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MYSQL_PORT":       &c.Store.MySQL.Port,
		"REDIS_PORT":       &c.Redis.Port,
		"SYNC_CONCURRENCY": &c.Sync.Concurrency,
	}
	for key, dst := range ints {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("env %s%s: %w", envPrefix, key, err)
			}
			*dst = n
		}
	}

	durations := map[string]*time.Duration{
		"SYNC_INTERVAL": &c.Sync.Interval,
		"STATS_TIMEOUT": &c.Stats.Timeout,
		"STOP_TIMEOUT":  &c.Lifecycle.StopTimeout,
	}
	for key, dst := range durations {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("env %s%s: %w", envPrefix, key, err)
			}
			*dst = d
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
		}
	case "mysql":
		if c.Store.MySQL.Host == "" || c.Store.MySQL.Database == "" {
			return fmt.Errorf("store.mysql.host and store.mysql.database are required for the mysql driver")
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Sync.Concurrency < 1 {
		return fmt.Errorf("sync.concurrency must be at least 1")
	}
	if c.Sync.Interval <= 0 {
		return fmt.Errorf("sync.interval must be positive")
	}
	if c.Stats.Timeout <= 0 {
		return fmt.Errorf("stats.timeout must be positive")
	}
	return nil
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}
