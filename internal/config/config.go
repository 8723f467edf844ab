package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultListenAddr    = ":8080"
	defaultDataDir       = "./data"
	defaultMetaFile      = "meta.json"
	defaultLogLevel      = "info"
	defaultGCTTLHours    = 24
	defaultGCIntervalMin = 30
)

type Config struct {
	ListenAddr    string `yaml:"listen_addr" json:"listen_addr"`
	DataDir       string `yaml:"data_dir" json:"data_dir"`
	MetaPath      string `yaml:"meta_path" json:"meta_path"`
	LogLevel      string `yaml:"log_level" json:"log_level"`
	GCTTLHours    int    `yaml:"gc_ttl_hours" json:"gc_ttl_hours"`
	GCIntervalMin int    `yaml:"gc_interval_min" json:"gc_interval_min"`
}

// Default возвращает конфигурацию по умолчанию.
func Default() *Config {
	return &Config{
		ListenAddr:    defaultListenAddr,
		DataDir:       defaultDataDir,
		LogLevel:      defaultLogLevel,
		GCTTLHours:    defaultGCTTLHours,
		GCIntervalMin: defaultGCIntervalMin,
	}
}

// Load читает YAML-конфигурацию из CONFIG_PATH, применяет ENV-переопределения и возвращает актуальную структуру.
func Load() (*Config, error) {
	return LoadFile(getenv("CONFIG_PATH", "./config.yaml"))
}

// LoadFile читает конфигурацию из path. Для отсутствующего файла берутся значения по умолчанию.
func LoadFile(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// ENV override
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("META_PATH"); v != "" {
		c.MetaPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	c.GCTTLHours = envInt("GC_TTL_HOURS", c.GCTTLHours)
	c.GCIntervalMin = envInt("GC_INTERVAL_MIN", c.GCIntervalMin)

	if strings.TrimSpace(c.DataDir) == "" {
		return nil, fmt.Errorf("data_dir is not configured")
	}
	if strings.TrimSpace(c.MetaPath) == "" {
		c.MetaPath = filepath.Join(c.DataDir, defaultMetaFile)
	}

	return c, nil
}

// GCTTL возвращает возраст, после которого неиспользуемый блоб можно удалить.
func (c *Config) GCTTL() time.Duration {
	return time.Duration(c.GCTTLHours) * time.Hour
}

// GCInterval возвращает период запуска сборщика; 0 отключает его.
func (c *Config) GCInterval() time.Duration {
	return time.Duration(c.GCIntervalMin) * time.Minute
}

// envInt возвращает целочисленное значение из переменной окружения либо дефолт.
func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}

	return def
}
