package config

import (
	"fmt"
	"time"
)

// Storage drivers for the persisted unlock set.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// StorageConfig selects where the unlock set is persisted.
type StorageConfig struct {
	Driver   string         `yaml:"driver"` // memory | postgres | redis
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"` // set holding unlocked region keys
}

// NATSConfig configures the event bridge to NATS.
// Empty URL disables the bridge.
type NATSConfig struct {
	URL           string        `yaml:"url"`
	SubjectPrefix string        `yaml:"subject_prefix"`
	Source        string        `yaml:"source"`
	FlushTimeout  time.Duration `yaml:"flush_timeout"`
}

// Enabled reports whether events should be bridged to NATS.
func (n NATSConfig) Enabled() bool {
	return n.URL != ""
}

// MetricsConfig configures the Prometheus endpoint.
// Empty Addr disables the HTTP listener (collectors are still registered).
type MetricsConfig struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
}

// DefaultStorage returns the in-memory storage config with sensible
// connection defaults for the other drivers.
func DefaultStorage() StorageConfig {
	return StorageConfig{
		Driver: StorageMemory,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "islesim",
			Password: "islesim",
			DBName:   "islesim",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr: "127.0.0.1:6379",
			Key:  "islesim:unlocked_regions",
		},
	}
}
