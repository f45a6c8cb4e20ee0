// Package config provides configuration management for the coverage
// analysis service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Parser   ParserConfig   `mapstructure:"parser"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
}

// ParserConfig holds parse engine configuration.
type ParserConfig struct {
	// MaxWorkers caps the parallel chunk workers.
	MaxWorkers int `mapstructure:"max_workers"`

	// PoolBlockSize is the arena block size in bytes; zero uses the
	// engine default.
	PoolBlockSize int `mapstructure:"pool_block_size"`

	// DataDir is where downloaded remote reports land.
	DataDir string `mapstructure:"data_dir"`
}

// DatabaseConfig holds relational database configuration for run
// history persistence.
type DatabaseConfig struct {
	Type     string `mapstructure:"type"` // sqlite, postgres or mysql
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	MaxConns int    `mapstructure:"max_conns"`

	// Path is the database file for the sqlite backend.
	Path string `mapstructure:"path"`
}

// StorageConfig holds object storage configuration.
type StorageConfig struct {
	Type      string `mapstructure:"type"` // cos or local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`     // e.g., "myqcloud.com"
	Scheme    string `mapstructure:"scheme"`     // e.g., "https" or "http"
	LocalPath string `mapstructure:"local_path"` // for local storage
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
}

// Load reads configuration from the specified file path.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/coverage-analysis")
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing config files fall back to defaults; anything else is
		// a real error.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// defaults only
		} else if os.IsNotExist(err) {
			// explicit path that does not exist, defaults only
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromReader loads configuration from raw bytes (useful for testing).
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("parser.max_workers", runtime.NumCPU())
	v.SetDefault("parser.pool_block_size", 0)
	v.SetDefault("parser.data_dir", "./data")

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./coverage_runs.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.max_conns", 10)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "./storage")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.output_path", "")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Parser.MaxWorkers < 1 {
		return fmt.Errorf("parser max_workers must be at least 1")
	}

	switch c.Database.Type {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("sqlite database path is required")
		}
	case "postgres", "mysql":
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case "":
		// run history persistence disabled
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}

	return nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	if c.Parser.DataDir == "" {
		return nil
	}
	return os.MkdirAll(c.Parser.DataDir, 0755)
}

// ReportPath returns the local path a downloaded report is stored at.
func (c *Config) ReportPath(key string) string {
	return filepath.Join(c.Parser.DataDir, filepath.Base(key))
}
