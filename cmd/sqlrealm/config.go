package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/mmcdole/sqlrealm/pkg/credentials"
	"github.com/mmcdole/sqlrealm/pkg/logging"
)

// Config holds the sqlrealm tool configuration
type Config struct {
	// Database settings
	Driver          string `json:"driver"`            // database/sql driver name: postgres or mysql
	DataSource      string `json:"datasource"`        // Driver-specific connection string
	MaxOpenConns    int    `json:"max_open_conns"`    // Maximum open connections
	MaxIdleConns    int    `json:"max_idle_conns"`    // Maximum idle connections
	ConnMaxLifetime int    `json:"conn_max_lifetime"` // Connection lifetime in seconds

	// Logging settings
	AppLogPath    string `json:"app_log_path,omitempty"`    // Optional: application log file, stdout if empty
	AccessLogPath string `json:"access_log_path,omitempty"` // Optional: authentication access log
	LogLevel      string `json:"log_level,omitempty"`       // debug, info, warn or error

	// Realm properties
	Realm map[string]string `json:"realm"`
}

// LoadConfig loads configuration from a JSON file on fs
func LoadConfig(fs afero.Fs, path string, config *Config) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	// Only convert log paths to absolute if they are specified and not absolute
	configDir := filepath.Dir(path)
	if config.AppLogPath != "" && !filepath.IsAbs(config.AppLogPath) {
		config.AppLogPath = filepath.Join(configDir, config.AppLogPath)
	}
	if config.AccessLogPath != "" && !filepath.IsAbs(config.AccessLogPath) {
		config.AccessLogPath = filepath.Join(configDir, config.AccessLogPath)
	}

	defaults := credentials.DefaultDBConfig(config.Driver, config.DataSource)
	if config.MaxOpenConns == 0 {
		config.MaxOpenConns = defaults.MaxOpenConns
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = defaults.MaxIdleConns
	}
	if config.ConnMaxLifetime == 0 {
		config.ConnMaxLifetime = int(defaults.ConnMaxLifetime / time.Second)
	}
	if config.Realm == nil {
		return fmt.Errorf("config file has no realm section")
	}

	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return err
	}
	return nil
}

// DBConfig returns the pool settings
func (c *Config) DBConfig() credentials.DBConfig {
	return credentials.DBConfig{
		Driver:          c.Driver,
		DataSource:      c.DataSource,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxIdleConns,
		ConnMaxLifetime: time.Duration(c.ConnMaxLifetime) * time.Second,
	}
}

// LoggingConfig returns the logger settings
func (c *Config) LoggingConfig() logging.Config {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.Config{
		AppLogPath:    c.AppLogPath,
		AccessLogPath: c.AccessLogPath,
		Level:         level,
	}
}
