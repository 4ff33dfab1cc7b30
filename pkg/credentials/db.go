package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// DBConfig holds database pool configuration
type DBConfig struct {
	// Driver is the database/sql driver name ("postgres" or "mysql")
	Driver string

	// DataSource is the driver-specific connection string
	DataSource string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum lifetime of a connection
	ConnMaxLifetime time.Duration
}

// DefaultDBConfig returns pool defaults sized for login traffic
func DefaultDBConfig(driver, dataSource string) DBConfig {
	return DBConfig{
		Driver:          driver,
		DataSource:      dataSource,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// OpenDB opens a connection pool and verifies it is reachable
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	if cfg.Driver == "" || cfg.DataSource == "" {
		return nil, fmt.Errorf("%w: driver and data source are required", ErrConfiguration)
	}

	db, err := sql.Open(cfg.Driver, cfg.DataSource)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", ErrConfiguration, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: pinging database: %w", ErrStorageUnavailable, err)
	}

	return db, nil
}
