package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/opsbots/statusbot/internal/infrastructure/config"
)

// DB wraps a MySQL database connection with health checking.
// Writes go to the primary; reads prefer the replica when configured.
type DB struct {
	primary *sql.DB
	replica *sql.DB
	config  *config.MySQLConfig
}

// NewDB creates a new MySQL database connection with connection pooling.
// It establishes connections to both primary and optional replica instances.
func NewDB(cfg *config.MySQLConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql config is required")
	}

	primaryDSN := buildDSN(
		cfg.Primary.Host,
		cfg.Primary.Port,
		cfg.Primary.Database,
		cfg.Primary.Username,
		cfg.Primary.Password,
		cfg.Charset,
		cfg.ParseTime,
		cfg.Timeout,
	)

	primary, err := sql.Open("mysql", primaryDSN)
	if err != nil {
		return nil, fmt.Errorf("opening primary connection: %w", err)
	}

	configurePool(primary, cfg.Pool)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if err := primary.PingContext(ctx); err != nil {
		primary.Close()
		return nil, fmt.Errorf("pinging primary database: %w", err)
	}

	db := &DB{
		primary: primary,
		config:  cfg,
	}

	if cfg.Replica.Enabled {
		replicaDSN := buildDSN(
			cfg.Replica.Host,
			cfg.Replica.Port,
			cfg.Replica.Database,
			cfg.Replica.Username,
			cfg.Replica.Password,
			cfg.Charset,
			cfg.ParseTime,
			cfg.Timeout,
		)

		replica, err := sql.Open("mysql", replicaDSN)
		if err != nil {
			primary.Close()
			return nil, fmt.Errorf("opening replica connection: %w", err)
		}

		configurePool(replica, cfg.Pool)

		replicaCtx, replicaCancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer replicaCancel()

		if err := replica.PingContext(replicaCtx); err != nil {
			primary.Close()
			replica.Close()
			return nil, fmt.Errorf("pinging replica database: %w", err)
		}

		db.replica = replica
	}

	return db, nil
}

// buildDSN constructs a MySQL DSN string.
// Format: user:password@tcp(host:port)/database?params
func buildDSN(host string, port int, database, username, password, charset string, parseTime bool, timeout time.Duration) string {
	// multiStatements is required for multi-statement migration files.
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&timeout=%s&multiStatements=true",
		username,
		password,
		host,
		port,
		database,
		charset,
		parseTime,
		timeout.String(),
	)
}

func configurePool(db *sql.DB, pool config.MySQLPoolConfig) {
	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
}

// Primary returns the primary database connection for writes and consistent reads.
func (db *DB) Primary() *sql.DB {
	return db.primary
}

// Replica returns the replica database connection for reads, or primary if no
// replica is configured.
func (db *DB) Replica() *sql.DB {
	if db.replica != nil {
		return db.replica
	}
	return db.primary
}

// Ping checks connectivity to both primary and replica (if configured).
func (db *DB) Ping(ctx context.Context) error {
	if err := db.primary.PingContext(ctx); err != nil {
		return fmt.Errorf("primary ping failed: %w", err)
	}

	if db.replica != nil {
		if err := db.replica.PingContext(ctx); err != nil {
			return fmt.Errorf("replica ping failed: %w", err)
		}
	}

	return nil
}

// Close closes the database connections.
func (db *DB) Close() error {
	var primaryErr, replicaErr error

	if db.primary != nil {
		primaryErr = db.primary.Close()
	}
	if db.replica != nil {
		replicaErr = db.replica.Close()
	}

	if primaryErr != nil {
		return fmt.Errorf("closing primary: %w", primaryErr)
	}
	if replicaErr != nil {
		return fmt.Errorf("closing replica: %w", replicaErr)
	}

	return nil
}
