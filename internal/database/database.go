// Package database provides connection management for the discbot reference store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/mattn/go-sqlite3"

	"github.com/dbsmedya/discbot/internal/config"
)

// MemoryPath opens a private in-memory SQLite database.
const MemoryPath = ":memory:"

// SQLiteDriverName is the SQLite driver registered by this package. Its
// LOWER() folds the full Unicode range like strings.ToLower instead of only
// ASCII, so name searches ignore case for every disc name.
const SQLiteDriverName = "sqlite3_discbot"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// Manager owns the connection pool to the configured store.
type Manager struct {
	DB      *sql.DB
	config  *config.StoreConfig
	backoff time.Duration
}

// NewManager creates a new database manager from configuration.
func NewManager(cfg *config.StoreConfig) *Manager {
	return &Manager{
		config:  cfg,
		backoff: time.Second,
	}
}

// Driver returns the configured store driver.
func (m *Manager) Driver() string {
	return m.config.Driver
}

// Connect opens and verifies the connection to the store.
func (m *Manager) Connect(ctx context.Context) error {
	db, err := m.connectWithRetry(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to %s store: %w", m.config.Driver, err)
	}
	m.DB = db
	return nil
}

// connectWithRetry attempts to connect with exponential backoff.
func (m *Manager) connectWithRetry(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 3
	backoff := m.backoff

	for i := 0; i < maxRetries; i++ {
		db, err = m.open()
		if err == nil {
			if pingErr := db.PingContext(ctx); pingErr == nil {
				return db, nil
			} else {
				db.Close()
				err = pingErr
			}
		}

		if i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}

	return nil, fmt.Errorf("failed after %d retries: %w", maxRetries, err)
}

// open creates the connection pool for the configured driver.
func (m *Manager) open() (*sql.DB, error) {
	switch m.config.Driver {
	case config.DriverMySQL:
		db, err := sql.Open("mysql", BuildDSN(&m.config.MySQL))
		if err != nil {
			return nil, err
		}
		if m.config.MySQL.MaxConnections > 0 {
			db.SetMaxOpenConns(m.config.MySQL.MaxConnections)
		}
		if m.config.MySQL.MaxIdleConnections > 0 {
			db.SetMaxIdleConns(m.config.MySQL.MaxIdleConnections)
		}
		db.SetConnMaxLifetime(10 * time.Minute)
		return db, nil

	case config.DriverSQLite, "":
		db, err := sql.Open(SQLiteDriverName, BuildSQLiteDSN(m.config.Path))
		if err != nil {
			return nil, err
		}
		if m.config.Path == MemoryPath {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		}
		return db, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", m.config.Driver)
	}
}

// BuildDSN constructs a MySQL DSN from configuration.
func BuildDSN(cfg *config.DatabaseConfig) string {
	// Format: user:password@tcp(host:port)/database?params
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	if cfg.Database != "" {
		dsn += cfg.Database
	}

	params := "?parseTime=true&charset=utf8mb4"
	switch cfg.TLS {
	case "disable":
		params += "&tls=false"
	case "required":
		params += "&tls=true"
	case "preferred", "":
		params += "&tls=preferred"
	}

	return dsn + params
}

// BuildSQLiteDSN constructs a go-sqlite3 DSN for a database file.
func BuildSQLiteDSN(path string) string {
	if path == MemoryPath {
		return MemoryPath
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_busy_timeout=5000"
}

// Close closes the connection pool.
func (m *Manager) Close() error {
	if m.DB == nil {
		return nil
	}
	if err := m.DB.Close(); err != nil {
		return fmt.Errorf("store close: %w", err)
	}
	return nil
}

// Ping verifies the connection is alive.
func (m *Manager) Ping(ctx context.Context) error {
	if m.DB == nil {
		return fmt.Errorf("store not connected")
	}
	if err := m.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("store ping failed: %w", err)
	}
	return nil
}
