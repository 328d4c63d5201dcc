package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"busdekho/internal/logging"

	"github.com/go-sql-driver/mysql"
)

// DBConfig holds the MySQL connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DefaultDBConfig points at the local redbus database.
var DefaultDBConfig = DBConfig{
	Host:     "127.0.0.1",
	Port:     "3306",
	User:     "root",
	Password: "123456789",
	Name:     "redbus",
}

var (
	DB   *sql.DB
	dbMu sync.Mutex
)

// ErrDBNotConnected is returned when the shared handle has not been opened.
var ErrDBNotConnected = errors.New("database is not connected")

// DSN renders the go-sql-driver DSN for cfg.
func (cfg DBConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Host + ":" + cfg.Port
	mc.DBName = cfg.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Timeout = 5 * time.Second
	mc.ReadTimeout = 30 * time.Second
	mc.WriteTimeout = 30 * time.Second
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// OpenDB opens and pings a connection pool. On failure the handle is nil and
// nothing is left open; there is no retry.
func OpenDB(cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database %s@%s/%s: %w", cfg.User, cfg.Host, cfg.Name, err)
	}
	return db, nil
}

// ConnectDB initializes the shared DB handle (idempotent).
func ConnectDB(cfg DBConfig) (*sql.DB, error) {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		return DB, nil
	}

	db, err := OpenDB(cfg)
	if err != nil {
		logging.Error("Error connecting to the database", "error", err)
		return nil, err
	}

	DB = db
	logging.Info("Connected to MySQL", "host", cfg.Host, "database", cfg.Name)
	return DB, nil
}

// EnsureDB pings the shared handle so a caller can abort its run before
// issuing any query.
func EnsureDB(ctx context.Context) error {
	dbMu.Lock()
	db := DB
	dbMu.Unlock()

	if db == nil {
		return ErrDBNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

func CloseDB() {
	dbMu.Lock()
	defer dbMu.Unlock()

	if DB != nil {
		_ = DB.Close()
		DB = nil
		logging.Info("Database connection closed")
	}
}
