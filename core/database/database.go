package database

import (
	"context"
	"database/sql"
	"fmt"

	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/logger"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type IDatabase interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Rebind(query string) string
	DriverName() string
	Ping(ctx context.Context) error
}

type Database struct {
	sqlx *sqlx.DB
}

// InitDB opens the pool for the configured driver and verifies it with a ping.
func InitDB(ctx context.Context, cfg config.DatabaseConfig) (*Database, error) {
	logger.Info("Database:InitDB:Start", "driver", cfg.Driver)

	sqlxDB, err := sqlx.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		logger.Error("Database:InitDB:Open", "error", err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = constants.DatabaseMaxOpenConns
	}
	sqlxDB.SetMaxOpenConns(maxOpen)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlxDB.PingContext(ctx); err != nil {
		_ = sqlxDB.Close()
		logger.Error("Database:InitDB:Ping", "error", err)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database:InitDB:Connected",
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"user", cfg.User,
		"maxOpenConns", maxOpen,
		"maxIdleConns", cfg.MaxIdleConns,
		"connMaxLifetime", cfg.ConnMaxLifetime,
	)

	return &Database{sqlx: sqlxDB}, nil
}

// New wraps an already opened handle, mainly for tests.
func New(db *sqlx.DB) *Database {
	return &Database{sqlx: db}
}

func (d *Database) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.sqlx.ExecContext(ctx, query, args...)
}

func (d *Database) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.GetContext(ctx, dest, query, args...)
}

func (d *Database) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	return d.sqlx.SelectContext(ctx, dest, query, args...)
}

func (d *Database) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sqlx.QueryRowContext(ctx, query, args...)
}

// Rebind converts ? placeholders into the driver's bindvar style.
func (d *Database) Rebind(query string) string {
	return d.sqlx.Rebind(query)
}

func (d *Database) DriverName() string {
	return d.sqlx.DriverName()
}

func (d *Database) Ping(ctx context.Context) error {
	return d.sqlx.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.sqlx.Close()
}
