package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/campusops/lostfound/internal/config"
	"github.com/campusops/lostfound/internal/database/migrations"
	"github.com/lib/pq"
)

// ErrNotInitialized is returned when the repository is used before it has
// been constructed or after it has been closed.
var ErrNotInitialized = errors.New("database not initialized")

type PgLostFoundRepository struct {
	conn *sql.DB
	log  *log.Logger
	echo bool
}

// NewPgLostFoundRepository opens a pooled connection and verifies it with a
// round-trip query. A failed round trip is fatal to the caller, there is no
// retry.
func NewPgLostFoundRepository(logger *log.Logger, settings config.DatabaseSettings) (*PgLostFoundRepository, error) {
	db, err := sql.Open("postgres", settings.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(settings.PoolSize + settings.MaxOverflow)
	db.SetMaxIdleConns(settings.PoolSize)
	db.SetConnMaxLifetime(settings.PoolRecycle)

	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil {
		db.Close()
		return nil, fmt.Errorf("verify connection: %w", err)
	}
	logger.Println("database connection verified")

	return &PgLostFoundRepository{
		conn: db,
		log:  logger,
		echo: settings.Echo,
	}, nil
}

// Migrate brings the schema up to date. When drop is set all known schema
// objects are removed first; that path is destructive and strictly opt-in.
func (db *PgLostFoundRepository) Migrate(drop bool) error {
	if db.conn == nil {
		return ErrNotInitialized
	}

	if drop {
		db.log.Println("dropping all tables before migrating")
		if err := migrations.Drop(db.conn); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}

	if err := migrations.Up(db.conn); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	db.log.Println("database schema up to date")
	return nil
}

func (db *PgLostFoundRepository) Ping() error {
	if db.conn == nil {
		return ErrNotInitialized
	}
	return db.conn.Ping()
}

// Close disposes the pool. Safe to call more than once.
func (db *PgLostFoundRepository) Close() error {
	if db.conn == nil {
		db.log.Println("warning: no database connection to close")
		return nil
	}

	err := db.conn.Close()
	db.conn = nil
	return err
}

// IsUniqueViolation reports whether err is a Postgres unique-constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (db *PgLostFoundRepository) trace(query string) {
	if db.echo {
		db.log.Println("sql:", query)
	}
}

func (db *PgLostFoundRepository) queryRow(query string, args ...any) *sql.Row {
	db.trace(query)
	return db.conn.QueryRow(query, args...)
}

func (db *PgLostFoundRepository) query(query string, args ...any) (*sql.Rows, error) {
	db.trace(query)
	return db.conn.Query(query, args...)
}
