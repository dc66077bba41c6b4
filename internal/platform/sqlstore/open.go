package sqlstore

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"  // database/sql driver: pgx
	_ "github.com/mattn/go-sqlite3"     // database/sql driver: sqlite3
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Supported storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open opens a database connection for the given driver and DSN and runs
// the embedded schema migrations. The returned handle is ready for use
// with NewKVStore.
func Open(driver, dsn string) (*sql.DB, error) {
	var sqlDriver, gooseDialect string
	switch driver {
	case DriverSQLite:
		sqlDriver, gooseDialect = "sqlite3", "sqlite3"
	case DriverPostgres:
		sqlDriver, gooseDialect = "pgx", "postgres"
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if err := migrate(db, gooseDialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// migrate applies the embedded schema migrations.
func migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
