package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Drivers soportados (DATABASE_DRIVER). "postgres" es lib/pq.
const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open abre la conexión con el driver pedido y verifica health.
func Open(ctx context.Context, driver, url string) (*sql.DB, error) {
	if _, err := dialect(driver); err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// un solo writer, sqlite no se banca escrituras concurrentes
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(1 * time.Hour)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// Migrate aplica todas las migraciones embebidas.
func Migrate(db *sql.DB, driver string) error {
	d, err := dialect(driver)
	if err != nil {
		return err
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(d); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}

func dialect(driver string) (string, error) {
	switch driver {
	case DriverPgx, DriverPostgres:
		return "postgres", nil
	case DriverSQLite:
		return "sqlite3", nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}
