package repository

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // registers pgx5://
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Schema names a migration set. Each service owns its own database.
type Schema string

// Migration sets.
const (
	DeliverySchema Schema = "delivery"
	OrderSchema    Schema = "order"
)

// Migrate applies every pending migration of schema to the database at dsn.
func Migrate(dsn string, schema Schema) error {
	m, err := newMigrate(dsn, schema)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s up: %w", schema, err)
	}
	return nil
}

// MigrateDown rolls schema back completely. Used by tests.
func MigrateDown(dsn string, schema Schema) error {
	m, err := newMigrate(dsn, schema)
	if err != nil {
		return err
	}
	defer closeMigrate(m)

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s down: %w", schema, err)
	}
	return nil
}

func newMigrate(dsn string, schema Schema) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations/"+string(schema))
	if err != nil {
		return nil, fmt.Errorf("migration source %s: %w", schema, err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, migrateURL(dsn, schema))
	if err != nil {
		return nil, fmt.Errorf("migration instance %s: %w", schema, err)
	}
	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	_, _ = m.Close()
}

// migrateURL rewrites a postgres DSN for the pgx5 migrate driver and keeps
// a separate version table per schema.
func migrateURL(dsn string, schema Schema) string {
	u := dsn
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(u, prefix) {
			u = "pgx5://" + strings.TrimPrefix(u, prefix)
			break
		}
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "x-migrations-table=schema_migrations_" + string(schema)
}
