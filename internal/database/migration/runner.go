package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

const migrationsTable = "schema_migrations"

// Runner applies the embedded schema through golang-migrate. It needs the
// database/sql handle exposed by database.DB.SQLDB.
type Runner struct {
	Log *zap.Logger
}

func (r Runner) newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{MigrationsTable: migrationsTable})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

func (r Runner) Up(db *sql.DB) error {
	m, err := r.newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	r.logVersion(m)
	return nil
}

func (r Runner) Down(db *sql.DB) error {
	m, err := r.newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback migrations: %w", err)
	}
	r.logVersion(m)
	return nil
}

func (r Runner) Force(db *sql.DB, version int) error {
	m, err := r.newMigrate(db)
	if err != nil {
		return err
	}
	if err := m.Force(version); err != nil {
		return fmt.Errorf("force migration version %d: %w", version, err)
	}
	return nil
}

func (r Runner) logVersion(m *migrate.Migrate) {
	if r.Log == nil {
		return
	}
	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		r.Log.Warn("read migration version", zap.Error(err))
		return
	}
	r.Log.Info("migrations applied", zap.Uint("version", v), zap.Bool("dirty", dirty))
}
