package database

import (
	"bufio"
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"holocron/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator applies the embedded migrations for the configured dialect.
// It owns its own connection; Close releases it.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator opens a dedicated connection and prepares the migration source for
// the dialect selected by cfg.
func NewMigrator(ctx context.Context, cfg config.DatabaseConfig) (*Migrator, error) {
	db, err := openSQL(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		driver migratedb.Driver
		name   string
	)
	switch cfg.Driver() {
	case config.DriverPostgres:
		name = "postgres"
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		name = "sqlite"
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create %s migration driver: %w", name, err)
	}

	source, err := iofs.New(migrationsFS, path.Join("migrations", name))
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, name, driver)
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("create migrate instance: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. Being up to date is not an error.
func (m *Migrator) Up() error {
	return ignoreNoChange(m.m.Up())
}

// Steps applies n migrations forward, or reverts -n when n is negative.
func (m *Migrator) Steps(n int) error {
	return ignoreNoChange(m.m.Steps(n))
}

// Down reverts every applied migration.
func (m *Migrator) Down() error {
	return ignoreNoChange(m.m.Down())
}

// Goto migrates up or down to the given version.
func (m *Migrator) Goto(version uint) error {
	return ignoreNoChange(m.m.Migrate(version))
}

// Version reports the applied version. ok is false when nothing has been applied.
func (m *Migrator) Version() (version uint, dirty bool, ok bool, err error) {
	version, dirty, err = m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, false, nil
	}
	if err != nil {
		return 0, false, false, err
	}
	return version, dirty, true, nil
}

// Close releases the migration source and the dedicated connection.
func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}

// MigrateUp applies all pending migrations and closes the migrator.
func MigrateUp(ctx context.Context, cfg config.DatabaseConfig) error {
	m, err := NewMigrator(ctx, cfg)
	if err != nil {
		return err
	}
	upErr := m.Up()
	closeErr := m.Close()
	if upErr != nil {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	return closeErr
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Revision describes one migration and the revision it builds on.
type Revision struct {
	ID      string
	Revises string // empty for the first migration
	Name    string
}

// Revisions reads the revision headers of the up migrations for a dialect
// ("postgres" or "sqlite"), in file order.
func Revisions(dialect string) ([]Revision, error) {
	dir := path.Join("migrations", dialect)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	revisions := make([]Revision, 0, len(names))
	for _, name := range names {
		rev, err := readRevision(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		rev.Name = strings.TrimSuffix(name, ".up.sql")
		revisions = append(revisions, rev)
	}
	return revisions, nil
}

func readRevision(file string) (Revision, error) {
	f, err := migrationsFS.Open(file)
	if err != nil {
		return Revision{}, err
	}
	defer f.Close()

	var rev Revision
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "--") {
			break
		}
		key, value, found := strings.Cut(strings.TrimSpace(strings.TrimPrefix(line, "--")), ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "revision":
			rev.ID = value
		case "revises":
			if value != "none" {
				rev.Revises = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return Revision{}, fmt.Errorf("read %s: %w", file, err)
	}
	if rev.ID == "" {
		return Revision{}, fmt.Errorf("%s: missing revision header", file)
	}
	return rev, nil
}
