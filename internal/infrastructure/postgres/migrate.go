package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

// Migrator wraps golang-migrate over a database/sql handle opened with the pgx driver.
type Migrator struct {
	m   *migrate.Migrate
	log *logrus.Logger
}

func NewMigrator(dsn, dir string, log *logrus.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Migrator{m: m, log: log}, nil
}

func (g *Migrator) Up() error {
	g.log.Info("running migrations...")
	err := g.m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		g.log.Info("no migrations to run")
		return nil
	}
	return err
}

// Down rolls back steps migrations; steps <= 0 rolls back everything.
func (g *Migrator) Down(steps int) error {
	var err error
	if steps <= 0 {
		err = g.m.Down()
	} else {
		err = g.m.Steps(-steps)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func (g *Migrator) Version() (uint, bool, error) {
	v, dirty, err := g.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

// Close releases the source and the database handle.
func (g *Migrator) Close() {
	_, _ = g.m.Close()
}

// RunMigrations applies every pending migration in dir.
func RunMigrations(dsn, dir string, log *logrus.Logger) error {
	g, err := NewMigrator(dsn, dir, log)
	if err != nil {
		return err
	}
	defer g.Close()
	return g.Up()
}
