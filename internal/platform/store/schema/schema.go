// Package schema applies embedded SQL migrations with golang-migrate
package schema

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"lookalike/internal/platform/logger"
)

// Config selects the migrations to run
type Config struct {
	// URL is a postgres connection string
	URL string
	// FS holds the migration files under Dir
	FS  fs.FS
	Dir string
	// Table overrides the golang-migrate bookkeeping table
	Table string
}

// Result reports the schema version before and after Up
type Result struct {
	From    uint `json:"from"`
	To      uint `json:"to"`
	Changed bool `json:"changed"`
}

// migrateLogger forwards golang-migrate output to zerolog
type migrateLogger struct{ log logger.Logger }

func (l migrateLogger) Printf(format string, v ...any) { l.log.Info().Msgf(format, v...) }
func (l migrateLogger) Verbose() bool                  { return l.log.GetLevel() <= -1 }

// Up migrates the database to the latest embedded version
func Up(cfg Config, log logger.Logger) (Result, error) {
	if cfg.URL == "" {
		return Result{}, errors.New("schema: empty url")
	}
	if cfg.FS == nil {
		return Result{}, errors.New("schema: nil migrations fs")
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}

	src, err := iofs.New(cfg.FS, dir)
	if err != nil {
		return Result{}, fmt.Errorf("schema: source: %w", err)
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return Result{}, fmt.Errorf("schema: open: %w", err)
	}
	defer func() { _ = db.Close() }()

	drv, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{MigrationsTable: cfg.Table})
	if err != nil {
		return Result{}, fmt.Errorf("schema: driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", drv)
	if err != nil {
		return Result{}, fmt.Errorf("schema: migrate: %w", err)
	}
	m.Log = migrateLogger{log: log}

	from, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Result{}, fmt.Errorf("schema: version: %w", err)
	}
	if dirty {
		return Result{From: from}, fmt.Errorf("schema: database is dirty at version %d", from)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return Result{From: from, To: from}, nil
		}
		return Result{From: from}, fmt.Errorf("schema: up: %w", err)
	}

	to, _, err := m.Version()
	if err != nil {
		return Result{From: from}, fmt.Errorf("schema: version after up: %w", err)
	}
	log.Info().Uint("from", from).Uint("to", to).Msg("schema migrated")
	return Result{From: from, To: to, Changed: to != from}, nil
}
