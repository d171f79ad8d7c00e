package repo

import "embed"

// Migrations holds the customers schema bootstrap, applied by the schema package
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory inside Migrations holding the files
const MigrationsDir = "migrations"
