// Package db embeds the schema migrations for the SQL-backed slots.
package db

import "embed"

// Migrations holds one directory per dialect: postgres and sqlite.
//
//go:embed migrations/*/*.sql
var Migrations embed.FS
