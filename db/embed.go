// Package db embeds the SQL schema migrations so production builds can
// run them without the source tree present.
package db

import "embed"

// Migrations holds the embedded SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
