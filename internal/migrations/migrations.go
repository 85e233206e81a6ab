// Package migrations embeds the SQL schema migrations applied by goose.
package migrations

import "embed"

// Migrations holds the goose SQL files, applied in filename order.
//
//go:embed *.sql
var Migrations embed.FS
