package migrations

import "embed"

// FS SQL-миграции для goose
//
//go:embed *.sql
var FS embed.FS
