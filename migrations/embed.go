// Package migrations embeds the SQL migration files — schema plus the three
// stop-list stored procedures — for use by the goose programmatic API at
// server bootstrap and in tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// Pass this to a goose.Provider instead of relying on a filesystem path
// at runtime.
//
//go:embed *.sql
var FS embed.FS
