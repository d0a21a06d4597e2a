// Package migrations embeds the SQL schema migrations for the claim
// corpus store.
package migrations

import "embed"

// FS holds the migration files, compiled into the binary so the store
// can bootstrap its schema without external assets.
//
//go:embed *.sql
var FS embed.FS
