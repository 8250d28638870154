// Package migrations ships the postgres schema with the binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
