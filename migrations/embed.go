// Package migrations holds the numbered SQL schema files compiled into the
// server binary.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
