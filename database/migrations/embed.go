// Package migrations embeds the Oracle schema migrations.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
