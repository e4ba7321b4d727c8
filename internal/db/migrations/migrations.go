// Package migrations embeds the goose SQL migrations of the export sink.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
