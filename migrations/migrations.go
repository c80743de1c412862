// Package migrations embeds the goose SQL migrations so that binaries and
// tests apply the same schema without depending on the working directory.
package migrations

import "embed"

// FS holds every *.sql migration in version order.
//
//go:embed *.sql
var FS embed.FS
