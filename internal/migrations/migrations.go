// Package migrations embeds the schema applied by "storefront migrate" and by
// the repository test containers.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
