// Package migrations embeds the SQL schema migrations shipped with the
// binary so installs never depend on files on disk.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
