// Package db embeds the SQL schema so schoolctl can apply it without
// shipping loose files next to the binary.
package db

import _ "embed"

//go:embed schema.sql
var Schema string
