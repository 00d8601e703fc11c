// Package navhub embeds assets shipped with the binary.
package navhub

import "embed"

// Migrations contains the embedded database migration files applied by the
// migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
