// Package migrations embeds the SQL migrations for the local object store.
// The set is strictly additive: a new schema version may create collections
// and indexes but never drops or rekeys existing records.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
