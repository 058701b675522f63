// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// cmd/stockroom imports this package so every migration is registered
// before any command runs.
package migrations
