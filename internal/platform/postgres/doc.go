// Package postgres provides PostgreSQL-specific implementations for the record
// store interfaces defined in the internal/store package. It owns the schema
// migrations, maps database errors onto store errors, and converts between
// domain entities and rows. JSON-shaped fields (task metadata, assignee lists)
// are stored as JSONB.
package postgres
