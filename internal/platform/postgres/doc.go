// Package postgres implements the store interfaces on PostgreSQL through a
// pgx connection pool. The schema is embedded and applied with goose; a
// class's enrollment set is a text[] column guarded by a check constraint
// that keeps it within capacity.
package postgres
