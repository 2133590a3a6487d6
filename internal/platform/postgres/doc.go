// Package postgres implements the store interfaces on top of PostgreSQL,
// accessed through database/sql with the pgx driver. It owns the SQL, the
// mapping from PostgreSQL error codes to store sentinel errors, and the
// password hashing performed when users are created.
package postgres
