// Package member persists accounts and their granted authorities in
// PostgreSQL and ships the schema migrations for those tables.
package member
