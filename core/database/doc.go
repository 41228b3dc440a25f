// Package database opens the gorm connection shared by the SQL document store
// and the internal product catalog. MySQL is the default, PostgreSQL is
// supported, and SQLite (usually ":memory:") backs the tests.
//
// GetTableColumns reads live columns through the driver's catalog views.
// The document store uses MissingColumns after migrating to make sure the
// version history and revision columns exist, and the integrity feature
// compares every table against its model.
package database
