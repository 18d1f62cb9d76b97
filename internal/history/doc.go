// Package history persists a record of every cleaning run in SQLite.
//
// Each run stores its identifier, timing, and summary counts; each file the
// run touched stores its path, container kind, and outcome. The database is
// opt-in through the history option and lives beside the config file. Schema
// changes bump schemaVersion; users delete the database to adopt a new one.
package history
