// Package storage provides history storage backends.
//
// Two backends are available:
//
//   - MemoryStorage keeps records in a map and is meant for tests and
//     short-lived processes.
//   - SQLiteStorage persists records in a SQLite database (pure Go driver,
//     WAL mode) and is the default.
//
// New selects a backend from config.HistoryConfig.
package storage
