// Package database provides read-only access to the corpora database.
//
// The database holds one table per feature category, named by the
// category code (WoKF, TrSF, ...), and one n-gram table per domain, named
// n_grams_<domain>. Columns are generic (field1..fieldN). Table names are
// only ever derived from model.Domain and model.FeatureCategory values, so
// no user input reaches an identifier.
//
// SQLite (modernc.org/sqlite) is the default driver. PostgreSQL is
// reachable through pgx's database/sql driver for deployments that load
// the same tables into a server.
//
// Design decision: We go through database/sql for both drivers and build
// queries with squirrel because:
//  1. The queries are few and fixed in shape, so a placeholder format
//     (? or $n) is the only difference between the drivers
//  2. modernc.org/sqlite is CGO-free and the corpora file is opened
//     read-only (mode=ro), so concurrent page renders share one handle
//  3. Table names come from closed sets, and squirrel keeps every value a
//     bound argument
package database
