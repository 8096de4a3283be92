package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/nao1215/corpusscope/internal/model"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

// Store runs the fixed-shape queries of the dashboard against the corpora
// database. It is safe for concurrent use; all queries are read-only.
type Store struct {
	db      *sql.DB
	builder sq.StatementBuilderType
	driver  string
}

// Options configures Open.
type Options struct {
	// Driver is "sqlite" or "pgx".
	Driver string

	// DSN is the SQLite file path or a PostgreSQL connection string.
	DSN string

	// MaxOpenConns caps the connection pool. Zero keeps the driver default.
	MaxOpenConns int
}

// DefaultOptions returns options for a SQLite file.
func DefaultOptions(path string) Options {
	return Options{Driver: DriverSQLite, DSN: path, MaxOpenConns: 4}
}

// Open opens the database and verifies the connection.
// A missing SQLite file is reported as model.ErrArtifactMissing; the file
// is opened read-only and never created.
func Open(ctx context.Context, opts Options) (*Store, error) {
	var (
		dsn     string
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	)

	switch opts.Driver {
	case DriverSQLite:
		if _, err := os.Stat(opts.DSN); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: database %s", model.ErrArtifactMissing, opts.DSN)
			}
			return nil, fmt.Errorf("failed to stat database: %w", err)
		}
		dsn = "file:" + opts.DSN + "?mode=ro"
	case DriverPostgres:
		dsn = opts.DSN
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := sql.Open(opts.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Store{db: db, builder: builder, driver: opts.Driver}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// tableMissing reports whether err is a driver error for an unknown table.
func tableMissing(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "does not exist")
}

// wrapQueryError classifies a query error against table.
func wrapQueryError(table string, err error) error {
	if tableMissing(err) {
		return fmt.Errorf("%w: table %s", model.ErrArtifactMissing, table)
	}
	return fmt.Errorf("failed to query %s: %w", table, err)
}

// scanStrings reads every row of rows as nullable strings.
func scanStrings(rows *sql.Rows) ([]string, [][]string, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range raw {
			row[i] = v.String
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
