package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"mathgen-hq/mathgen/pkg/history"
)

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path. ":memory:" opens a private
	// in-memory database.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 4
	MaxOpenConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/history.db",
		MaxOpenConns: 4,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements history.Store using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStorage opens (creating if needed) the database and applies the schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		config.Path = DefaultSQLiteConfig().Path
	}
	if config.MaxOpenConns <= 0 {
		config.MaxOpenConns = DefaultSQLiteConfig().MaxOpenConns
	}

	logger := slog.Default().With("component", "history.storage.sqlite")

	inMemory := config.Path == ":memory:"
	if !inMemory {
		if dir := filepath.Dir(config.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, history.NewStorageError("sqlite", "mkdir", err)
			}
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "open", err)
	}

	// Every connection to ":memory:" is a separate database.
	if inMemory {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(inMemory); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode && !inMemory,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

func (s *SQLiteStorage) initialize(inMemory bool) error {
	if s.config.WALMode && !inMemory {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return history.NewStorageError("sqlite", "enable_wal", err)
		}
	}

	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", s.config.BusyTimeout.Milliseconds())); err != nil {
		return history.NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return history.NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return history.NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return history.NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return history.NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// Store persists a record.
func (s *SQLiteStorage) Store(ctx context.Context, record *history.Record) error {
	variables, err := json.Marshal(record.Variables)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO generations (
			id, request_id, expression, expression_hash, language, variables,
			code, status, nodes, error_code, error_message, duration_ns, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, nullString(record.RequestID),
		record.Expression, record.ExpressionHash, record.Language, string(variables),
		record.Code, string(record.Status), record.Nodes,
		nullString(record.ErrorCode), nullString(record.ErrorMessage),
		record.Duration.Nanoseconds(), record.CreatedAt.UnixNano(),
	)
	if err != nil {
		return history.NewStorageError("sqlite", "store", err)
	}
	return nil
}

// Query retrieves records matching the query filters.
func (s *SQLiteStorage) Query(ctx context.Context, query *history.Query) ([]*history.Record, error) {
	if query == nil {
		query = &history.Query{}
	}

	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT " + selectColumns + " FROM generations"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	order := "DESC"
	if query.Ascending {
		order = "ASC"
	}
	sqlQuery += fmt.Sprintf(" ORDER BY created_at %s, id %s", order, order)

	limit := history.DefaultQueryLimit
	if query.Limit > 0 {
		limit = query.Limit
	}
	sqlQuery += fmt.Sprintf(" LIMIT %d", limit)
	if query.Offset > 0 {
		sqlQuery += fmt.Sprintf(" OFFSET %d", query.Offset)
	}

	rows, err := s.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*history.Record{}
	for rows.Next() {
		record, err := scanRow(rows)
		if err != nil {
			return nil, history.NewStorageError("sqlite", "scan", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, history.NewStorageError("sqlite", "query", err)
	}

	return records, nil
}

// Count returns the number of records matching the query filters.
func (s *SQLiteStorage) Count(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "SELECT COUNT(*) FROM generations"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, history.NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// Delete removes records matching the query filters.
func (s *SQLiteStorage) Delete(ctx context.Context, query *history.Query) (int64, error) {
	whereClause, args := buildWhereClause(query)

	sqlQuery := "DELETE FROM generations"
	if whereClause != "" {
		sqlQuery += " WHERE " + whereClause
	}

	result, err := s.db.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, history.NewStorageError("sqlite", "delete", err)
	}
	return count, nil
}

// Ping checks the database connection.
func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return history.NewStorageError("sqlite", "ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	if err := s.db.Close(); err != nil {
		return history.NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite storage closed")
	return nil
}

// buildWhereClause returns the WHERE clause (without the keyword) and its arguments.
func buildWhereClause(query *history.Query) (string, []any) {
	if query == nil {
		return "", nil
	}

	var conditions []string
	var args []any

	if query.Since != nil {
		conditions = append(conditions, "created_at >= ?")
		args = append(args, query.Since.UnixNano())
	}
	if query.Until != nil {
		conditions = append(conditions, "created_at <= ?")
		args = append(args, query.Until.UnixNano())
	}
	if query.Language != "" {
		conditions = append(conditions, "language = ?")
		args = append(args, query.Language)
	}
	if query.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(query.Status))
	}
	if len(query.IDs) > 0 {
		conditions = append(conditions, "id IN (?"+strings.Repeat(", ?", len(query.IDs)-1)+")")
		for _, id := range query.IDs {
			args = append(args, id)
		}
	}

	return strings.Join(conditions, " AND "), args
}

func scanRow(rows *sql.Rows) (*history.Record, error) {
	var (
		record                        history.Record
		requestID, variables, code    sql.NullString
		errorCode, errorMessage       sql.NullString
		status                        string
		durationNs, createdAtUnixNano int64
	)

	err := rows.Scan(
		&record.ID, &requestID,
		&record.Expression, &record.ExpressionHash, &record.Language, &variables,
		&code, &status, &record.Nodes,
		&errorCode, &errorMessage,
		&durationNs, &createdAtUnixNano,
	)
	if err != nil {
		return nil, err
	}

	record.RequestID = requestID.String
	record.Code = code.String
	record.Status = history.Status(status)
	record.ErrorCode = errorCode.String
	record.ErrorMessage = errorMessage.String
	record.Duration = time.Duration(durationNs)
	record.CreatedAt = time.Unix(0, createdAtUnixNano).UTC()

	if variables.Valid && variables.String != "" && variables.String != "null" {
		if err := json.Unmarshal([]byte(variables.String), &record.Variables); err != nil {
			return nil, fmt.Errorf("decode variables: %w", err)
		}
	}

	return &record, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
